// Package server holds the HTTP server configuration used by the serve command.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key checked by the auth
// middleware and the request body limit.
package server
