// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation protecting the metadata endpoints.
//   - rayid: a unique Request ID (RayID) for every incoming request, stored
//     in the context and echoed in the X-Ray-ID response header.
//
// The serve command registers rayid first, then request logging, then auth.
package middleware
