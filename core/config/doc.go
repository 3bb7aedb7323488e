// Package config loads application settings.
//
// Sources, lowest precedence first: struct tag defaults, an optional
// config.toml (or .yaml/.json) file, a .env file and environment variables.
// Nested keys map to environment variables by replacing dots with
// underscores, so limits.play.title is LIMITS_PLAY_TITLE.
//
// # Sections
//
//   - AppStore, Play: backend credentials and endpoints
//   - Limits: per-field length limits of each backend
//   - Server: HTTP port, API key and body limit
//   - Storage: snapshot archive bucket
//   - Journal: run journal database
//   - Log: level and format
package config
