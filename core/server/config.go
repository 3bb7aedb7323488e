package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitKB caps request bodies, in kilobytes.
	BodyLimitKB int `mapstructure:"body_limit_kb" default:"1024"`
}

// BodyLimit returns the request body limit in bytes, defaulting to 1 MiB.
func (c Config) BodyLimit() int {
	if c.BodyLimitKB <= 0 {
		return 1024 * 1024
	}
	return c.BodyLimitKB * 1024
}
