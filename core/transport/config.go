package transport

import "time"

// Config holds retry and timeout settings for backend calls.
type Config struct {
	// TimeoutSeconds bounds a single HTTP attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// InitialBackoffMs is the first retry delay in milliseconds.
	InitialBackoffMs int `mapstructure:"initial_backoff_ms" default:"500"`
}

// Timeout returns the per-attempt timeout, defaulting to 30s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
