package clinicapi

import (
	"strings"
	"time"

	"github.com/Alijeyrad/moksha_web/config"
)

// Config holds settings for the clinic REST API client
type Config struct {
	BaseURL   string
	UserAgent string

	// Zero disables the client-side timeout; calls then run until the
	// server answers or the request context ends.
	TimeoutSeconds int
}

// DefaultConfig returns the defaults used when nothing is configured
func DefaultConfig() Config {
	return Config{
		UserAgent: "moksha-web",
	}
}

// Timeout returns the HTTP client timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ConfigFrom maps config.APIConfig onto this package's Config.
func ConfigFrom(c config.APIConfig) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = strings.TrimRight(c.BaseURL, "/")
	cfg.TimeoutSeconds = c.TimeoutSeconds
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	return cfg
}
