package provider

import (
	"errors"
	"net/url"
	"time"
)

// Config holds the inventory service client settings
type Config struct {
	// BaseURL is the service root; endpoints are appended to it
	BaseURL string
	// APIKey is sent in the X-API-Key header when set
	APIKey string
	// Timeout bounds a single HTTP exchange
	Timeout time.Duration
	// RateLimit is the client-side request budget per second, 0 disables it
	RateLimit float64
	// Burst is the token bucket size
	Burst int
}

// Configuration errors
var (
	ErrMissingBaseURL = errors.New("provider: base URL is required")
	ErrInvalidBaseURL = errors.New("provider: base URL must be an absolute http(s) URL")
)

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.Timeout
}

func (c *Config) burst() int {
	if c.Burst <= 0 {
		return 1
	}
	return c.Burst
}
