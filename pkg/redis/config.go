// Package redis provides Redis client configuration
package redis

import (
	"errors"
	"fmt"

	r "github.com/redis/go-redis/v9"
)

// Define static errors
var (
	ErrInvalidURL = errors.New("invalid redis URL")
)

// Config holds Redis client configuration. Redis is optional; an empty URL
// keeps the export cache in process.
type Config struct {
	URL    string `yaml:"url"`
	Prefix string `yaml:"prefix" default:"rfv"`
}

// Enabled reports whether a Redis URL is configured
func (c *Config) Enabled() bool {
	return c.URL != ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !c.Enabled() {
		return nil
	}

	if _, err := r.ParseURL(c.URL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if c.Prefix == "" {
		c.Prefix = "rfv"
	}

	return nil
}

// PrefixKey adds the configured prefix to a Redis key
func (c *Config) PrefixKey(key string) string {
	if c.Prefix == "" {
		return key
	}

	return fmt.Sprintf("%s:%s", c.Prefix, key)
}

// New creates a Redis client from the configuration
func New(c *Config) (*r.Client, error) {
	opts, err := r.ParseURL(c.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	return r.NewClient(opts), nil
}
