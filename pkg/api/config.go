// Package api provides the REST API exposing RFV analyses and exports.
package api

import "errors"

// Define static errors
var (
	ErrAPIAddrRequired  = errors.New("api address is required")
	ErrInvalidBodyLimit = errors.New("api body limit must be positive")
)

// Config represents API service configuration
type Config struct {
	Addr string `yaml:"addr" default:":8080" validate:"hostname_port"`
	// BodyLimit is the maximum upload size in bytes.
	BodyLimit int `yaml:"bodyLimit" default:"33554432"`
	// PreviewRows is the default number of rows of each intermediate aggregate.
	PreviewRows int `yaml:"previewRows" default:"5"`
}

// Validate validates the API configuration
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrAPIAddrRequired
	}

	if c.BodyLimit <= 0 {
		return ErrInvalidBodyLimit
	}

	return nil
}
