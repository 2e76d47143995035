// Package engine wires the RFV service together
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethpandaops/rfv/pkg/api"
	"github.com/ethpandaops/rfv/pkg/export"
	"github.com/ethpandaops/rfv/pkg/ledger"
	"github.com/ethpandaops/rfv/pkg/redis"
)

var (
	// ErrMetricsAddrRequired is returned when no metrics address is configured
	ErrMetricsAddrRequired = errors.New("metrics address is required")
	// ErrInvalidShutdownTimeout is returned when the shutdown timeout is not positive
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must be positive")
)

// Config represents the complete service configuration
type Config struct {
	// Core settings
	Logging         string        `yaml:"logging" default:"info" validate:"oneof=panic fatal warn info debug trace"`
	MetricsAddr     string        `yaml:"metricsAddr" default:":9090"`
	HealthCheckAddr string        `yaml:"healthCheckAddr"`
	PProfAddr       string        `yaml:"pprofAddr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"10s"`

	// Optional shared export cache
	Redis redis.Config `yaml:"redis"`

	// API service configuration
	API api.Config `yaml:"api"`

	// Upload parsing
	Ledger ledger.Config `yaml:"ledger"`

	// Export encoding and caching
	Export export.Config `yaml:"export"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MetricsAddr == "" {
		return ErrMetricsAddrRequired
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("invalid redis configuration: %w", err)
	}

	if err := c.API.Validate(); err != nil {
		return err
	}

	if err := c.Ledger.Validate(); err != nil {
		return fmt.Errorf("invalid ledger configuration: %w", err)
	}

	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("invalid export configuration: %w", err)
	}

	return nil
}
