// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

// Package lighttp holds the environment-driven configuration shared by the
// lighttp binaries.
package lighttp

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, populated from the environment.
type Config struct {
	// Listener
	Host string `env:"HOST" envDefault:""`
	Port string `env:"PORT" envDefault:"8080"`

	// ServerHeader is the product identifier sent in the Server response
	// header. It is configuration, not process-wide mutable state.
	ServerHeader string `env:"SERVER_HEADER" envDefault:"lighttp/1.0"`

	// Connection handling
	ReadBufferSize  int           `env:"READ_BUFFER_SIZE" envDefault:"65536"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting (accept path, per remote host). Zero capacity disables
	// the limiter.
	RateLimitCapacity int64 `env:"RATE_LIMIT_CAPACITY" envDefault:"0"`
	RateLimitRefill   int64 `env:"RATE_LIMIT_REFILL"   envDefault:"10"`

	// Observability
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT"   envDefault:"json"`
}

// NewConfig loads a Config from the environment with the given options
// (typically a prefix).
func NewConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Address returns the host:port listen address.
func (c Config) Address() string {
	return c.Host + ":" + c.Port
}
