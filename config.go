package fdio

import (
	"log/slog"
	"time"
)

// Logger interface compatible with slog.Logger
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoTimeout disables the read timeout: an attempt with no data available
// waits indefinitely for the descriptor to become readable.
const NoTimeout = time.Duration(-1)

type Config struct {
	// Logger receives debug-level diagnostics. Defaults to slog.Default().
	Logger Logger

	// Timeout bounds a single read attempt's wait for readability. It is a
	// per-attempt budget, not an end-to-end deadline: multi-chunk operations
	// such as ReadAll restart it on every attempt. Defaults to NoTimeout.
	Timeout time.Duration

	// BufferSize is the initial size of the internal read buffer.
	BufferSize int

	sys Sys
}

type Option func(*Config)

// WithTimeout sets the per-attempt read timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithBufferSize sets the initial size of the internal read buffer.
func WithBufferSize(n int) Option {
	return func(c *Config) { c.BufferSize = n }
}

func withSys(s Sys) Option {
	return func(c *Config) { c.sys = s }
}

var configDefault = Config{
	Timeout:    NoTimeout,
	BufferSize: defaultReadBufSize,
}

func mergeWithDefault(opts ...Option) Config {
	cfg := configDefault

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultReadBufSize
	}

	if cfg.Timeout < 0 {
		cfg.Timeout = NoTimeout
	}

	if cfg.sys == nil {
		cfg.sys = osSys{}
	}

	return cfg
}
