package devserver

import (
	"time"

	"github.com/go-chi/cors"
)

// Config holds the server settings.
type Config struct {
	// addr is the address the server will listen on (e.g. ":8080")
	addr string

	// staticDir holds main.wasm, wasm_exec.js and other assets
	staticDir string

	// index is the page served at "/"
	index string

	// timeoutDuration is the maximum duration before timing out a request
	timeoutDuration time.Duration

	// shutdownTimeout is the maximum duration to wait for server shutdown
	shutdownTimeout time.Duration

	// corsOptions configures Cross-Origin Resource Sharing settings
	corsOptions *cors.Options

	// enableMetrics mounts /metrics and counts requests
	enableMetrics bool

	// enableBrotli enables brotli compression for responses
	enableBrotli bool

	// brotliLevel sets the compression level for brotli (1-11, default: 4)
	brotliLevel int
}

// Option defines a functional option for configuring the server
type Option func(*Config)

const (
	defaultAddr            = ":8080"
	defaultTimeout         = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultBrotliLevel     = 4
)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *Config) {
		c.addr = addr
	}
}

// WithStaticDir serves the files of dir under "/"
func WithStaticDir(dir string) Option {
	return func(c *Config) {
		c.staticDir = dir
	}
}

// WithIndex sets the page served at "/"
func WithIndex(html string) Option {
	return func(c *Config) {
		c.index = html
	}
}

// WithRequestTimeout sets the per request timeout
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.timeoutDuration = timeout
	}
}

// WithShutdownTimeout sets the maximum duration to wait for server shutdown
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.shutdownTimeout = timeout
	}
}

// WithCORS sets the CORS options. Nil disables CORS handling.
func WithCORS(options *cors.Options) Option {
	return func(c *Config) {
		c.corsOptions = options
	}
}

// WithMetrics enables Prometheus metrics
func WithMetrics() Option {
	return func(c *Config) {
		c.enableMetrics = true
	}
}

// WithBrotli enables brotli compression with optional compression level
func WithBrotli(level ...int) Option {
	return func(c *Config) {
		c.enableBrotli = true
		c.brotliLevel = defaultBrotliLevel
		if len(level) > 0 {
			c.brotliLevel = min(max(level[0], 1), 11)
		}
	}
}
