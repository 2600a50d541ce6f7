package rt4d

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds the session configuration.
type Config struct {
	// ReadTimeout bounds every wait for a bootloader response.
	ReadTimeout time.Duration

	// Logger receives session logging. Defaults to the logrus
	// standard logger.
	Logger *logrus.Logger

	// Progress, if set, is called after every write block.
	Progress ProgressCallback

	// TraceFrames hex-dumps every frame and response at debug level.
	TraceFrames bool
}

func defaultConfig() Config {
	return Config{
		ReadTimeout: 5 * time.Second,
		Logger:      logrus.StandardLogger(),
	}
}

// Option is a functional option for configuring a BootloaderSession.
type Option func(*Config)

// WithReadTimeout sets the per-response read timeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithLogger routes session logging to the given logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithProgress sets a callback invoked after every write block.
func WithProgress(callback ProgressCallback) Option {
	return func(c *Config) {
		c.Progress = callback
	}
}

// WithTraceFrames enables hex dumps of the raw frame traffic.
func WithTraceFrames(trace bool) Option {
	return func(c *Config) {
		c.TraceFrames = trace
	}
}
