package log_limit

import (
	"time"

	"github.com/WalterSmuts/log-limit/logger"
)

type config struct {
	// log is the logging facility receiving both the rate-limited
	// messages and the limiter's own suppression warnings.
	// The Shared variant requires it to be safe for concurrent use
	// default: logger.NewStdOut()
	log logger.Logger

	// now supplies timestamps for window bookkeeping.
	// It's useful for tests or callers with their own time source
	// default: time.Now
	now func() time.Time
}

func defaultConfig() config {
	return config{
		log: logger.NewStdOut(),
		now: time.Now,
	}
}

type ConfigOption func(c *config)

func WithLogger(log logger.Logger) ConfigOption {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

func WithClock(now func() time.Time) ConfigOption {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
