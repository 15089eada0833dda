package log_limit

import (
	"time"

	"github.com/WalterSmuts/log-limit/window"
)

// Exclusive rate-limits one call site for one goroutine. It holds its
// window state with no synchronization, so every goroutine reaching the
// call site must own its own instance; two goroutines never share a
// suppression budget this way, and an Exclusive limiter never blocks.
//
// Up to threshold messages are forwarded per period, counted from the call
// that opens each window. The call that spends the last of the budget also
// announces how long further messages will be dropped; the call that
// reopens the window after drops announces how many were dropped.
//
// Usage Example:
//
//	limit := log_limit.NewExclusive(3, time.Second)
//	for item := range queue {
//	    if err := handle(item); err != nil {
//	        limit.Errorf("handling %v failed: %v", item, err)
//	    }
//	}
type Exclusive struct {
	threshold int
	period    time.Duration
	config    config
	state     window.State
}

func NewExclusive(threshold int, period time.Duration, opts ...ConfigOption) *Exclusive {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if threshold < 0 {
		threshold = 0
	}

	return &Exclusive{
		threshold: threshold,
		period:    period,
		config:    config,
	}
}

// Logf forwards the message at level unless the call site is over budget.
// It returns once the logging facility has been called (or the message
// dropped); nothing runs in the background.
func (e *Exclusive) Logf(level Level, format string, args ...any) {
	var out window.Outcome
	e.state, out = window.Next(e.state, e.config.now(), e.threshold, e.period)
	emit(e.config.log, out, level, format, args)
}

func (e *Exclusive) Debugf(format string, args ...any) {
	e.Logf(LevelDebug, format, args...)
}

func (e *Exclusive) Infof(format string, args ...any) {
	e.Logf(LevelInfo, format, args...)
}

func (e *Exclusive) Warnf(format string, args ...any) {
	e.Logf(LevelWarn, format, args...)
}

func (e *Exclusive) Errorf(format string, args ...any) {
	e.Logf(LevelError, format, args...)
}
