package logger

import (
	"fmt"
	"sync"
)

// Entry is one call recorded by Capture: the level tag and the fully
// formatted message.
type Entry struct {
	Level   string
	Message string
}

// Capture records every call so tests can assert on exactly what reached
// the logging facility, in order. Safe for concurrent use, so it can sit
// behind a Shared limiter hammered from many goroutines.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Logger = &Capture{}

func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) Debugf(format string, args ...any) {
	c.record("DEBUG", format, args)
}

func (c *Capture) Infof(format string, args ...any) {
	c.record("INFO", format, args)
}

func (c *Capture) Warnf(format string, args ...any) {
	c.record("WARN", format, args)
}

func (c *Capture) Errorf(format string, args ...any) {
	c.record("ERROR", format, args)
}

// Entries returns a copy of everything recorded so far, in call order.
func (c *Capture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByLevel returns the recorded entries whose level tag matches level.
func (c *Capture) ByLevel(level string) []Entry {
	var out []Entry
	for _, e := range c.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Reset discards everything recorded so far.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
}

func (c *Capture) record(level, format string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, Entry{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
