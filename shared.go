package log_limit

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/WalterSmuts/log-limit/window"
)

// Shared rate-limits one call site across every goroutine in the process:
// all goroutines draw from the same window budget, and a window transition
// happens exactly once no matter how many goroutines race over it.
//
// The steady-state path (window active, budget left) is a single
// compare-and-swap on the emission count and takes no lock. The boundary
// transitions -- the window elapsing and the threshold being crossed -- go
// through a mutex and re-check the state once the lock is held, because a
// racing goroutine may have completed the same transition first; losers of
// that race are folded into the new window. Lock contention is therefore
// only paid while the call site is over budget or restarting a window.
//
// Usage Example:
//
//	var slowQuery = log_limit.NewShared(5, time.Minute)
//
//	func runQuery(q string) {
//	    ...
//	    slowQuery.Warnf("query exceeded deadline: %s", q)
//	}
type Shared struct {
	threshold int
	period    time.Duration
	config    config

	// count is the emission count of the current window; startNS is the
	// window start as unix nanoseconds, 0 while no window exists. Both are
	// read lock-free on the fast path. On a reset count is stored before
	// startNS, so a reader holding the fresh start can no longer observe
	// the stale count.
	count   atomic.Int64
	startNS atomic.Int64

	mu         sync.Mutex
	suppressed int
	dirty      bool
}

func NewShared(threshold int, period time.Duration, opts ...ConfigOption) *Shared {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if threshold < 0 {
		threshold = 0
	}

	return &Shared{
		threshold: threshold,
		period:    period,
		config:    config,
	}
}

// Logf forwards the message at level unless the call site is over budget.
// Safe for concurrent use; it returns once the logging facility has been
// called (or the message dropped).
func (s *Shared) Logf(level Level, format string, args ...any) {
	emit(s.config.log, s.decide(s.config.now()), level, format, args)
}

func (s *Shared) Debugf(format string, args ...any) {
	s.Logf(LevelDebug, format, args...)
}

func (s *Shared) Infof(format string, args ...any) {
	s.Logf(LevelInfo, format, args...)
}

func (s *Shared) Warnf(format string, args ...any) {
	s.Logf(LevelWarn, format, args...)
}

func (s *Shared) Errorf(format string, args ...any) {
	s.Logf(LevelError, format, args...)
}

func (s *Shared) decide(now time.Time) window.Outcome {
	for {
		startNS := s.startNS.Load()
		if startNS == 0 || clampElapsed(startNS, now) >= s.period {
			// No window yet, or it elapsed: boundary transition.
			break
		}
		count := s.count.Load()
		if int(count)+1 >= s.threshold {
			// This call either spends the last of the budget or is
			// already over it; both need the boundary path so the
			// start warning fires exactly once.
			break
		}
		if s.count.CompareAndSwap(count, count+1) {
			return window.Outcome{Emit: true}
		}
	}
	return s.boundary(now)
}

// boundary performs a window transition under the lock. The decision runs
// against a snapshot re-read after acquisition: the goroutine that lost the
// race for an elapsed window finds it already reset and lands in the new
// window's count instead of resetting again.
func (s *Shared) boundary(now time.Time) window.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		// A prior transition died halfway through. Restore a fresh
		// window and let this message out.
		s.restore(now)
		return window.Outcome{Emit: true}
	}

	st := window.State{
		Count:      int(s.count.Load()),
		Suppressed: s.suppressed,
	}
	if startNS := s.startNS.Load(); startNS != 0 {
		st.Start = time.Unix(0, startNS)
	}

	next, out := window.Next(st, now, s.threshold, s.period)

	s.dirty = true
	s.suppressed = next.Suppressed
	s.count.Store(int64(next.Count))
	s.startNS.Store(next.Start.UnixNano())
	s.dirty = false

	return out
}

// restore rebuilds a consistent fresh window after a fault was observed
// mid-transition. Best effort: suppression history is discarded.
func (s *Shared) restore(now time.Time) {
	s.suppressed = 0
	s.count.Store(1)
	s.startNS.Store(now.UnixNano())
	s.dirty = false
}

func clampElapsed(startNS int64, now time.Time) time.Duration {
	d := now.Sub(time.Unix(0, startNS))
	if d < 0 {
		return 0
	}
	return d
}
