package log_limit

import (
	"sync"
	"time"
)

// Registry hands out one Shared limiter per call-site name. A name stands
// for a single fixed log statement, so the same name always yields the same
// limiter no matter which goroutine asks; threshold and period are bound by
// whichever call registers the name first and later arguments for the same
// name are ignored. There is no way to remove a site; the table lives for
// the life of the process.
//
// Usage Example:
//
//	var limits = log_limit.NewRegistry(
//	    log_limit.WithLogger(logger.NewZap(zapLogger)),
//	)
//
//	func poll() {
//	    if err := fetch(); err != nil {
//	        limits.Site("poll-fetch", 3, time.Minute).Errorf("fetch failed: %v", err)
//	    }
//	}
type Registry struct {
	opts []ConfigOption

	mu    sync.Mutex
	sites map[string]*Shared
}

func NewRegistry(opts ...ConfigOption) *Registry {
	return &Registry{
		opts:  opts,
		sites: make(map[string]*Shared),
	}
}

// Site returns the limiter registered under name, creating it on first use.
// Distinct names get distinct limiters and never contend with each other.
func (r *Registry) Site(name string, threshold int, period time.Duration) *Shared {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sites[name]; ok {
		return s
	}
	s := NewShared(threshold, period, r.opts...)
	r.sites[name] = s
	return s
}

var defaultRegistry = NewRegistry()

// Site returns a limiter from the process-wide default registry. It is the
// closest Go equivalent of declaring a rate-limited log statement in place:
//
//	log_limit.Site("reconnect", 3, time.Minute).Errorf("reconnect failed: %v", err)
func Site(name string, threshold int, period time.Duration) *Shared {
	return defaultRegistry.Site(name, threshold, period)
}
