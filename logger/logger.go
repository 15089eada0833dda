package logger

// Logger is the logging facility the limiters forward to. It receives the
// caller's rate-limited messages at the caller's severity, plus the
// limiter's own warn-severity suppression notices. This interface allows
// users to plug in their preferred logging implementation (e.g., zap,
// logrus, slog, standard log) or use the provided Noop logger to discard
// everything.
//
// Implementations handed to the Shared limiter variant must be safe for
// concurrent use; the limiter calls them from whichever goroutine hit the
// call site.
//
// Usage Example:
//
//	// Route a shared limiter's output through zap
//	limit := log_limit.NewShared(3, time.Second,
//	    log_limit.WithLogger(logger.NewZap(zapLogger)),
//	)
//
//	// Record output in tests
//	captured := logger.NewCapture()
//	limit := log_limit.NewExclusive(3, time.Second,
//	    log_limit.WithLogger(captured),
//	)
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
