package logger

// Noop discards everything. Handing it to a limiter turns the call site
// into a pure drop counter: the suppression bookkeeping still runs, but
// nothing reaches a sink.
type Noop struct {
}

var _ Logger = &Noop{}

func (n Noop) Debugf(format string, args ...any) {
}

func (n Noop) Infof(format string, args ...any) {
}

func (n Noop) Warnf(format string, args ...any) {
}

func (n Noop) Errorf(format string, args ...any) {
}
