package log_limit

import (
	"github.com/WalterSmuts/log-limit/logger"
	"github.com/WalterSmuts/log-limit/window"
)

// Warning templates are fixed; downstream log consumers match on them.
const (
	suppressStartFormat = "Hit logging threshold! Starting to ignore the previous log for %v"
	resumeFormat        = "Ignored %d logs since %v ago. Starting to log again..."
)

// emit translates a decision outcome into zero, one or two calls on the
// logging facility. Warnings go first so a reader sees the drop summary
// before the message that reopened the window.
func emit(log logger.Logger, out window.Outcome, level Level, format string, args []any) {
	if out.WarnResume {
		log.Warnf(resumeFormat, out.Suppressed, out.Elapsed)
	}
	if out.WarnStart {
		log.Warnf(suppressStartFormat, out.Remaining)
	}
	if !out.Emit {
		return
	}

	switch level {
	case LevelDebug:
		log.Debugf(format, args...)
	case LevelInfo:
		log.Infof(format, args...)
	case LevelWarn:
		log.Warnf(format, args...)
	default:
		log.Errorf(format, args...)
	}
}
