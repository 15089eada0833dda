package window

import "time"

// State is the record behind a single rate-limited call site: how many
// messages were emitted in the current window, when that window started,
// and how many messages have been dropped since the window went over budget.
//
// The zero value means no window has started yet; the first pass through
// Next opens one. A State belongs to exactly one call site and is never
// shared between call sites.
type State struct {
	// Count is the number of messages emitted in the current window.
	// It never exceeds the threshold.
	Count int

	// Start is the timestamp of the call that opened the current window.
	// The zero time means there is no window yet.
	Start time.Time

	// Suppressed is the number of messages dropped since Count reached
	// the threshold. Always 0 while the call site is under budget.
	Suppressed int
}

// Outcome tells the caller what to do with the message that produced it.
// The fields are independent flags rather than a single enum value because
// one call can require several actions at once: a call that reopens a window
// after drops carries a resume summary and the message, and with a threshold
// of zero the first call of every window carries a resume summary and a
// fresh suppression-start warning while the message itself is dropped.
type Outcome struct {
	// Emit forwards the caller's message at the caller's severity.
	Emit bool

	// WarnStart announces that this call used up the window's budget and
	// subsequent messages will be dropped for Remaining.
	WarnStart bool
	Remaining time.Duration

	// WarnResume announces that Suppressed messages were dropped over the
	// last Elapsed and the call site is emitting again.
	WarnResume bool
	Suppressed int
	Elapsed    time.Duration
}

// Next advances st by one call arriving at now and reports what to do with
// that call's message. It is deterministic in its inputs and drives both
// limiter variants.
//
// Each window is anchored to the call that opens it, not to a fixed clock
// grid, so emission is bursty: up to threshold messages in a row, then
// silence until period has passed since the window opened. Any interval no
// longer than period therefore sees at most 2*threshold emissions from one
// call site.
func Next(st State, now time.Time, threshold int, period time.Duration) (State, Outcome) {
	var out Outcome

	if st.Start.IsZero() || elapsed(st.Start, now) >= period {
		if st.Suppressed > 0 {
			out.WarnResume = true
			out.Suppressed = st.Suppressed
			out.Elapsed = elapsed(st.Start, now)
		}
		st = State{Start: now}
	}

	if st.Count < threshold {
		st.Count++
		out.Emit = true
		if st.Count == threshold {
			// This call spends the last of the budget; it is still
			// emitted, suppression starts with the next one.
			out.WarnStart = true
			out.Remaining = period - elapsed(st.Start, now)
		}
		return st, out
	}

	// Over budget. A threshold of zero exhausts the window on its first
	// call, so that call announces the suppression.
	if threshold == 0 && st.Suppressed == 0 {
		out.WarnStart = true
		out.Remaining = period - elapsed(st.Start, now)
	}
	st.Suppressed++
	return st, out
}

// elapsed clamps at zero so a clock stepping backwards reads as a window
// that has not aged, never as a negative duration or a spurious reset.
func elapsed(start, now time.Time) time.Duration {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
