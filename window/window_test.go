package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testBase = time.Unix(1700000000, 0)

func Test_Next_first_call_opens_window(t *testing.T) {
	st, out := Next(State{}, testBase, 3, 5*time.Millisecond)

	assert.True(t, out.Emit)
	assert.False(t, out.WarnStart)
	assert.False(t, out.WarnResume)
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, testBase, st.Start)
	assert.Equal(t, 0, st.Suppressed)
}

func Test_Next_burst_bound(t *testing.T) {
	const threshold = 3
	period := 5 * time.Millisecond

	st := State{}
	var out Outcome
	emitted := 0
	for i := 0; i < 10; i++ {
		now := testBase.Add(time.Duration(i) * 100 * time.Microsecond)
		st, out = Next(st, now, threshold, period)
		if out.Emit {
			emitted++
		}
	}

	assert.Equal(t, threshold, emitted)
	assert.Equal(t, threshold, st.Count)
	assert.Equal(t, 7, st.Suppressed)
}

func Test_Next_warns_when_budget_spent(t *testing.T) {
	const threshold = 3
	period := 5 * time.Millisecond

	st := State{}
	var out Outcome
	for i := 0; i < threshold; i++ {
		now := testBase.Add(time.Duration(i) * time.Millisecond)
		st, out = Next(st, now, threshold, period)
		assert.True(t, out.Emit)
		if i < threshold-1 {
			assert.False(t, out.WarnStart)
		}
	}

	// The third call spends the last of the budget and is still emitted.
	assert.True(t, out.WarnStart)
	assert.Equal(t, 3*time.Millisecond, out.Remaining)

	// The next call is dropped without a second warning.
	st, out = Next(st, testBase.Add(3*time.Millisecond), threshold, period)
	assert.False(t, out.Emit)
	assert.False(t, out.WarnStart)
	assert.False(t, out.WarnResume)
	assert.Equal(t, 1, st.Suppressed)
}

func Test_Next_resume_with_summary(t *testing.T) {
	period := 5 * time.Millisecond

	st := State{Count: 2, Start: testBase, Suppressed: 4}
	st, out := Next(st, testBase.Add(7*time.Millisecond), 2, period)

	assert.True(t, out.Emit)
	assert.True(t, out.WarnResume)
	assert.Equal(t, 4, out.Suppressed)
	assert.Equal(t, 7*time.Millisecond, out.Elapsed)
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, 0, st.Suppressed)
	assert.Equal(t, testBase.Add(7*time.Millisecond), st.Start)
}

func Test_Next_resume_without_summary(t *testing.T) {
	period := 5 * time.Millisecond

	// Window elapsed but nothing was dropped: no summary warning.
	st := State{Count: 1, Start: testBase}
	st, out := Next(st, testBase.Add(period), 3, period)

	assert.True(t, out.Emit)
	assert.False(t, out.WarnResume)
	assert.Equal(t, 1, st.Count)
	assert.Equal(t, testBase.Add(period), st.Start)
}

func Test_Next_resume_at_exact_period(t *testing.T) {
	period := 5 * time.Millisecond

	// The window is [start, start+period): a call landing exactly on the
	// boundary opens a new window.
	st := State{Count: 3, Start: testBase, Suppressed: 1}
	_, out := Next(st, testBase.Add(period), 3, period)

	assert.True(t, out.Emit)
	assert.True(t, out.WarnResume)
	assert.Equal(t, 1, out.Suppressed)
}

func Test_Next_zero_threshold(t *testing.T) {
	period := 5 * time.Millisecond

	// First call of the window is dropped and announces the suppression.
	st, out := Next(State{}, testBase, 0, period)
	assert.False(t, out.Emit)
	assert.True(t, out.WarnStart)
	assert.Equal(t, period, out.Remaining)
	assert.Equal(t, 1, st.Suppressed)

	// Later calls in the window are tallied silently.
	st, out = Next(st, testBase.Add(time.Millisecond), 0, period)
	assert.False(t, out.Emit)
	assert.False(t, out.WarnStart)
	assert.Equal(t, 2, st.Suppressed)

	// The next window reports the drops and immediately suppresses again.
	st, out = Next(st, testBase.Add(period), 0, period)
	assert.False(t, out.Emit)
	assert.True(t, out.WarnResume)
	assert.Equal(t, 2, out.Suppressed)
	assert.True(t, out.WarnStart)
	assert.Equal(t, 1, st.Suppressed)
}

func Test_Next_clock_going_backwards(t *testing.T) {
	period := 5 * time.Millisecond

	// A clock stepping backwards must not reset the window or produce a
	// negative duration anywhere.
	st := State{Count: 3, Start: testBase, Suppressed: 2}
	st, out := Next(st, testBase.Add(-time.Hour), 3, period)

	assert.False(t, out.Emit)
	assert.False(t, out.WarnResume)
	assert.Equal(t, testBase, st.Start)
	assert.Equal(t, 3, st.Suppressed)

	// Same while the budget is still open: the call is counted in the
	// current window.
	st2 := State{Count: 1, Start: testBase}
	st2, out = Next(st2, testBase.Add(-time.Hour), 3, period)
	assert.True(t, out.Emit)
	assert.Equal(t, 2, st2.Count)
	assert.Equal(t, testBase, st2.Start)
}

func Test_Next_interval_bound(t *testing.T) {
	const threshold = 3
	period := 10 * time.Millisecond

	// Hammer one window dry, then hammer the next. Two adjacent windows'
	// bursts can land inside one period-sized interval, but never more
	// than 2*threshold emissions.
	st := State{}
	var out Outcome
	emitted := 0
	intervalStart := testBase.Add(5 * time.Millisecond)
	for i := 0; i < 200; i++ {
		now := testBase.Add(time.Duration(i) * 100 * time.Microsecond)
		st, out = Next(st, now, threshold, period)
		if out.Emit && !now.Before(intervalStart) && now.Before(intervalStart.Add(period)) {
			emitted++
		}
	}

	assert.LessOrEqual(t, emitted, 2*threshold)
}

func Test_Next_window_anchored_to_first_call(t *testing.T) {
	period := 10 * time.Millisecond

	// The window opens at the first call's timestamp, not on a fixed grid:
	// a late burst still gets its full budget once the previous window
	// elapses.
	st := State{}
	var out Outcome
	st, _ = Next(st, testBase, 2, period)
	st, _ = Next(st, testBase.Add(9*time.Millisecond), 2, period)
	st, out = Next(st, testBase.Add(9500*time.Microsecond), 2, period)
	assert.False(t, out.Emit)

	st, out = Next(st, testBase.Add(10*time.Millisecond), 2, period)
	assert.True(t, out.Emit)
	assert.Equal(t, testBase.Add(10*time.Millisecond), st.Start)
	assert.Equal(t, 1, st.Count)
}
