package domain

import "time"

// Tracker carries the mutable per-instance attempt state every concrete
// exercise shares: the hint counter and the attempt timer. Concrete exercise
// types embed it to satisfy the stateful half of the Exercise interface.
//
// The hint counter is monotonic and only resets when a new exercise instance
// is constructed. That carryover across repeated attempts on the same
// instance is deliberate, observable behavior.
type Tracker struct {
	meta      Metadata
	hints     []string
	maxHints  int
	hintsUsed int
	startTime time.Time
}

// NewTracker builds attempt state for an exercise with the given hint
// sequence and cap.
func NewTracker(meta Metadata, hints []string, maxHints int) Tracker {
	return Tracker{
		meta:     meta,
		hints:    hints,
		maxHints: maxHints,
	}
}

func (t *Tracker) Meta() Metadata { return t.meta }

// Hints returns the fixed ordered hint sequence. Callers get a copy so the
// sequence stays deterministic.
func (t *Tracker) Hints() []string {
	out := make([]string, len(t.hints))
	copy(out, t.hints)
	return out
}

// NextHint issues hints strictly in order, one per call, stopping at the
// shorter of the hint sequence and the cap. Issued hints are never revoked.
func (t *Tracker) NextHint() (string, bool) {
	if t.hintsUsed >= len(t.hints) || t.hintsUsed >= t.maxHints {
		return "", false
	}
	hint := t.hints[t.hintsUsed]
	t.hintsUsed++
	return hint, true
}

func (t *Tracker) HintsUsed() int { return t.hintsUsed }
func (t *Tracker) MaxHints() int  { return t.maxHints }

// StartTimer records the wall-clock start of an attempt.
func (t *Tracker) StartTimer() {
	t.startTime = time.Now()
}

// Elapsed reports time since StartTimer. Before the timer has been started it
// reports zero rather than failing.
func (t *Tracker) Elapsed() time.Duration {
	if t.startTime.IsZero() {
		return 0
	}
	return time.Since(t.startTime)
}
