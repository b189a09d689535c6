package domain_test

import (
	"testing"
	"time"

	"github.com/drillhq/drill/internal/domain"
)

func newTracker(t *testing.T, hints []string, maxHints int) *domain.Tracker {
	t.Helper()

	meta := domain.Metadata{
		Name:       "basics/hello-branch",
		Level:      domain.LevelBasicInteraction,
		Difficulty: domain.DifficultyBeginner,
	}
	tr := domain.NewTracker(meta, hints, maxHints)
	return &tr
}

func TestTracker_HintsDeterministic(t *testing.T) {
	tr := newTracker(t, []string{"a", "b", "c"}, 3)

	first := tr.Hints()
	second := tr.Hints()

	if len(first) != len(second) {
		t.Fatalf("hint sequences differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("hint %d differs: %q vs %q", i, first[i], second[i])
		}
	}

	// Mutating the returned slice must not affect the exercise.
	first[0] = "mutated"
	if got := tr.Hints()[0]; got != "a" {
		t.Errorf("hint sequence mutated externally: got %q", got)
	}
}

func TestTracker_NextHintOrderAndCounter(t *testing.T) {
	tr := newTracker(t, []string{"a", "b", "c"}, 3)

	for i, want := range []string{"a", "b", "c"} {
		hint, ok := tr.NextHint()
		if !ok {
			t.Fatalf("NextHint %d: no hint available", i)
		}
		if hint != want {
			t.Errorf("NextHint %d = %q, want %q", i, hint, want)
		}
		if tr.HintsUsed() != i+1 {
			t.Errorf("HintsUsed = %d, want %d", tr.HintsUsed(), i+1)
		}
	}

	// Exhausted: no hint, counter stops increasing.
	if _, ok := tr.NextHint(); ok {
		t.Error("NextHint returned a hint after exhaustion")
	}
	if tr.HintsUsed() != 3 {
		t.Errorf("HintsUsed = %d after exhaustion, want 3", tr.HintsUsed())
	}
}

func TestTracker_MaxHintsCapsSequence(t *testing.T) {
	tr := newTracker(t, []string{"a", "b", "c", "d"}, 2)

	if _, ok := tr.NextHint(); !ok {
		t.Fatal("first hint unavailable")
	}
	if _, ok := tr.NextHint(); !ok {
		t.Fatal("second hint unavailable")
	}
	if _, ok := tr.NextHint(); ok {
		t.Error("hint issued past max_hints cap")
	}
	if tr.HintsUsed() != 2 {
		t.Errorf("HintsUsed = %d, want 2", tr.HintsUsed())
	}
}

func TestTracker_ElapsedBeforeStartIsZero(t *testing.T) {
	tr := newTracker(t, nil, 3)

	if got := tr.Elapsed(); got != 0 {
		t.Errorf("Elapsed before StartTimer = %v, want 0", got)
	}
}

func TestTracker_ElapsedMonotonic(t *testing.T) {
	tr := newTracker(t, nil, 3)
	tr.StartTimer()

	first := tr.Elapsed()
	time.Sleep(5 * time.Millisecond)
	second := tr.Elapsed()

	if first < 0 {
		t.Errorf("Elapsed = %v, want non-negative", first)
	}
	if second < first {
		t.Errorf("Elapsed decreased: %v then %v", first, second)
	}
}
