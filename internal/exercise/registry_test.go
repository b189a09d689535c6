package exercise_test

import (
	"errors"
	"testing"
	"time"

	"github.com/drillhq/drill/internal/domain"
	"github.com/drillhq/drill/internal/exercise"
)

func newTestRegistry(t *testing.T) *exercise.Registry {
	t.Helper()

	r := exercise.NewRegistry(exercise.NewLoader(writeTestPack(t)), nil, time.Second)
	if err := r.LoadPack("testpack"); err != nil {
		t.Fatalf("LoadPack failed: %v", err)
	}
	return r
}

func TestRegistry_OrderPreserved(t *testing.T) {
	r := newTestRegistry(t)

	ids := r.IDs()
	want := []string{"testpack/basics/greeting", "testpack/basics/echo"}
	if len(ids) != len(want) {
		t.Fatalf("IDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestRegistry_GetFreshInstance(t *testing.T) {
	r := newTestRegistry(t)

	first, err := r.Get("testpack/basics/greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := first.NextHint(); !ok {
		t.Fatal("first instance gave no hint")
	}
	if first.HintsUsed() != 1 {
		t.Errorf("HintsUsed = %d, want 1", first.HintsUsed())
	}

	second, err := r.Get("testpack/basics/greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if second.HintsUsed() != 0 {
		t.Errorf("fresh instance HintsUsed = %d, want 0", second.HintsUsed())
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := newTestRegistry(t)

	if _, err := r.Get("testpack/basics/nope"); !errors.Is(err, domain.ErrExerciseNotFound) {
		t.Errorf("Get(missing) = %v, want ErrExerciseNotFound", err)
	}
}

func TestRegistry_Next(t *testing.T) {
	r := newTestRegistry(t)

	if next := r.Next("testpack/basics/greeting"); next != "testpack/basics/echo" {
		t.Errorf("Next = %q, want testpack/basics/echo", next)
	}
	if next := r.Next("testpack/basics/echo"); next != "" {
		t.Errorf("Next after last = %q, want empty", next)
	}
}

func TestRegistry_Stats(t *testing.T) {
	r := newTestRegistry(t)

	stats := r.Stats()
	if stats[domain.LevelBasicInteraction] != 2 {
		t.Errorf("basic_interaction count = %d, want 2", stats[domain.LevelBasicInteraction])
	}
}

func TestSplitID(t *testing.T) {
	packID, slug, ok := exercise.SplitID("testpack/basics/greeting")
	if !ok || packID != "testpack" || slug != "basics/greeting" {
		t.Errorf("SplitID = (%q, %q, %v)", packID, slug, ok)
	}
	if _, _, ok := exercise.SplitID("noslash"); ok {
		t.Error("SplitID accepted an ID without a pack")
	}
}
