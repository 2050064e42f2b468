package reactor_test

import (
	"testing"

	reactor "github.com/latticewire/reactor"
)

// This file exercises the public facade directly (rather than
// internal/reactive) so that a re-export that fails to compile, such as
// a generic function assigned to a var without instantiation, is caught
// here instead of silently shipping.

func TestFacadeObservableValueAndComputed(t *testing.T) {
	a := reactor.NewComparableObservableValue("a", 2)
	b := reactor.NewComparableObservableValue("b", 3)

	sum := reactor.NewComputedValue("sum", func() int {
		return a.Get() + b.Get()
	})

	v, err := sum.Get()
	if err != nil {
		t.Fatalf("sum.Get: %v", err)
	}
	if v != 5 {
		t.Fatalf("expected sum=5, got %d", v)
	}

	if err := a.Set(10); err != nil {
		t.Fatalf("a.Set: %v", err)
	}
	v, err = sum.Get()
	if err != nil {
		t.Fatalf("sum.Get after write: %v", err)
	}
	if v != 13 {
		t.Fatalf("expected sum=13 after write, got %d", v)
	}
}

func TestFacadeObservableValueNonComparable(t *testing.T) {
	tags := reactor.NewObservableValue("tags", []string{"a", "b"})

	snapshot := reactor.NewComputedValue("snapshot", func() int {
		return len(tags.Get())
	})

	v, err := snapshot.Get()
	if err != nil {
		t.Fatalf("snapshot.Get: %v", err)
	}
	if v != 2 {
		t.Fatalf("expected snapshot=2, got %d", v)
	}

	if err := tags.Set([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("tags.Set: %v", err)
	}
	v, err = snapshot.Get()
	if err != nil {
		t.Fatalf("snapshot.Get after write: %v", err)
	}
	if v != 3 {
		t.Fatalf("expected snapshot=3 after write, got %d", v)
	}
}

func TestFacadeReactionAndBatch(t *testing.T) {
	n := reactor.NewComparableObservableValue("n", 1)

	runs := 0
	var lastSeen int
	r := reactor.NewReaction("r", func() error {
		lastSeen = n.Get()
		runs++
		return nil
	})
	defer r.Dispose()

	if runs != 1 || lastSeen != 1 {
		t.Fatalf("expected 1 run with lastSeen=1 after construction, got runs=%d lastSeen=%d", runs, lastSeen)
	}

	reactor.Batch(func() {
		_ = n.Set(2)
		_ = n.Set(3)
	})
	if runs != 2 || lastSeen != 3 {
		t.Fatalf("expected exactly 1 additional run with lastSeen=3, got runs=%d lastSeen=%d", runs, lastSeen)
	}

	doubled := reactor.BatchValue(func() int {
		return n.Get() * 2
	})
	if doubled != 6 {
		t.Fatalf("expected doubled=6, got %d", doubled)
	}
}

func TestFacadeUntracked(t *testing.T) {
	a := reactor.NewComparableObservableValue("a", 42)

	runs := 0
	r := reactor.NewReaction("r", func() error {
		reactor.Untracked(func() int {
			return a.Get()
		})
		runs++
		return nil
	})
	defer r.Dispose()

	if runs != 1 {
		t.Fatalf("expected 1 run after construction, got %d", runs)
	}

	// a was read inside Untracked, so the reaction never subscribed to
	// it: a write must not trigger a rerun.
	reactor.Batch(func() { _ = a.Set(99) })
	if runs != 1 {
		t.Fatalf("expected no rerun after an untracked read's source changed, got %d runs", runs)
	}
}
