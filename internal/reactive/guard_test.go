package reactive

import "testing"

func TestGuardAllowsPlainWritesOutsideStrictMode(t *testing.T) {
	resetGlobalForTest(t)

	o := NewComparableObservableValue("o", 1)
	if err := o.Set(2); err != nil {
		t.Fatalf("expected a write outside strict mode to succeed, got %v", err)
	}
}

func TestGuardForbidsWritesDuringComputedEvaluation(t *testing.T) {
	resetGlobalForTest(t)

	a := NewComparableObservableValue("a", 1)
	b := NewComparableObservableValue("b", 1)

	var setErr error
	c := NewComputedValue("c", func() int {
		setErr = a.Set(99)
		return b.Get()
	})
	if _, err := c.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := setErr.(*InvariantViolation); !ok {
		t.Errorf("expected InvariantViolation from writing during computed evaluation, got %v", setErr)
	}
}

func TestGuardAllowsWritesFromWithinAReaction(t *testing.T) {
	resetGlobalForTest(t)

	a := NewComparableObservableValue("a", 1)
	b := NewComparableObservableValue("b", 1)

	var setErr error
	r := NewReaction("r", func() error {
		setErr = b.Set(a.Get() + 1)
		return nil
	})
	defer r.Dispose()

	if setErr != nil {
		t.Errorf("expected a reaction to be allowed to write state, got %v", setErr)
	}
	if got := b.Peek(); got != 2 {
		t.Errorf("expected b=2, got %d", got)
	}
}
