package reactive

import "github.com/latticewire/reactor/internal/logger"

// ComputedValue is a derived, memoized observable (system overview
// component #5): it is both an Observable (other derivations may depend
// on it) and a Derivation (it depends on other observables). It embeds
// Atom for the observer-side half of that bipartite identity and
// derivationCore for the dependency-side half, exposed through the
// obsCore()/derivCore() accessor pair rather than a shared field, so the
// two embeddings never collide.
//
// Construction is lazy: a fresh ComputedValue does not run compute
// until first observed. dependenciesState
// starts at NotTracking, which shouldCompute already treats as "must
// recompute", so no separate "never run" flag is needed.
type ComputedValue[T any] struct {
	Atom
	derivationCore

	compute func() T
	equals  func(a, b T) bool

	cached T
	caught *CaughtException // nil unless the most recent compute panicked
}

// NewComputedValue creates a lazily-evaluated computed cell. compute is
// invoked with this value's dependencies being tracked; it must not
// mutate observable state (guard.go forbids that while a derivation is
// tracking, regardless).
func NewComputedValue[T any](name string, compute func() T) *ComputedValue[T] {
	return &ComputedValue[T]{
		Atom:           Atom{observableCore: observableCore{name: name}},
		derivationCore: derivationCore{id: nextDerivationID(), dependenciesState: NotTracking},
		compute:        compute,
	}
}

// WithEquals installs a custom equality function used to decide whether
// a recomputed value counts as "changed" for downstream propagation. The
// zero value (nil) means every recompute is treated as a change, the
// engine's conservative default (deep-equality helpers are out of scope for
// this package).
func (c *ComputedValue[T]) WithEquals(equals func(a, b T) bool) *ComputedValue[T] {
	c.equals = equals
	return c
}

func (c *ComputedValue[T]) Name() string { return c.Atom.Name() }

func (c *ComputedValue[T]) obsCore() *observableCore { return &c.Atom.observableCore }

func (c *ComputedValue[T]) derivCore() *derivationCore { return &c.derivationCore }

// OnBecomeStale implements Derivation: a computed never eagerly
// recomputes on its own behalf, it only lets its own observers know they
// might need to.
func (c *ComputedValue[T]) OnBecomeStale() {
	propagateMaybeChanged(c)
}

// OnBecomeUnobserved implements Observable, shadowing Atom's version
// (Go resolves the outer type's own method over the promoted one): a
// computed with no observers left has nothing worth keeping current, so
// it drops its dependency edges and cached state entirely rather than
// waiting to be asked again.
func (c *ComputedValue[T]) OnBecomeUnobserved() {
	clearObserving(c)
	c.dependenciesState = NotTracking
	var zero T
	c.cached = zero
	c.caught = nil
	if c.Hook != nil {
		c.Hook()
	}
}

// confirmUpToDate implements confirmingObservable: it is called, under
// an untracked scope, by an observer resolving its own PossiblyStale
// belief. Recomputing (if needed) and discarding the result is enough;
// Get's own propagation call is what actually updates dependenciesState
// on the observers walking this node in shouldCompute's loop.
func (c *ComputedValue[T]) confirmUpToDate() {
	_, _ = c.Get()
}

// Get returns the current value, recomputing first if shouldCompute
// decides this computed's belief about its own freshness cannot be
// trusted. A panic from compute is
// captured as a CaughtException and re-raised on every Get until the
// next genuine recompute succeeds; it is never allowed to escape
// tracking bookkeeping, so the graph stays consistent even when user
// code misbehaves.
func (c *ComputedValue[T]) Get() (T, error) {
	reportObserved(c)

	if shouldCompute(c) {
		c.recompute()
	}
	if c.caught != nil {
		var zero T
		return zero, c.caught
	}
	return c.cached, nil
}

// Peek returns the last-computed value without recording a dependency
// or forcing a recompute, even if stale. Callers that need a guaranteed-
// fresh value must use Get.
func (c *ComputedValue[T]) Peek() T {
	return c.cached
}

func (c *ComputedValue[T]) recompute() {
	wasNotTracking := c.dependenciesState == NotTracking
	oldCached := c.cached
	oldCaught := c.caught

	prev := prepareTracking(c)
	var newVal T
	var caught *CaughtException
	func() {
		defer func() {
			if r := recover(); r != nil {
				caught = newCaughtException(r)
			}
		}()
		newVal = c.compute()
	}()
	finishTracking(c, prev)

	changed := wasNotTracking || caught != nil || oldCaught != nil ||
		c.equals == nil || !c.equals(oldCached, newVal)

	if caught != nil {
		c.caught = caught
		var zero T
		c.cached = zero
	} else {
		c.caught = nil
		c.cached = newVal
	}

	logger.Trace(logger.TagComputed, "%s: recomputed, changed=%v", c.Name(), changed)

	if changed {
		propagateChangeConfirmed(c)
	}
}
