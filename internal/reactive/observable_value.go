package reactive

import "github.com/latticewire/reactor/internal/logger"

// Change describes a single-cell update, passed through the
// interceptor and listener chains.
type Change struct {
	Type     string
	Object   any
	OldValue any
	NewValue any
}

// Interceptor may rewrite or reject a pending change. Returning ok=false
// cancels the write silently; no observer is notified. Chain order is
// registration order, and the chain terminates on the first rejection.
type Interceptor func(Change) (Change, bool)

// Listener is notified, in registration order and under an untracked
// scope, after a change has already been applied.
type Listener func(Change)

// ObservableValue is a single-cell observable (system overview
// component #3): interceptors and change listeners, a value-equality
// short-circuit, and an enhancer hook that normalizes a proposed value
// before it is compared and stored.
type ObservableValue[T any] struct {
	Atom

	value    T
	equals   func(a, b T) bool
	enhancer func(newValue, oldValue T) T

	interceptors []Interceptor

	listeners   []listenerEntry
	listenerSeq uint64
}

type listenerEntry struct {
	id uint64
	fn Listener
}

// NewObservableValue creates an observable cell with no equality
// short-circuit: every Set is treated as a change, matching the
// engine's conservative default for types it cannot compare for free.
func NewObservableValue[T any](name string, initial T) *ObservableValue[T] {
	return &ObservableValue[T]{
		Atom:  Atom{observableCore: observableCore{name: name}},
		value: initial,
	}
}

// NewComparableObservableValue creates an observable cell whose equality
// short-circuit uses Go's built-in == for comparable types.
func NewComparableObservableValue[T comparable](name string, initial T) *ObservableValue[T] {
	o := NewObservableValue(name, initial)
	o.equals = func(a, b T) bool { return a == b }
	return o
}

// WithEquals installs a custom equality function and returns the
// receiver for chaining at construction time.
func (o *ObservableValue[T]) WithEquals(equals func(a, b T) bool) *ObservableValue[T] {
	o.equals = equals
	return o
}

// WithEnhancer installs a value-normalization hook applied before the
// equality check on every Set (e.g. clamping, deep-copying, or
// rejecting a value outright by returning the old one).
func (o *ObservableValue[T]) WithEnhancer(enhancer func(newValue, oldValue T) T) *ObservableValue[T] {
	o.enhancer = enhancer
	return o
}

// Intercept registers an interceptor, appended to the existing chain.
func (o *ObservableValue[T]) Intercept(ic Interceptor) {
	o.interceptors = append(o.interceptors, ic)
}

// Observe registers a change listener, notified in registration order.
// It returns a function that removes the listener; calling it more than
// once is a no-op.
func (o *ObservableValue[T]) Observe(l Listener) func() {
	o.listenerSeq++
	id := o.listenerSeq
	o.listeners = append(o.listeners, listenerEntry{id: id, fn: l})
	return func() {
		for i, e := range o.listeners {
			if e.id == id {
				o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// Get returns the current value, recording a dependency if a derivation
// is currently tracking.
func (o *ObservableValue[T]) Get() T {
	reportObserved(o)
	return o.value
}

// Peek returns the current value without recording a dependency.
func (o *ObservableValue[T]) Peek() T {
	return o.value
}

// Set applies a new value following the guard rails, then the
// interceptor chain (under an untracked scope), then the enhancer, then
// the equality short-circuit, then propagation and listener dispatch.
func (o *ObservableValue[T]) Set(newValue T) error {
	if err := checkIfStateModificationsAreAllowed(); err != nil {
		return err
	}

	prev := untrackedStart()
	change := Change{Type: "update", Object: o, OldValue: o.value, NewValue: newValue}
	cancelled := false
	for _, ic := range o.interceptors {
		c, ok := ic(change)
		if !ok {
			cancelled = true
			break
		}
		if c.Type == "" {
			untrackedEnd(prev)
			return &InvariantViolation{Message: "interceptor returned a truthy change with no Type"}
		}
		change = c
	}
	untrackedEnd(prev)
	if cancelled {
		return nil
	}

	prepared, ok := change.NewValue.(T)
	if !ok {
		return &InvariantViolation{Message: "interceptor returned a change whose NewValue has the wrong type"}
	}
	if o.enhancer != nil {
		prepared = o.enhancer(prepared, o.value)
	}
	if o.equals != nil && o.equals(prepared, o.value) {
		return nil
	}

	old := o.value
	o.value = prepared
	reportChanged(o)

	logger.Debug(logger.TagObservable, "%s: %v -> %v", o.Name(), old, prepared)

	prev = untrackedStart()
	for _, e := range o.listeners {
		e.fn(Change{Type: "update", Object: o, OldValue: old, NewValue: prepared})
	}
	untrackedEnd(prev)
	return nil
}

// Update applies fn to the current value and Sets the result.
func (o *ObservableValue[T]) Update(fn func(T) T) error {
	return o.Set(fn(o.value))
}
