// Package reactor is a transparent functional-reactive state engine: a
// dependency-tracking graph between observable values and derivations
// (computed values and reactions), kept current through three-color
// staleness propagation rather than eager recomputation on every write.
//
// The engine is single-threaded and cooperative by design (see
// internal/reactive's package doc): callers are expected to either run
// it on one goroutine or provide their own external synchronization, the
// same way the observable-container, action-wrapper, decorator, and
// listener-dispatch layers that typically sit on top of an engine like
// this are left to the caller rather than built in here.
package reactor

import "github.com/latticewire/reactor/internal/reactive"

type (
	// Atom is a dependency-tracking node with no value of its own; it
	// exists so an external container can participate in the graph.
	Atom = reactive.Atom

	// ObservableValue is a single-cell observable with optional
	// interceptors, change listeners, an equality short-circuit, and an
	// enhancer hook.
	ObservableValue[T any] = reactive.ObservableValue[T]

	// ComputedValue is a derived, memoized, lazily-evaluated observable.
	ComputedValue[T any] = reactive.ComputedValue[T]

	// Reaction is an eager derivation run for its side effects.
	Reaction = reactive.Reaction

	// Change describes a single observed mutation, passed through the
	// interceptor and listener chains.
	Change = reactive.Change

	// Interceptor and Listener are the external dispatch contracts an
	// ObservableValue calls into on every accepted Set.
	Interceptor = reactive.Interceptor
	Listener    = reactive.Listener

	// CaughtException and InvariantViolation are the engine's two error
	// kinds: a recovered panic/error from user code, and a detected
	// breach of a tracking invariant.
	CaughtException   = reactive.CaughtException
	InvariantViolation = reactive.InvariantViolation

	// ReactionOption configures a Reaction at construction.
	ReactionOption = reactive.ReactionOption
)

var (
	NewAtom          = reactive.NewAtom
	NewReaction      = reactive.NewReaction
	WithErrorHandler = reactive.WithErrorHandler

	StartBatch = reactive.StartBatch
	EndBatch   = reactive.EndBatch
	Batch      = reactive.Batch
	Action     = reactive.Action

	UntrackedVoid = reactive.UntrackedVoid

	StrictMode          = reactive.StrictMode
	SetReentrancyBudget = reactive.SetReentrancyBudget

	BuildDebugGraph = reactive.BuildDebugGraph
)

// NewObservableValue creates an observable cell with no equality
// short-circuit.
func NewObservableValue[T any](name string, initial T) *ObservableValue[T] {
	return reactive.NewObservableValue[T](name, initial)
}

// NewComparableObservableValue creates an observable cell whose equality
// short-circuit uses Go's built-in == for comparable types.
func NewComparableObservableValue[T comparable](name string, initial T) *ObservableValue[T] {
	return reactive.NewComparableObservableValue[T](name, initial)
}

// NewComputedValue creates a lazily-evaluated computed cell.
func NewComputedValue[T any](name string, compute func() T) *ComputedValue[T] {
	return reactive.NewComputedValue[T](name, compute)
}

// BatchValue is Batch for a function that returns a value.
func BatchValue[T any](fn func() T) T {
	return reactive.BatchValue[T](fn)
}

// Untracked runs fn without dependency tracking and returns its result.
func Untracked[T any](fn func() T) T {
	return reactive.Untracked[T](fn)
}
