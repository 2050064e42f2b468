package reactive

// observableCore is the atom/observable base component (system overview
// #2): the minimal observable node. It holds the observer set, the
// staleness floor and the per-run access bookkeeping shared by every
// observable kind (Atom, ObservableValue, ComputedValue).
type observableCore struct {
	name string

	// observers is the ordered sequence of derivations depending on
	// this observable. Order is insertion order; removal is swap-with-
	// last, so order is NOT read order.
	observers []Derivation

	// observersIndex maps a derivation's stable id to its index in
	// observers, skipping index 0: the entry occupying slot 0 is never
	// recorded, since removal falls back to slot 0 when the map lookup
	// misses.
	observersIndex map[uint64]int

	// lowestObserverState is an upper bound on the freshest
	// dependenciesState across all observers; it short-circuits
	// redundant propagation.
	lowestObserverState DepState

	// lastAccessedBy is the run-id of the derivation that most
	// recently reported observing this node during its current run;
	// it dedupes reads within a single run.
	lastAccessedBy uint64

	// diffValue is scratch state used only during a derivation's
	// dependency rebinding; 0 outside of a rebinding pass.
	diffValue int8

	// isPendingUnobservation is true once this observable has been
	// queued for an end-of-batch unobservation check, queued at most
	// once per batch.
	isPendingUnobservation bool
}

// Observable is implemented by every node that can be depended on: Atom,
// ObservableValue and ComputedValue.
type Observable interface {
	Name() string
	obsCore() *observableCore
	// OnBecomeUnobserved is invoked when the last observer leaves and a
	// batch is closing.
	OnBecomeUnobserved()
}

// derivationCore is the derivation base component (system overview #4):
// it tracks the observing set, the scratch set written during a run,
// and the four-valued dependenciesState.
type derivationCore struct {
	id uint64

	// observing is the unique, ordered set of observables this
	// derivation depended on as of its most recent run (read order).
	observing []Observable

	// newObserving is scratch state written during a run; it may
	// contain duplicates until bindDependencies compacts it.
	newObserving []Observable

	dependenciesState DepState

	// runID is assigned fresh each time this derivation starts
	// tracking; globally unique via the process-wide counter.
	runID uint64

	// unboundDepsCount counts entries written to newObserving during
	// the current run, before dedup.
	unboundDepsCount int
}

// Derivation is implemented by every node that depends on observables:
// ComputedValue and Reaction.
type Derivation interface {
	Name() string
	derivCore() *derivationCore
	// OnBecomeStale is used by computed values to propagate
	// PossiblyStale downstream, and by reactions to enqueue themselves
	// for the next batch drain.
	OnBecomeStale()
}

// confirmingObservable is implemented by observables that can be asked
// to resolve their own possible staleness by recomputing (only
// ComputedValue; Atom and ObservableValue change only via direct writes,
// which always propagate Stale directly rather than PossiblyStale).
type confirmingObservable interface {
	confirmUpToDate()
}
