// Package reactive implements the dependency-tracking graph and
// propagation algorithm of a transparent functional-reactive state
// engine: the bipartite graph between observables (atoms, observable
// values, computed values viewed as observables) and derivations
// (computed values, reactions), per-run dependency rebinding, the
// three-color staleness propagation, and the batching/unobservation
// machinery.
//
// The engine is single-threaded and cooperative by contract: there is
// exactly one tracking slot, held in a package-level global state shared
// by the whole process, and callers on multi-threaded hosts must
// serialize their own access to it (for example with an outer mutex).
package reactive
