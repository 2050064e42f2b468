package reactive

import "github.com/latticewire/reactor/internal/logger"

// Reaction is an eager derivation (system overview component #6): it has
// no value of its own and is never depended upon, so it implements
// Derivation only, not Observable. Its own name field lives directly on
// the struct rather than inside derivationCore, since (unlike
// ComputedValue) it does not also embed an Atom, so there is no field-
// promotion ambiguity to avoid.
type Reaction struct {
	derivationCore

	name        string
	fn          func() error
	onError     func(error)
	isScheduled bool
	disposed    bool
}

// ReactionOption configures a Reaction at construction time.
type ReactionOption func(*Reaction)

// WithErrorHandler installs a handler invoked whenever fn panics or
// returns an error, instead of the default (a log line at TagReaction).
func WithErrorHandler(h func(error)) ReactionOption {
	return func(r *Reaction) { r.onError = h }
}

// NewReaction creates and immediately runs a reaction. Unlike
// ComputedValue, a reaction is eager by construction: it exists to
// perform a side effect for its dependencies' current values, not to be
// asked for one later, so there is nothing to gain from deferring the
// first run.
func NewReaction(name string, fn func() error, opts ...ReactionOption) *Reaction {
	r := &Reaction{
		derivationCore: derivationCore{id: nextDerivationID(), dependenciesState: NotTracking},
		name:           name,
		fn:             fn,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.run()
	return r
}

func (r *Reaction) Name() string { return r.name }

func (r *Reaction) derivCore() *derivationCore { return &r.derivationCore }

// OnBecomeStale implements Derivation: a reaction schedules itself for
// the next batch drain, deduplicating repeated staleness notifications
// within the same batch via isScheduled.
func (r *Reaction) OnBecomeStale() {
	if r.disposed || r.isScheduled {
		return
	}
	r.isScheduled = true
	global.pendingReactions = append(global.pendingReactions, r)
}

// run executes fn under tracking, inside its own batch so that any
// writes fn makes are themselves batched. A panic or error
// from fn is captured and routed to onError, or logged, rather than
// allowed to abort the drain other reactions are waiting on.
func (r *Reaction) run() {
	if r.disposed {
		return
	}
	if !shouldCompute(r) {
		return
	}

	StartBatch()
	defer EndBatch()

	prev := prepareTracking(r)
	var caught *CaughtException
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				caught = newCaughtException(rec)
			}
		}()
		if err := r.fn(); err != nil {
			caught = &CaughtException{Cause: err}
		}
	}()
	finishTracking(r, prev)

	if caught != nil {
		if r.onError != nil {
			r.onError(caught)
		} else {
			logger.Error(logger.TagReaction, "%s: %v", r.name, caught)
		}
	}
}

// Dispose tears down the reaction: it stops observing everything, so its
// dependencies can themselves become unobserved, and it is idempotent.
func (r *Reaction) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	clearObserving(r)
	r.dependenciesState = NotTracking
}
