package reactive

import "github.com/latticewire/reactor/internal/logger"

// StartBatch opens a logical transaction: reaction execution and
// unobservation checks are deferred until the outermost batch closes.
func StartBatch() {
	global.inBatch++
}

// EndBatch closes one level of batch. When the outermost batch closes
// (depth reaches zero), pending reactions are drained FIFO and then
// pending unobservations are resolved, exactly once. Reactions that run
// during the drain open and close their own nested batches; those are
// recognized as nested (via isRunningReactions) and do not re-trigger
// the drain.
func EndBatch() {
	global.inBatch--
	if global.inBatch == 0 && !global.isRunningReactions {
		runReactions()
		drainUnobservations()
	}
}

// Batch runs fn as a single logical transaction: all state mutations
// within it are observed atomically by reactions.
func Batch(fn func()) {
	StartBatch()
	defer EndBatch()
	fn()
}

// BatchValue is Batch for a function that returns a value.
func BatchValue[T any](fn func() T) T {
	StartBatch()
	defer EndBatch()
	return fn()
}

// Action runs fn as a batch with state modifications explicitly
// permitted in strict mode (outside strict mode this adds nothing but
// the batch). This is the contract external action-wrapper
// collaborators are expected to implement; Action is the
// engine's own minimal instance of it, used by tests and direct callers
// that don't need a richer wrapper. Actions nest: actionDepth only
// reaches zero again once the outermost one returns.
func Action(fn func() error) error {
	global.actionDepth++
	StartBatch()
	defer func() {
		EndBatch()
		global.actionDepth--
	}()
	return fn()
}

// runReactions drains global.pendingReactions FIFO. Reactions queued
// during the drain (by writes inside a reaction's own effect) are
// appended and drained in the same pass, bounded by the reentrancy
// budget; exceeding it is reported as a cyclic-reaction diagnostic
// rather than looping forever.
func runReactions() {
	global.isRunningReactions = true
	defer func() { global.isRunningReactions = false }()

	iterations := 0
	for len(global.pendingReactions) > 0 {
		iterations++
		if iterations > global.reentrancyBudget {
			logger.Error(logger.TagReaction, "reaction drain exceeded %d iterations; likely a cyclic reaction", global.reentrancyBudget)
			global.pendingReactions = nil
			return
		}

		batch := global.pendingReactions
		global.pendingReactions = nil
		for _, r := range batch {
			r.isScheduled = false
			r.run()
		}
	}
}

// drainUnobservations resolves every queued observable whose observer
// set is still empty, invoking OnBecomeUnobserved at most once per
// observable per batch. OnBecomeUnobserved may itself
// enqueue further entries (a computed clearing its own observing set
// unobserves its dependencies in turn), so the loop re-checks until the
// queue is empty or the reentrancy budget is spent.
func drainUnobservations() {
	iterations := 0
	for len(global.pendingUnobs) > 0 {
		iterations++
		if iterations > global.reentrancyBudget {
			logger.Warn(logger.TagBatch, "unobservation drain exceeded %d iterations, stopping", global.reentrancyBudget)
			global.pendingUnobs = nil
			return
		}

		batch := global.pendingUnobs
		global.pendingUnobs = nil
		for _, o := range batch {
			oc := o.obsCore()
			oc.isPendingUnobservation = false
			if len(oc.observers) == 0 {
				o.OnBecomeUnobserved()
			}
		}
	}
}
