package reactive

import "sync/atomic"

// DepState is the four-valued derivation-state enumeration (lower is
// fresher).
type DepState int8

const (
	// NotTracking means the derivation holds no meaningful observing
	// set: it has never run, or has been torn down.
	NotTracking DepState = -1
	// UpToDate means every observed dependency is current.
	UpToDate DepState = 0
	// PossiblyStale means a transitive computed dependency may have
	// changed and must be confirmed before use.
	PossiblyStale DepState = 1
	// Stale means a direct (shallow) dependency changed; recompute on
	// next use.
	Stale DepState = 2
)

func (s DepState) String() string {
	switch s {
	case NotTracking:
		return "NOT_TRACKING"
	case UpToDate:
		return "UP_TO_DATE"
	case PossiblyStale:
		return "POSSIBLY_STALE"
	case Stale:
		return "STALE"
	default:
		return "UNKNOWN"
	}
}

// globalState is the process-wide mutable context (system overview
// component #1): the tracking slot, batch depth, run-id counter, and
// the two pending queues. The core is single-threaded; nothing here is
// synchronized.
type globalState struct {
	trackingDerivation Derivation
	runID              uint64
	inBatch            int
	pendingReactions   []*Reaction
	pendingUnobs       []Observable
	// actionDepth counts nested Action() calls; in strict mode, a write
	// is only permitted while this is above zero.
	actionDepth        int
	strictMode         bool
	isRunningReactions bool

	reentrancyBudget  int
	newObservingSlack int
}

var global = &globalState{
	reentrancyBudget:  100,
	newObservingSlack: 100,
}

// StrictMode toggles whether state changes are permitted outside an
// explicit Action, even when no derivation is tracking.
func StrictMode(enabled bool) {
	global.strictMode = enabled
}

// SetReentrancyBudget overrides the number of outer-loop iterations the
// reaction drain and unobservation drain will tolerate before treating
// further iterations as a cyclic-reaction diagnostic. The default is
// 100.
func SetReentrancyBudget(n int) {
	if n > 0 {
		global.reentrancyBudget = n
	}
}

var derivationIDCounter atomic.Uint64

func nextDerivationID() uint64 {
	return derivationIDCounter.Add(1)
}
