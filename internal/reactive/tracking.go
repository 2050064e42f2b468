package reactive

import "github.com/latticewire/reactor/internal/logger"

// reportObserved is the only place a dependency edge is proposed. If a
// derivation is currently tracking, it records o as one of
// its newObserving entries (deduped by lastAccessedBy within the run).
// Otherwise, if nothing is tracking and o currently has no observers, o
// is queued for unobservation.
func reportObserved(o Observable) {
	d := global.trackingDerivation
	if d != nil {
		oc := o.obsCore()
		dc := d.derivCore()
		if oc.lastAccessedBy != dc.runID {
			oc.lastAccessedBy = dc.runID
			if dc.unboundDepsCount < len(dc.newObserving) {
				dc.newObserving[dc.unboundDepsCount] = o
			} else {
				dc.newObserving = append(dc.newObserving, o)
			}
			dc.unboundDepsCount++
		}
		return
	}

	oc := o.obsCore()
	if len(oc.observers) == 0 {
		queueForUnobservation(o)
	}
}

// reportChanged must be called inside a batch; it opens one if none is
// active, then invokes propagateChanged.
func reportChanged(o Observable) {
	if global.inBatch == 0 {
		StartBatch()
		defer EndBatch()
		propagateChanged(o)
		return
	}
	propagateChanged(o)
}

func queueForUnobservation(o Observable) {
	oc := o.obsCore()
	if oc.isPendingUnobservation {
		return
	}
	oc.isPendingUnobservation = true
	global.pendingUnobs = append(global.pendingUnobs, o)
}

// untrackedStart/untrackedEnd save-and-null the tracking slot; used
// anywhere a side effect must not create dependencies: listener and
// interceptor callbacks, and a computed's POSSIBLY_STALE confirmation.
func untrackedStart() Derivation {
	prev := global.trackingDerivation
	global.trackingDerivation = nil
	return prev
}

func untrackedEnd(prev Derivation) {
	global.trackingDerivation = prev
}

// Untracked runs fn without dependency tracking and returns its result.
func Untracked[T any](fn func() T) T {
	prev := untrackedStart()
	defer untrackedEnd(prev)
	return fn()
}

// UntrackedVoid is Untracked for side-effecting functions with no
// return value.
func UntrackedVoid(fn func()) {
	prev := untrackedStart()
	defer untrackedEnd(prev)
	fn()
}

// addObserver appends d to o's observer list and lowers o's
// lowestObserverState to d's dependenciesState if d is fresher. Per I4,
// the entry landing in slot 0 is never recorded in observersIndex: that
// slot is found by falling back to index 0 on a failed map lookup in
// removeObserver.
func addObserver(o Observable, d Derivation) {
	oc := o.obsCore()
	oc.observers = append(oc.observers, d)
	idx := len(oc.observers) - 1
	if idx > 0 {
		if oc.observersIndex == nil {
			oc.observersIndex = make(map[uint64]int)
		}
		oc.observersIndex[d.derivCore().id] = idx
	}
	if ds := d.derivCore().dependenciesState; oc.lowestObserverState > ds {
		oc.lowestObserverState = ds
	}
}

// removeObserver removes d from o's observer list using swap-with-last,
// keeping observers gap-free in O(1). When observers becomes empty, o is
// queued for unobservation.
func removeObserver(o Observable, d Derivation) {
	oc := o.obsCore()
	if len(oc.observers) == 0 {
		return
	}

	did := d.derivCore().id
	last := len(oc.observers) - 1

	idx, ok := oc.observersIndex[did]
	if !ok {
		// Not in the index: it must be the implicit slot-0 entry.
		idx = 0
	}

	if idx != last {
		moved := oc.observers[last]
		oc.observers[idx] = moved
		if idx > 0 {
			oc.observersIndex[moved.derivCore().id] = idx
		} else {
			delete(oc.observersIndex, moved.derivCore().id)
		}
	}
	oc.observers = oc.observers[:last]
	delete(oc.observersIndex, did)

	if len(oc.observers) == 0 {
		queueForUnobservation(o)
	}

	logger.Trace(logger.TagObservable, "%s: removed observer %s, %d remain", o.Name(), d.Name(), len(oc.observers))
}

// prepareTracking is the setup half of a tracked run: it forces
// dependenciesState and every currently-observed atom's
// lowestObserverState to UpToDate, allocates newObserving, assigns a
// fresh run-id, and pushes d onto the tracking slot. It returns the
// previously-tracking derivation so the caller can restore it.
func prepareTracking(d Derivation) Derivation {
	dc := d.derivCore()
	dc.dependenciesState = UpToDate
	for _, o := range dc.observing {
		o.obsCore().lowestObserverState = UpToDate
	}

	dc.newObserving = make([]Observable, 0, len(dc.observing)+global.newObservingSlack)
	dc.unboundDepsCount = 0
	global.runID++
	dc.runID = global.runID

	prev := global.trackingDerivation
	global.trackingDerivation = d
	return prev
}

// finishTracking is steps 5-6: restore the previous tracking slot and
// diff newObserving against observing.
func finishTracking(d Derivation, prev Derivation) {
	global.trackingDerivation = prev
	bindDependencies(d)
}

// bindDependencies implements the three-pass dependency diff: dedup the
// freshly observed set, drop edges that weren't re-observed this run,
// then add the ones that are genuinely new.
func bindDependencies(d Derivation) {
	dc := d.derivCore()

	// Pass A: dedup newObserving in first-occurrence order.
	newObs := dc.newObserving[:dc.unboundDepsCount]
	i0 := 0
	for i := 0; i < len(newObs); i++ {
		o := newObs[i]
		oc := o.obsCore()
		if oc.diffValue == 0 {
			oc.diffValue = 1
			newObs[i0] = o
			i0++
		}
	}
	newObs = newObs[:i0]

	// Pass B: drop dead edges, iterating the previous observing set
	// back-to-front.
	oldObs := dc.observing
	for i := len(oldObs) - 1; i >= 0; i-- {
		o := oldObs[i]
		oc := o.obsCore()
		if oc.diffValue == 0 {
			removeObserver(o, d)
		}
		oc.diffValue = 0
	}

	// Pass C: add new edges, iterating the compacted new set
	// back-to-front.
	for i := len(newObs) - 1; i >= 0; i-- {
		o := newObs[i]
		oc := o.obsCore()
		if oc.diffValue == 1 {
			oc.diffValue = 0
			addObserver(o, d)
		}
	}

	dc.observing = newObs
	dc.newObserving = nil
	dc.unboundDepsCount = 0
}

// clearObserving removes d as an observer from everything it currently
// observes, then empties its observing set. Used when a computed
// becomes unobserved, and on reaction disposal.
func clearObserving(d Derivation) {
	dc := d.derivCore()
	for _, o := range dc.observing {
		removeObserver(o, d)
	}
	dc.observing = nil
}

// changeDependenciesStateTo0 resolves a derivation's own
// PossiblyStale/Stale belief to UpToDate once its dependencies have
// been confirmed unchanged, and resets the lowestObserverState of every
// observable it observes to UpToDate.
func changeDependenciesStateTo0(dc *derivationCore) {
	if dc.dependenciesState == UpToDate {
		return
	}
	dc.dependenciesState = UpToDate
	for _, o := range dc.observing {
		o.obsCore().lowestObserverState = UpToDate
	}
}

// shouldCompute decides whether a derivation must recompute before its
// cached output can be trusted.
func shouldCompute(d Derivation) bool {
	dc := d.derivCore()
	switch dc.dependenciesState {
	case UpToDate:
		return false
	case NotTracking, Stale:
		return true
	case PossiblyStale:
		prev := untrackedStart()
		stale := false
		for _, o := range dc.observing {
			if co, ok := o.(confirmingObservable); ok {
				co.confirmUpToDate()
				if dc.dependenciesState == Stale {
					stale = true
					break
				}
			}
		}
		if !stale {
			changeDependenciesStateTo0(dc)
		}
		untrackedEnd(prev)
		return stale
	default:
		return true
	}
}
