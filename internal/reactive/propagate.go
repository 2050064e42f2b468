package reactive

import "github.com/latticewire/reactor/internal/logger"

// propagateChanged handles an atom/observable-value change: every
// observer's belief is downgraded unconditionally to Stale.
func propagateChanged(o Observable) {
	oc := o.obsCore()
	if oc.lowestObserverState == Stale {
		return
	}
	oc.lowestObserverState = Stale

	logger.Trace(logger.TagPropagate, "propagateChanged(%s): %d observers", o.Name(), len(oc.observers))
	for _, d := range oc.observers {
		dc := d.derivCore()
		if dc.dependenciesState == UpToDate {
			d.OnBecomeStale()
		}
		dc.dependenciesState = Stale
	}
}

// propagateChangeConfirmed handles a computed value resolving to a
// genuinely new value: PossiblyStale observers are promoted to Stale;
// an UpToDate observer (one that is tracking right now and is reading
// this value during its own run) instead resets the floor to UpToDate.
func propagateChangeConfirmed(o Observable) {
	oc := o.obsCore()
	if oc.lowestObserverState == Stale {
		return
	}
	oc.lowestObserverState = Stale

	logger.Trace(logger.TagPropagate, "propagateChangeConfirmed(%s): %d observers", o.Name(), len(oc.observers))
	for _, d := range oc.observers {
		dc := d.derivCore()
		if dc.dependenciesState == PossiblyStale {
			dc.dependenciesState = Stale
		} else if dc.dependenciesState == UpToDate {
			oc.lowestObserverState = UpToDate
		}
	}
}

// propagateMaybeChanged handles a computed value that may have changed:
// UpToDate observers are downgraded to PossiblyStale and notified, so
// the uncertainty rides downstream in O(depth) without recomputation.
func propagateMaybeChanged(o Observable) {
	oc := o.obsCore()
	if oc.lowestObserverState != UpToDate {
		return
	}
	oc.lowestObserverState = PossiblyStale

	logger.Trace(logger.TagPropagate, "propagateMaybeChanged(%s): %d observers", o.Name(), len(oc.observers))
	for _, d := range oc.observers {
		dc := d.derivCore()
		if dc.dependenciesState == UpToDate {
			dc.dependenciesState = PossiblyStale
			d.OnBecomeStale()
		}
	}
}
