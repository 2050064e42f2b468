package reactive

import "fmt"

// checkIfStateModificationsAreAllowed enforces the engine's reentrancy
// rule: state mutation is forbidden while a computed value is being
// evaluated, since a computed is a pure function of state. Reactions are
// the declared exception: they are eager, side-effecting derivations,
// and a reaction writing to an atom from within its own effect is the
// normal way a self-retriggering reaction arises. The distinguishing
// trait is exactly ComputedValue's dual identity: it is the only
// Derivation that is also an Observable.
//
// In strict mode, mutation is further forbidden everywhere outside an
// explicit Action, even when nothing is tracking.
func checkIfStateModificationsAreAllowed() error {
	if d := global.trackingDerivation; d != nil {
		if _, isComputed := d.(Observable); isComputed {
			return &InvariantViolation{
				Message: fmt.Sprintf("cannot change state while %q is being derived", d.Name()),
			}
		}
	}
	if global.strictMode && global.actionDepth == 0 {
		return &InvariantViolation{
			Message: "state changes are only allowed inside an action in strict mode",
		}
	}
	return nil
}
