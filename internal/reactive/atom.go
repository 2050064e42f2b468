package reactive

// Atom is the minimal observable node (system overview component #2):
// it holds no value of its own, only the observer set and the access
// bookkeeping that every observable needs. Containers that are out of
// scope for this engine (observable arrays, maps, plain-object
// wrappers) own their own storage and call ReportObserved/ReportChanged
// on an embedded or referenced Atom to participate in tracking.
type Atom struct {
	observableCore

	// Hook, if set, is invoked when this atom's last observer leaves
	// and a batch is closing (the onBecomeUnobserved hook). It has no
	// default behavior: a bare Atom has nothing of its own to tear
	// down.
	Hook func()
}

// NewAtom creates a named atom.
func NewAtom(name string) *Atom {
	return &Atom{observableCore: observableCore{name: name}}
}

func (a *Atom) Name() string { return a.name }

func (a *Atom) obsCore() *observableCore { return &a.observableCore }

// OnBecomeUnobserved implements the Observable hook.
func (a *Atom) OnBecomeUnobserved() {
	if a.Hook != nil {
		a.Hook()
	}
}

// ReportObserved records a read of this atom against the currently
// tracking derivation, if any.
func (a *Atom) ReportObserved() {
	reportObserved(a)
}

// ReportChanged propagates a change originating from this atom's
// external owner (a container that mutated its own storage outside the
// engine's knowledge).
func (a *Atom) ReportChanged() {
	reportChanged(a)
}
