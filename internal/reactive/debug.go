package reactive

import "github.com/latticewire/reactor/internal/depgraph"

// BuildDebugGraph walks the live dependency graph reachable from roots
// and returns an immutable depgraph.Graph snapshot. The engine never
// consults this itself; it exists for tests and external tooling that
// want to assert on graph shape (a diamond dependency, a computed
// dropping its edges on unobservation) without reaching into
// observableCore/derivationCore directly.
//
// Traversal follows both directions from whatever roots are given and
// from everything reachable from them: an observable's observers (what
// depends on it) and a derivation's observing set (what it depends on).
// A ComputedValue has both faces, so visiting one walks through it to
// its own observers in turn. Nodes are named by their Name(), so two
// distinct live objects sharing a name collide in the snapshot; callers
// that care should give every root a unique name.
func BuildDebugGraph(roots ...Observable) *depgraph.Graph {
	g := depgraph.NewGraph()
	seen := make(map[depgraph.NodeID]bool)
	type edgeKey struct{ from, to depgraph.NodeID }
	seenEdges := make(map[edgeKey]bool)

	kindOf := func(asObservable Observable, asDerivation Derivation) depgraph.NodeKind {
		switch {
		case asObservable != nil && asDerivation != nil:
			return depgraph.KindComputed
		case asDerivation != nil:
			return depgraph.KindReaction
		case asObservable != nil:
			if _, ok := asObservable.(*Atom); ok {
				return depgraph.KindAtom
			}
			return depgraph.KindObservableValue
		default:
			return depgraph.KindObservableValue
		}
	}

	ensureNode := func(id depgraph.NodeID, kind depgraph.NodeKind) {
		if !seen[id] {
			seen[id] = true
			_ = g.AddNode(id, kind)
		}
	}
	addEdge := func(from, to depgraph.NodeID) {
		key := edgeKey{from, to}
		if !seenEdges[key] {
			seenEdges[key] = true
			_ = g.AddEdge(from, to)
		}
	}

	visited := make(map[string]bool)
	var visitAny func(name string, asObservable Observable, asDerivation Derivation)

	visitAny = func(name string, asObservable Observable, asDerivation Derivation) {
		if visited[name] {
			return
		}
		visited[name] = true
		ensureNode(depgraph.NodeID(name), kindOf(asObservable, asDerivation))

		if asObservable != nil {
			for _, d := range asObservable.obsCore().observers {
				dName := d.Name()
				dObs, _ := d.(Observable)
				ensureNode(depgraph.NodeID(dName), kindOf(dObs, d))
				addEdge(depgraph.NodeID(name), depgraph.NodeID(dName))
				visitAny(dName, dObs, d)
			}
		}
		if asDerivation != nil {
			for _, o := range asDerivation.derivCore().observing {
				oName := o.Name()
				oDeriv, _ := o.(Derivation)
				ensureNode(depgraph.NodeID(oName), kindOf(o, oDeriv))
				addEdge(depgraph.NodeID(oName), depgraph.NodeID(name))
				visitAny(oName, o, oDeriv)
			}
		}
	}

	for _, r := range roots {
		d, _ := r.(Derivation)
		visitAny(r.Name(), r, d)
	}
	return g
}
