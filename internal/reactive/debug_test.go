package reactive

import "testing"

func TestBuildDebugGraphDiamond(t *testing.T) {
	resetGlobalForTest(t)

	a := NewComparableObservableValue("a", 1)
	b := NewComputedValue("b", func() int { return a.Get() + 1 })
	c := NewComputedValue("c", func() int { return a.Get() + 2 })
	d := NewComputedValue("d", func() int {
		bv, _ := b.Get()
		cv, _ := c.Get()
		return bv + cv
	})
	r := NewReaction("r", func() error {
		_, err := d.Get()
		return err
	})
	defer r.Dispose()

	g := BuildDebugGraph(a)

	if g.NodeCount() != 5 {
		t.Fatalf("expected 5 nodes (a, b, c, d, and r reached as d's observer), got %d", g.NodeCount())
	}
	if !g.IsDAG() {
		t.Error("expected the snapshot to be acyclic")
	}

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort: %v", err)
	}
	pos := make(map[string]int)
	for i, id := range order {
		pos[string(id)] = i
	}
	if pos["a"] > pos["b"] || pos["a"] > pos["c"] || pos["b"] > pos["d"] || pos["c"] > pos["d"] {
		t.Error("expected topological order to respect the diamond's dependency direction")
	}
}
