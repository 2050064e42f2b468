package reactive

import "testing"

// BenchmarkPropagateChangedWideDiamond measures propagateChanged's cost
// on a wide diamond: one atom observed directly by many computed
// values, all of which converge on a single sink computed watched by a
// reaction. Every write to the root walks the atom's full observer list
// in propagateChanged, then (through the reaction's recompute) confirms
// each middle node via confirmUpToDate.
func BenchmarkPropagateChangedWideDiamond(b *testing.B) {
	resetGlobalForTest(b)

	root := NewComparableObservableValue("root", 0)

	const width = 50
	middles := make([]*ComputedValue[int], width)
	for i := range middles {
		middles[i] = NewComputedValue("middle", func() int {
			return root.Get() + 1
		})
	}

	sink := NewComputedValue("sink", func() int {
		sum := 0
		for _, m := range middles {
			v, _ := m.Get()
			sum += v
		}
		return sum
	})

	r := NewReaction("sink-watcher", func() error {
		_, err := sink.Get()
		return err
	})
	defer r.Dispose()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Batch(func() { _ = root.Set(i) })
	}
}

// BenchmarkBindDependenciesWideDiamond measures bindDependencies' three-
// pass diff cost when a computed's dependency set changes shape on every
// run: it alternates between observing the first half and the second
// half of a wide pool of atoms, forcing Pass B (drop) and Pass C (add)
// to do real work on every recompute instead of confirming an unchanged
// set.
func BenchmarkBindDependenciesWideDiamond(b *testing.B) {
	resetGlobalForTest(b)

	const width = 50
	atoms := make([]*ObservableValue[int], width)
	for i := range atoms {
		atoms[i] = NewComparableObservableValue("atom", i)
	}

	toggle := NewComparableObservableValue("toggle", false)
	c := NewComputedValue("alternating", func() int {
		sum := 0
		half := width / 2
		start, end := 0, half
		if toggle.Get() {
			start, end = half, width
		}
		for _, a := range atoms[start:end] {
			sum += a.Get()
		}
		return sum
	})

	r := NewReaction("alternating-watcher", func() error {
		_, err := c.Get()
		return err
	})
	defer r.Dispose()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Batch(func() { _ = toggle.Set(i%2 == 0) })
	}
}
