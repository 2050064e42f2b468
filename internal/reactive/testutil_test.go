package reactive

import "testing"

// resetGlobalForTest restores the package-level singleton to a fresh
// state before a test or benchmark runs. The engine is intentionally a
// single process-wide singleton, which makes tests order-dependent
// unless each one starts from a clean slate; this is the test-only
// escape hatch, never something production code calls.
func resetGlobalForTest(t testing.TB) {
	t.Helper()
	*global = globalState{
		reentrancyBudget:  100,
		newObservingSlack: 100,
	}
}
