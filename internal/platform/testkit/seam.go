package testkit

import (
	"sync"
	"testing"
)

// seams are package level vars, tests that replace them share this lock
var seamMu sync.Mutex

// Swap points *target at replacement until the test ends and returns the value it replaced
// so a fake can delegate to the real implementation
func Swap[T any](t *testing.T, target *T, replacement T) (orig T) {
	t.Helper()
	orig = *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
	return orig
}

// Serial holds the seam lock for the rest of the test
// call it before Swap in tests that may run in parallel with other seam users
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
