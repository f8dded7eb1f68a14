// File: core/ring/spin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded CPU-yield back-off used by ConcurrentRingBuffer on contention.
// This is a liveness helper, not a fairness guarantee: a caller is
// never suspended by the queue itself, only made to yield its thread.

package ring

// maxSpinYields bounds how many consecutive yields one spinOnce call
// issues, per spec.md's "yields the CPU up to 32 times" spin policy.
const maxSpinYields = 32

// spinOnce yields the CPU a number of times scaled by the caller's
// running contention streak (attempt), capped at maxSpinYields, and
// returns the streak incremented by one for the next call.
func spinOnce(attempt int) int {
	n := attempt + 1
	if n > maxSpinYields {
		n = maxSpinYields
	}
	for i := 0; i < n; i++ {
		yieldCPU()
	}
	return attempt + 1
}
