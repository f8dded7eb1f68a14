// File: core/ring/spin_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build !linux

package ring

import "runtime"

// yieldCPU yields the current goroutine on non-Linux platforms, where
// there is no portable SchedYield wrapper in golang.org/x/sys.
func yieldCPU() {
	runtime.Gosched()
}
