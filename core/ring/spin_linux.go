// File: core/ring/spin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

//go:build linux

package ring

import "golang.org/x/sys/unix"

// yieldCPU yields the current goroutine's underlying OS thread on the
// contention back-off path. Mirrors the Linux/Windows split the
// teacher uses for CPU/NUMA affinity (internal/concurrency/affinity_linux.go
// vs affinity_windows.go): Linux gets the real syscall, other platforms
// fall back to runtime.Gosched in spin_other.go.
func yieldCPU() {
	_, _, _ = unix.Syscall(unix.SYS_SCHED_YIELD, 0, 0, 0)
}
