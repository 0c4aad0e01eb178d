//go:build darwin || freebsd

package facts

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// TotalMemory returns physical memory in bytes.
func (r *RealResourceChecker) TotalMemory() (uint64, error) {
	name := "hw.physmem"
	if runtime.GOOS == "darwin" {
		name = "hw.memsize"
	}
	return unix.SysctlUint64(name)
}
