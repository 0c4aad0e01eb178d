//go:build linux

package facts

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// TotalMemory returns usable memory in bytes.
// First checks cgroup limits (for containers), then falls back to system memory.
func (r *RealResourceChecker) TotalMemory() (uint64, error) {
	// Try cgroup v2 first
	if mem, err := readCgroupMemoryLimit("/sys/fs/cgroup/memory.max"); err == nil && mem > 0 {
		return mem, nil
	}

	// Try cgroup v1
	if mem, err := readCgroupMemoryLimit("/sys/fs/cgroup/memory/memory.limit_in_bytes"); err == nil && mem > 0 {
		return mem, nil
	}

	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return uint64(info.Totalram) * uint64(info.Unit), nil
}

// readCgroupMemoryLimit reads memory limit from a cgroup file.
func readCgroupMemoryLimit(path string) (uint64, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading cgroup files
	if err != nil {
		return 0, err
	}

	content := strings.TrimSpace(string(data))

	// "max" means unlimited in cgroup v2
	if content == "max" {
		return 0, nil
	}

	return strconv.ParseUint(content, 10, 64)
}
