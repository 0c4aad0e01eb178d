//go:build linux || darwin || freebsd

package facts

import "golang.org/x/sys/unix"

// FreeDiskSpace returns free disk space in bytes.
func (r *RealResourceChecker) FreeDiskSpace(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	// Available blocks * block size
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil // #nosec G115 -- block size is always positive
}
