//go:build !linux && !darwin && !freebsd

package facts

// FreeDiskSpace is not supported on this platform.
func (r *RealResourceChecker) FreeDiskSpace(string) (uint64, error) {
	return 0, errUnsupported
}

// TotalMemory is not supported on this platform.
func (r *RealResourceChecker) TotalMemory() (uint64, error) {
	return 0, errUnsupported
}
