package facts

import "runtime"

// SysInfo abstracts platform identification for testability.
type SysInfo interface {
	OS() string
	Arch() string
}

// RealSysInfo returns actual system information.
type RealSysInfo struct{}

func (r *RealSysInfo) OS() string   { return runtime.GOOS }
func (r *RealSysInfo) Arch() string { return runtime.GOARCH }

func sysInfo(info SysInfo) SysInfo {
	if info == nil {
		return &RealSysInfo{}
	}
	return info
}

// isSolaris reports whether goos is a SunOS derivative.
func isSolaris(goos string) bool {
	return goos == "solaris" || goos == "illumos"
}
