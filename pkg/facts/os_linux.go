//go:build linux

package facts

import (
	"sync"

	"github.com/zcalusic/sysinfo"
)

var (
	si     sysinfo.SysInfo
	siOnce sync.Once
)

// readLinuxRelease reads os-release and the distribution release files.
// The result is cached for the life of the process.
func readLinuxRelease() distroRelease {
	siOnce.Do(si.GetSysInfo)

	release := si.OS.Release
	if release == "" {
		release = si.OS.Version
	}
	return distroRelease{ID: si.OS.Vendor, Release: release}
}
