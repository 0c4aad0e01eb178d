//go:build !linux

package facts

func readLinuxRelease() distroRelease {
	return distroRelease{}
}
