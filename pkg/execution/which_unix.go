//go:build unix

package execution

import "golang.org/x/sys/unix"

// systemPaths hold utilities such as prtdiag and lsattr that are often not
// on a user's PATH.
var systemPaths = []string{"/sbin", "/usr/sbin"}

// isExecutable reports whether path is a regular file the invoking user may
// execute.
func isExecutable(path string) bool {
	return isRegularFile(path) && unix.Access(path, unix.X_OK) == nil
}

// candidates returns the paths to try for a joined directory entry.
func candidates(path string) []string {
	return []string{path}
}
