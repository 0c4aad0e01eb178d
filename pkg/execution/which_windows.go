//go:build windows

package execution

import (
	"path/filepath"
	"slices"
	"strings"
)

var systemPaths []string

// executableExtensions is ordered; a bare name is tried with each in turn.
var executableExtensions = []string{".bat", ".cmd", ".com", ".exe"}

func hasExecutableExtension(path string) bool {
	return slices.Contains(executableExtensions, strings.ToLower(filepath.Ext(path)))
}

// isExecutable reports whether path is a regular file with a known
// executable extension. Windows has no execute permission bit to check.
func isExecutable(path string) bool {
	return hasExecutableExtension(path) && isRegularFile(path)
}

// candidates returns path with each executable extension appended when it
// has none, followed by path itself.
func candidates(path string) []string {
	if filepath.Ext(path) != "" {
		return []string{path}
	}
	out := make([]string, 0, len(executableExtensions)+1)
	for _, ext := range executableExtensions {
		out = append(out, path+ext)
	}
	return append(out, path)
}
