package execution

import (
	"os"
	"path/filepath"
	"slices"
)

// Which returns the first executable match for file, or "" if there is none.
//
// An absolute file is returned only if it is itself executable; dirs are not
// consulted. Otherwise each directory in dirs is tried in order and the first
// executable candidate wins.
func Which(file string, dirs []string) string {
	if file == "" {
		return ""
	}
	if filepath.IsAbs(file) {
		if isExecutable(file) {
			return file
		}
		return ""
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, candidate := range candidates(filepath.Join(dir, file)) {
			if isExecutable(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// LookPath resolves file against SearchPaths.
func LookPath(file string) string {
	return Which(file, SearchPaths())
}

// SearchPaths returns the directories searched for executables: the entries
// of PATH followed by any platform system directories missing from it.
func SearchPaths() []string {
	var dirs []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range systemPaths {
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// isRegularFile reports whether path names a regular file. Stat errors mean
// "no" and are only traced.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		traceStat(path, err)
		return false
	}
	return info.Mode().IsRegular()
}
