package execution

import (
	"os"
	"runtime"
	"slices"
	"strings"
)

// localeDefault pins LC_ALL and LANG so utilities print parseable output.
const localeDefault = "C"

// buildEnv materializes the child's environment as an explicit block.
//
// With merge the block starts from the current process environment;
// otherwise it holds only vars. LC_ALL and LANG are set to "C" unless vars
// sets them, then vars overlay everything. The process environment itself
// is never modified.
func buildEnv(vars map[string]string, merge bool) []string {
	entries := make(map[string][2]string)
	set := func(name, value string) {
		entries[envKey(name)] = [2]string{name, value}
	}

	if merge {
		for _, kv := range os.Environ() {
			name, value, ok := strings.Cut(kv, "=")
			// Windows keeps per-drive entries like "=C:=C:\dir"; they have no name.
			if !ok || name == "" {
				continue
			}
			set(name, value)
		}
	}

	for _, name := range []string{"LC_ALL", "LANG"} {
		if !hasEnv(vars, name) {
			set(name, localeDefault)
		}
	}
	for name, value := range vars {
		set(name, value)
	}

	env := make([]string, 0, len(entries))
	for _, kv := range entries {
		env = append(env, kv[0]+"="+kv[1])
	}
	// Windows requires the block sorted by name, ignoring case.
	slices.SortFunc(env, func(a, b string) int {
		return strings.Compare(envKey(envName(a)), envKey(envName(b)))
	})
	return env
}

// envKey normalizes a variable name for comparison. Windows names are
// case-insensitive.
func envKey(name string) string {
	if runtime.GOOS == "windows" {
		return strings.ToUpper(name)
	}
	return name
}

func envName(kv string) string {
	name, _, _ := strings.Cut(kv, "=")
	return name
}

func hasEnv(vars map[string]string, name string) bool {
	key := envKey(name)
	for k := range vars {
		if envKey(k) == key {
			return true
		}
	}
	return false
}
