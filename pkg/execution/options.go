package execution

import "strings"

// Options is a set of flags controlling how a command is executed.
type Options uint8

const (
	// MergeEnvironment starts the child environment from the current process
	// environment instead of an empty one.
	MergeEnvironment Options = 1 << iota
	// RedirectStderr sends the child's stderr to its stdout. Without it,
	// stderr goes to the null device.
	RedirectStderr
	// TrimOutput trims trailing whitespace from the captured output and from
	// each line delivered by EachLine.
	TrimOutput
	// ErrorOnNonzeroExit returns a *ChildExitError when the child exits with a
	// nonzero status or cannot be found.
	ErrorOnNonzeroExit
	// ErrorOnSignal returns a *ChildSignalError when the child is terminated
	// by a signal.
	ErrorOnSignal
)

// DefaultOptions are the options used by Run.
const DefaultOptions = MergeEnvironment | TrimOutput

var optionNames = []struct {
	flag Options
	name string
}{
	{MergeEnvironment, "merge_environment"},
	{RedirectStderr, "redirect_stderr"},
	{TrimOutput, "trim_output"},
	{ErrorOnNonzeroExit, "error_on_nonzero_exit"},
	{ErrorOnSignal, "error_on_signal"},
}

// Has reports whether every flag in flag is set.
func (o Options) Has(flag Options) bool {
	return o&flag == flag
}

// With returns o with flag set.
func (o Options) With(flag Options) Options {
	return o | flag
}

// Without returns o with flag cleared.
func (o Options) Without(flag Options) Options {
	return o &^ flag
}

func (o Options) String() string {
	var names []string
	for _, n := range optionNames {
		if o.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
