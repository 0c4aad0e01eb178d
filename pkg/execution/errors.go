package execution

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ExecutionError reports a failure to set up, start, or talk to a child
// process. These failures are never retried.
type ExecutionError struct {
	Msg string
	Err error
}

func (e *ExecutionError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// newExecutionError wraps cause, keeping the call stack for %+v formatting.
func newExecutionError(cause error, format string, args ...interface{}) error {
	return &ExecutionError{
		Msg: fmt.Sprintf(format, args...),
		Err: errors.WithStack(cause),
	}
}

// TimeoutError is returned when a command does not finish within its timeout.
// Output read before the timeout is discarded.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %s seconds", strconv.FormatFloat(e.Timeout.Seconds(), 'f', -1, 64))
}

// ChildExitError is returned for a nonzero exit status when ErrorOnNonzeroExit
// is set. Status is 127 when the command was not found.
type ChildExitError struct {
	Status int
	Output string
}

func (e *ChildExitError) Error() string {
	return fmt.Sprintf("child process returned non-zero exit status %d", e.Status)
}

// ChildSignalError is returned when the child was terminated by a signal and
// ErrorOnSignal is set.
type ChildSignalError struct {
	Signal int
	Output string
}

func (e *ChildSignalError) Error() string {
	return fmt.Sprintf("child process was terminated by signal %d", e.Signal)
}
