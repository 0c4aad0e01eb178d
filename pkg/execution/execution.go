// Package execution runs external programs for fact resolution. It locates
// the executable, starts it with a controlled environment, streams its output
// to the caller, enforces a timeout and always reaps the child.
package execution

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// notFoundStatus is the shell convention for "command not found".
const notFoundStatus = 127

// ChunkFunc receives output chunks in the order the child wrote them.
// Returning false stops reading.
type ChunkFunc func(chunk string) bool

// LineFunc receives complete lines of output. Returning false stops reading.
type LineFunc func(line string) bool

// Command describes one program invocation.
type Command struct {
	File    string            // executable name or path
	Args    []string          // arguments, not including the program name
	Env     map[string]string // variables to set in the child
	Options Options
	Timeout time.Duration // bounds the whole run; zero means no limit
}

// Result is the outcome of a command that did not fail with an error.
type Result struct {
	// Success is true only when the child exited with status 0.
	Success bool
	// Output is everything read from the child before the stream ended or
	// the consumer stopped reading.
	Output string
}

// spawnRequest is the fully resolved input to a platform spawn.
type spawnRequest struct {
	path           string
	argv           []string
	env            []string
	redirectStderr bool
}

// Execute runs cmd, feeding output chunks to consume (which may be nil).
//
// A command that cannot be found yields an empty, unsuccessful Result, or a
// *ChildExitError with status 127 when ErrorOnNonzeroExit is set. Setup and
// I/O failures return *ExecutionError, an expired timeout *TimeoutError. The
// child is always reaped before Execute returns, and is killed first on any
// error path.
func Execute(ctx context.Context, cmd Command, consume ChunkFunc) (Result, error) {
	executable := LookPath(cmd.File)
	if executable == "" {
		logExecution(cmd.File, cmd.Args)
		log.Debug().Msgf("%s was not found on the PATH", cmd.File)
		if cmd.Options.Has(ErrorOnNonzeroExit) {
			return Result{}, &ChildExitError{Status: notFoundStatus}
		}
		return Result{}, nil
	}
	logExecution(executable, cmd.Args)

	argv := make([]string, 0, len(cmd.Args)+1)
	argv = append(argv, executable)
	argv = append(argv, cmd.Args...)

	child, err := spawn(spawnRequest{
		path:           executable,
		argv:           argv,
		env:            buildEnv(cmd.Env, cmd.Options.Has(MergeEnvironment)),
		redirectStderr: cmd.Options.Has(RedirectStderr),
	})
	if err != nil {
		return Result{}, err
	}
	defer child.release()

	r := newReaper(child)
	defer r.reap(true)

	w := newWatchdog(ctx, cmd.Timeout)
	defer w.stop()

	output, err := pump(child, w, cmd.Options.Has(TrimOutput), consume)
	if err != nil {
		return Result{}, err
	}
	child.closeOutput()

	status, err := r.waitExit(w)
	if err != nil {
		return Result{}, err
	}

	if status.signaled {
		log.Debug().Msgf("process was signaled with signal %d", status.signal)
		if cmd.Options.Has(ErrorOnSignal) {
			return Result{}, &ChildSignalError{Signal: status.signal, Output: output}
		}
	} else if status.exited {
		log.Debug().Msgf("process exited with status code %d", status.code)
		if status.code != 0 && cmd.Options.Has(ErrorOnNonzeroExit) {
			return Result{}, &ChildExitError{Status: status.code, Output: output}
		}
	}
	return Result{Success: status.success(), Output: output}, nil
}
