//go:build unix

package execution

import (
	"errors"
	"os"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const commandShell = "sh"

var commandArgs = []string{"-c"}

// posixProcess is a child started with fork/exec. The parent keeps only the
// read end of the child's stdout pipe.
type posixProcess struct {
	proc   *os.Process
	stdout *os.File
}

// spawn starts the child with its stdin on a pipe whose write end is closed
// (the child reads EOF), stdout on a pipe read by the parent, and stderr on
// stdout or the null device. The environment is passed explicitly; the
// runtime closes every other descriptor in the child.
func spawn(req spawnRequest) (childProcess, error) {
	stdinRead, stdinWrite, err := os.Pipe()
	if err != nil {
		log.Error().Err(err).Msg("pipe failed")
		return nil, newExecutionError(err, "failed to allocate pipe for input redirection")
	}
	defer closeFile(stdinRead)
	defer closeFile(stdinWrite)

	stdoutRead, stdoutWrite, err := os.Pipe()
	if err != nil {
		log.Error().Err(err).Msg("pipe failed")
		return nil, newExecutionError(err, "failed to allocate pipe for output redirection")
	}
	defer closeFile(stdoutWrite)

	stderr := stdoutWrite
	if !req.redirectStderr {
		devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
		if err != nil {
			closeFile(stdoutRead)
			return nil, newExecutionError(err, "failed to redirect child stderr to null")
		}
		defer closeFile(devNull)
		stderr = devNull
	}

	proc, err := os.StartProcess(req.path, req.argv, &os.ProcAttr{
		Env:   req.env,
		Files: []*os.File{stdinRead, stdoutWrite, stderr},
	})
	if err != nil {
		closeFile(stdoutRead)
		log.Error().Err(err).Msg("fork/exec failed")
		return nil, newExecutionError(err, "failed to start child process")
	}

	return &posixProcess{proc: proc, stdout: stdoutRead}, nil
}

func (p *posixProcess) read(buf []byte, wait time.Duration) (int, error) {
	if wait > 0 {
		if err := p.stdout.SetReadDeadline(time.Now().Add(wait)); err != nil {
			return 0, err
		}
	}
	n, err := p.stdout.Read(buf)
	if n > 0 {
		return n, nil
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return 0, errPollExpired
	}
	return 0, err
}

func (p *posixProcess) closeOutput() {
	closeFile(p.stdout)
}

func (p *posixProcess) kill() error {
	err := p.proc.Signal(syscall.SIGKILL)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

func (p *posixProcess) wait() (exitStatus, error) {
	state, err := p.proc.Wait()
	if err != nil {
		return exitStatus{}, err
	}

	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return exitStatus{exited: true, code: state.ExitCode() & 0xff}, nil
	}
	switch {
	case ws.Exited():
		return exitStatus{exited: true, code: ws.ExitStatus() & 0xff}, nil
	case ws.Signaled():
		return exitStatus{signaled: true, signal: int(ws.Signal())}, nil
	}
	return exitStatus{}, nil
}

func (p *posixProcess) release() {
	closeFile(p.stdout)
}

// closeFile closes f, ignoring an already-closed file.
func closeFile(f *os.File) {
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		log.Debug().Err(err).Str("file", f.Name()).Msg("failed to close descriptor")
	}
}
