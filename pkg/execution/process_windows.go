//go:build windows

package execution

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"
)

const commandShell = "cmd.exe"

var commandArgs = []string{"/c"}

const (
	pipeAccessInbound = 0x1
	pipeTypeByte      = 0x0
	pipeWait          = 0x0
	waitTimeout       = 258
	terminateExitCode = 1
)

var pipeSerial atomic.Uint64

// windowsProcess is a child started with CreateProcess. Output is read from
// an overlapped named pipe so every read can be bounded.
type windowsProcess struct {
	process windows.Handle
	stdout  windows.Handle
	event   windows.Handle

	buf        []byte
	overlapped windows.Overlapped
	pending    bool
	closed     bool
}

// spawn starts the child with stdin and, unless redirected, stderr on NUL.
// Only the child's ends of the handles are inheritable, and ForkLock keeps
// them from leaking into children started concurrently.
func spawn(req spawnRequest) (childProcess, error) {
	syscall.ForkLock.Lock()
	defer syscall.ForkLock.Unlock()

	inherit := &windows.SecurityAttributes{InheritHandle: 1}
	inherit.Length = uint32(unsafe.Sizeof(*inherit))

	stdoutRead, stdoutWrite, err := createPipe(inherit)
	if err != nil {
		log.Error().Err(err).Msg("CreateNamedPipe failed")
		return nil, newExecutionError(err, "failed to allocate pipe for output redirection")
	}
	defer closeHandle(stdoutWrite)

	devNull, err := openNull(inherit)
	if err != nil {
		closeHandle(stdoutRead)
		return nil, newExecutionError(err, "failed to open null device for child input")
	}
	defer closeHandle(devNull)

	stderr := devNull
	if req.redirectStderr {
		stderr = stdoutWrite
	}

	event, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		closeHandle(stdoutRead)
		return nil, newExecutionError(err, "failed to create event for output redirection")
	}

	si := &windows.StartupInfo{
		Flags:     windows.STARTF_USESTDHANDLES,
		StdInput:  devNull,
		StdOutput: stdoutWrite,
		StdErr:    stderr,
	}
	si.Cb = uint32(unsafe.Sizeof(*si))

	proc, err := createProcess(req, si)
	if err != nil {
		closeHandle(event)
		closeHandle(stdoutRead)
		log.Error().Err(err).Msg("CreateProcess failed")
		return nil, newExecutionError(err, "failed to create child process")
	}
	closeHandle(proc.Thread)

	return &windowsProcess{
		process: proc.Process,
		stdout:  stdoutRead,
		event:   event,
		buf:     make([]byte, readChunkSize),
	}, nil
}

// createPipe creates a uniquely named inbound pipe. The read end is
// overlapped and private to the parent; the write end is inheritable.
func createPipe(inherit *windows.SecurityAttributes) (windows.Handle, windows.Handle, error) {
	name, err := windows.UTF16PtrFromString(fmt.Sprintf(`\\.\pipe\hostfacts.%d.%d`, windows.GetCurrentProcessId(), pipeSerial.Add(1)))
	if err != nil {
		return 0, 0, err
	}

	read, err := windows.CreateNamedPipe(name,
		pipeAccessInbound|windows.FILE_FLAG_OVERLAPPED,
		pipeTypeByte|pipeWait,
		1, readChunkSize, readChunkSize, 0, nil)
	if err != nil {
		return 0, 0, err
	}

	write, err := windows.CreateFile(name,
		windows.GENERIC_WRITE, 0, inherit,
		windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		closeHandle(read)
		return 0, 0, err
	}
	return read, write, nil
}

func openNull(inherit *windows.SecurityAttributes) (windows.Handle, error) {
	name, err := windows.UTF16PtrFromString("NUL")
	if err != nil {
		return 0, err
	}
	return windows.CreateFile(name,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE, inherit,
		windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL, 0)
}

func createProcess(req spawnRequest, si *windows.StartupInfo) (*windows.ProcessInformation, error) {
	path, err := windows.UTF16PtrFromString(req.path)
	if err != nil {
		return nil, err
	}
	cmdline, err := windows.UTF16PtrFromString(windows.ComposeCommandLine(req.argv))
	if err != nil {
		return nil, err
	}
	env, err := environmentBlock(req.env)
	if err != nil {
		return nil, err
	}

	var pi windows.ProcessInformation
	err = windows.CreateProcess(path, cmdline, nil, nil, true,
		windows.CREATE_UNICODE_ENVIRONMENT|windows.CREATE_NO_WINDOW,
		&env[0], nil, si, &pi)
	if err != nil {
		return nil, err
	}
	return &pi, nil
}

// environmentBlock encodes env as NUL-separated UTF-16 strings ending in an
// extra NUL. env is expected to be sorted already.
func environmentBlock(env []string) ([]uint16, error) {
	var block []uint16
	for _, kv := range env {
		s, err := windows.UTF16FromString(kv)
		if err != nil {
			return nil, err
		}
		block = append(block, s...)
	}
	if len(block) == 0 {
		block = append(block, 0)
	}
	return append(block, 0), nil
}

func (p *windowsProcess) read(buf []byte, wait time.Duration) (int, error) {
	if p.closed {
		return 0, io.EOF
	}
	if !p.pending {
		p.overlapped = windows.Overlapped{HEvent: p.event}
		err := windows.ReadFile(p.stdout, p.buf, nil, &p.overlapped)
		if err != nil && !errors.Is(err, windows.ERROR_IO_PENDING) {
			return 0, readError(err)
		}
		p.pending = true
	}

	ms := uint32(windows.INFINITE)
	if wait > 0 {
		ms = uint32(wait.Milliseconds())
	}
	event, err := windows.WaitForSingleObject(p.event, ms)
	if err != nil {
		return 0, err
	}
	if event == waitTimeout {
		return 0, errPollExpired
	}

	var n uint32
	err = windows.GetOverlappedResult(p.stdout, &p.overlapped, &n, false)
	p.pending = false
	if err != nil {
		return 0, readError(err)
	}
	if n == 0 {
		// zero-byte write from the child
		return 0, errPollExpired
	}
	return copy(buf, p.buf[:n]), nil
}

// readError maps the ways a pipe reports a closed writer to io.EOF.
func readError(err error) error {
	if errors.Is(err, windows.ERROR_BROKEN_PIPE) || errors.Is(err, windows.ERROR_OPERATION_ABORTED) {
		return io.EOF
	}
	return err
}

func (p *windowsProcess) closeOutput() {
	if p.closed {
		return
	}
	if p.pending {
		if err := windows.CancelIoEx(p.stdout, &p.overlapped); err == nil {
			var n uint32
			_ = windows.GetOverlappedResult(p.stdout, &p.overlapped, &n, true)
		}
		p.pending = false
	}
	closeHandle(p.stdout)
	p.closed = true
}

func (p *windowsProcess) kill() error {
	return windows.TerminateProcess(p.process, terminateExitCode)
}

// wait never reports a signal; the exit code is returned unmasked.
func (p *windowsProcess) wait() (exitStatus, error) {
	if _, err := windows.WaitForSingleObject(p.process, windows.INFINITE); err != nil {
		return exitStatus{}, err
	}
	var code uint32
	if err := windows.GetExitCodeProcess(p.process, &code); err != nil {
		return exitStatus{}, err
	}
	return exitStatus{exited: true, code: int(code)}, nil
}

func (p *windowsProcess) release() {
	p.closeOutput()
	closeHandle(p.event)
	closeHandle(p.process)
}

func closeHandle(h windows.Handle) {
	if err := windows.CloseHandle(h); err != nil {
		log.Debug().Err(err).Msg("failed to close handle")
	}
}
