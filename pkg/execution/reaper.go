package execution

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// childProcess is a started child owned by exactly one Execute call. Each
// platform provides its own implementation through spawn.
type childProcess interface {
	// read reads the next chunk of output. A positive wait bounds the call
	// and errPollExpired reports that it elapsed; zero blocks. io.EOF marks
	// the end of the stream.
	read(buf []byte, wait time.Duration) (int, error)
	// closeOutput releases the parent's read end of the output pipe. A child
	// still writing will see a broken pipe.
	closeOutput()
	// kill forcibly terminates the child.
	kill() error
	// wait blocks until the child exits and returns its status.
	wait() (exitStatus, error)
	// release frees every remaining OS resource. It is called after wait.
	release()
}

// exitStatus is the classified final state of a child.
type exitStatus struct {
	exited   bool
	code     int
	signaled bool
	signal   int
}

func (s exitStatus) success() bool {
	return s.exited && s.code == 0
}

// reaper waits for a child exactly once, however many exit paths reach it.
type reaper struct {
	child  childProcess
	once   sync.Once
	status exitStatus
}

func newReaper(child childProcess) *reaper {
	return &reaper{child: child}
}

// reap waits for the child, killing it first when kill is set. Only the first
// call has any effect; wait failures are logged and leave a status that is
// neither exited nor signaled.
func (r *reaper) reap(kill bool) exitStatus {
	r.once.Do(func() {
		if kill {
			if err := r.child.kill(); err != nil {
				log.Debug().Err(err).Msg("failed to kill child process")
			}
		}
		status, err := r.child.wait()
		if err != nil {
			log.Debug().Err(err).Msg("failed to wait for child process")
			return
		}
		r.status = status
	})
	return r.status
}

// waitExit waits for the child to exit on its own within what remains of the
// watchdog's window. When the window closes first the child is killed and
// reaped before the watchdog's error is returned.
func (r *reaper) waitExit(w *watchdog) (exitStatus, error) {
	if !w.bounded() {
		return r.reap(false), nil
	}

	done := make(chan exitStatus, 1)
	go func() { done <- r.reap(false) }()

	select {
	case status := <-done:
		return status, nil
	case <-w.fired:
	case <-w.ctx.Done():
	}

	if err := r.child.kill(); err != nil {
		log.Debug().Err(err).Msg("failed to kill child process")
	}
	<-done
	return exitStatus{}, w.err()
}
