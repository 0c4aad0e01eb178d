package execution

import (
	"context"
	"errors"
	"io"
	"iter"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"
)

const (
	readChunkSize = 4096
	// pollInterval bounds each read wait so an expired timeout is noticed
	// without waiting for the child to write or exit.
	pollInterval = 500 * time.Millisecond
)

// errPollExpired is returned by childProcess.read when a bounded wait ends
// without data.
var errPollExpired = errors.New("read wait expired")

// watchdog tracks the single timeout window of one Execute call. The window
// is not renewed per chunk.
type watchdog struct {
	ctx     context.Context
	timeout time.Duration
	timer   *time.Timer
	expired atomic.Bool
	fired   chan struct{}
}

func newWatchdog(ctx context.Context, timeout time.Duration) *watchdog {
	w := &watchdog{ctx: ctx, timeout: timeout, fired: make(chan struct{})}
	if timeout > 0 {
		w.timer = time.AfterFunc(timeout, func() {
			w.expired.Store(true)
			close(w.fired)
		})
	}
	return w
}

func (w *watchdog) stop() {
	if w.timer != nil {
		w.timer.Stop()
	}
}

// bounded reports whether waits must be sliced to observe expiry.
func (w *watchdog) bounded() bool {
	return w.timer != nil || w.ctx.Done() != nil
}

// err returns a *TimeoutError once the timer fired, or an *ExecutionError
// once the context is done.
func (w *watchdog) err() error {
	if w.expired.Load() {
		return &TimeoutError{Timeout: w.timeout}
	}
	if err := w.ctx.Err(); err != nil {
		return newExecutionError(err, "command was canceled")
	}
	return nil
}

// chunks returns the child's output as a finite sequence of chunks in the
// order the child wrote them. The sequence cannot be restarted, and each
// yielded slice is only valid until the next iteration.
func chunks(child childProcess, w *watchdog) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		buf := make([]byte, readChunkSize)
		var slice time.Duration
		if w.bounded() {
			slice = pollInterval
		}

		for {
			if err := w.err(); err != nil {
				yield(nil, err)
				return
			}

			n, err := child.read(buf, slice)
			switch {
			case n > 0:
				if !yield(buf[:n], nil) {
					return
				}
				continue
			case errors.Is(err, errPollExpired):
				continue
			case errors.Is(err, syscall.EINTR):
				log.Debug().Msg("child pipe read was interrupted and will be retried")
				continue
			case err == nil, errors.Is(err, io.EOF):
				return
			}

			log.Error().Err(err).Msg("failed to read child output")
			yield(nil, newExecutionError(err, "failed to read child output"))
			return
		}
	}
}

// pump drains the child's output into an accumulator, handing each chunk to
// consume until the stream ends or consume returns false.
func pump(child childProcess, w *watchdog, trim bool, consume ChunkFunc) (string, error) {
	var out strings.Builder
	for chunk, err := range chunks(child, w) {
		if err != nil {
			return "", err
		}
		out.Write(chunk)
		if consume != nil && !consume(string(chunk)) {
			break
		}
	}

	if trim {
		return strings.TrimRightFunc(out.String(), unicode.IsSpace), nil
	}
	return out.String(), nil
}
