package execution

import (
	"context"
	"strings"
	"unicode"
)

// EachLine runs cmd and calls fn with each complete line of output. A final
// line without a newline is delivered at end of stream. With TrimOutput each
// line has trailing whitespace removed. It returns whether the command
// succeeded.
func EachLine(ctx context.Context, cmd Command, fn LineFunc) (bool, error) {
	trim := cmd.Options.Has(TrimOutput)
	stopped := false
	emit := func(line string) bool {
		line = strings.TrimSuffix(line, "\r")
		if trim {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
		}
		if !fn(line) {
			stopped = true
		}
		return !stopped
	}

	var pending strings.Builder
	result, err := Execute(ctx, cmd, func(chunk string) bool {
		pending.WriteString(chunk)
		data := pending.String()
		last := strings.LastIndexByte(data, '\n')
		if last < 0 {
			return true
		}
		pending.Reset()
		pending.WriteString(data[last+1:])

		for line := range strings.SplitSeq(data[:last], "\n") {
			if !emit(line) {
				return false
			}
		}
		return true
	})
	if err != nil {
		return false, err
	}

	if !stopped && pending.Len() > 0 {
		emit(pending.String())
	}
	return result.Success, nil
}

// Run executes file with args using DefaultOptions and returns the captured
// output.
func Run(ctx context.Context, file string, args ...string) (Result, error) {
	return Execute(ctx, Command{File: file, Args: args, Options: DefaultOptions}, nil)
}
