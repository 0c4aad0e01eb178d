package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/vertti/hostfacts/pkg/execution"
)

// MockOutput is the canned outcome of one command line.
type MockOutput struct {
	Output  string
	Success bool
	Err     error
}

// MockExecutor is a test double for execution.Executor. Commands are looked
// up by their file and arguments joined with spaces; unknown commands behave
// like a program that is not installed.
type MockExecutor struct {
	Outputs map[string]MockOutput
	Paths   map[string]string

	mu    sync.Mutex
	calls []execution.Command
}

// Ok returns a successful MockOutput.
func Ok(output string) MockOutput {
	return MockOutput{Output: output, Success: true}
}

func (m *MockExecutor) lookup(cmd execution.Command) (MockOutput, bool) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()

	key := strings.Join(append([]string{cmd.File}, cmd.Args...), " ")
	out, ok := m.Outputs[key]
	return out, ok
}

func (m *MockExecutor) Execute(_ context.Context, cmd execution.Command, consume execution.ChunkFunc) (execution.Result, error) {
	out, ok := m.lookup(cmd)
	if !ok {
		return execution.Result{}, nil
	}
	if out.Err != nil {
		return execution.Result{}, out.Err
	}
	if consume != nil && out.Output != "" {
		consume(out.Output)
	}
	text := out.Output
	if cmd.Options.Has(execution.TrimOutput) {
		text = strings.TrimRight(text, " \t\r\n")
	}
	return execution.Result{Success: out.Success, Output: text}, nil
}

func (m *MockExecutor) EachLine(_ context.Context, cmd execution.Command, fn execution.LineFunc) (bool, error) {
	out, ok := m.lookup(cmd)
	if !ok {
		return false, nil
	}
	if out.Output != "" {
		for _, line := range strings.Split(strings.TrimSuffix(out.Output, "\n"), "\n") {
			if !fn(line) {
				break
			}
		}
	}
	// An error is reported after the lines so callers see partial output, as
	// with a real command that times out.
	if out.Err != nil {
		return false, out.Err
	}
	return out.Success, nil
}

func (m *MockExecutor) LookPath(file string) string {
	return m.Paths[file]
}

// Calls returns the commands executed so far.
func (m *MockExecutor) Calls() []execution.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]execution.Command(nil), m.calls...)
}

// Called reports whether a command with the given file and args ran.
func (m *MockExecutor) Called(file string, args ...string) bool {
	want := strings.Join(append([]string{file}, args...), " ")
	for _, c := range m.Calls() {
		if strings.Join(append([]string{c.File}, c.Args...), " ") == want {
			return true
		}
	}
	return false
}
