package execution

import "context"

// Executor runs commands on behalf of fact resolvers. Resolvers take an
// Executor so tests can substitute canned output for real processes.
type Executor interface {
	Execute(ctx context.Context, cmd Command, consume ChunkFunc) (Result, error)
	EachLine(ctx context.Context, cmd Command, fn LineFunc) (bool, error)
	LookPath(file string) string
}

// RealExecutor is the production Executor backed by this package.
type RealExecutor struct{}

func (RealExecutor) Execute(ctx context.Context, cmd Command, consume ChunkFunc) (Result, error) {
	return Execute(ctx, cmd, consume)
}

func (RealExecutor) EachLine(ctx context.Context, cmd Command, fn LineFunc) (bool, error) {
	return EachLine(ctx, cmd, fn)
}

func (RealExecutor) LookPath(file string) string {
	return LookPath(file)
}
