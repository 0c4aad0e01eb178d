package facts

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vertti/hostfacts/pkg/execution"
)

// Resolver adds a group of related facts to a collection.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, facts *Collection) error
}

// Gather runs resolvers in order. Later resolvers may read facts added by
// earlier ones. A failing resolver is logged and skipped.
func Gather(ctx context.Context, resolvers ...Resolver) *Collection {
	facts := NewCollection()
	for _, r := range resolvers {
		start := time.Now()
		if err := r.Resolve(ctx, facts); err != nil {
			log.Warn().Err(err).Str("resolver", r.Name()).Msg("resolver failed, skipping its facts")
			continue
		}
		log.Debug().Str("resolver", r.Name()).Dur("elapsed", time.Since(start)).Msg("resolved facts")
	}
	return facts
}

// DefaultResolvers returns every built-in resolver in dependency order.
func DefaultResolvers(exec execution.Executor) []Resolver {
	info := &RealSysInfo{}
	return []Resolver{
		&KernelResolver{Exec: exec, Info: info},
		&HardwareResolver{Exec: exec, Info: info},
		&OSResolver{Exec: exec, Info: info},
		&VirtualizationResolver{Exec: exec, Info: info},
		&LDomResolver{Exec: exec},
		&UniqueIDResolver{Exec: exec},
		&ResourcesResolver{Checker: &RealResourceChecker{}},
	}
}

// run executes a command with the default options and returns its trimmed
// output. A command that is missing or fails yields "".
func run(ctx context.Context, exec execution.Executor, file string, args ...string) (string, error) {
	result, err := exec.Execute(ctx, execution.Command{
		File:    file,
		Args:    args,
		Options: execution.DefaultOptions,
	}, nil)
	if err != nil {
		return "", err
	}
	if !result.Success {
		return "", nil
	}
	return result.Output, nil
}
