package facts

import (
	"context"

	"github.com/vertti/hostfacts/pkg/execution"
)

// UniqueIDResolver resolves uniqueid from hostid, or from the kern.hostid
// sysctl on FreeBSD, where it also resolves hostuuid. It reads the kernel
// fact, so it runs after the kernel resolver.
type UniqueIDResolver struct {
	Exec execution.Executor
}

func (r *UniqueIDResolver) Name() string { return "unique id" }

func (r *UniqueIDResolver) Resolve(ctx context.Context, facts *Collection) error {
	switch facts.String("kernel") {
	case "SunOS", "Linux", "AIX", "GNU/kFreeBSD":
		id, err := run(ctx, r.Exec, "hostid")
		if err != nil {
			return err
		}
		facts.Add("uniqueid", id)
	case "FreeBSD":
		id, err := run(ctx, r.Exec, "sysctl", "-n", "kern.hostid")
		if err != nil {
			return err
		}
		uuid, err := run(ctx, r.Exec, "sysctl", "-n", "kern.hostuuid")
		if err != nil {
			return err
		}
		facts.Add("uniqueid", id)
		facts.Add("hostuuid", uuid)
	}
	return nil
}
