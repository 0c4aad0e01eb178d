package facts

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/vertti/hostfacts/pkg/execution"
)

// Injected for tests.
var hostInfo = host.InfoWithContext

// KernelResolver resolves kernel, kernelrelease, kernelversion and
// kernelmajversion.
type KernelResolver struct {
	Exec execution.Executor
	Info SysInfo
}

func (r *KernelResolver) Name() string { return "kernel" }

func (r *KernelResolver) Resolve(ctx context.Context, facts *Collection) error {
	var name, release, version string
	var err error

	switch goos := sysInfo(r.Info).OS(); {
	case goos == "windows":
		name, release, version, err = windowsKernel(ctx)
	case goos == "aix":
		name = "AIX"
		release, err = r.aixRelease(ctx)
		version, _, _ = strings.Cut(release, "-")
	default:
		name, release, err = r.uname(ctx)
		version, _, _ = strings.Cut(release, "-")
	}
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New("kernel name could not be determined")
	}

	facts.Add("kernel", name)
	facts.Add("kernelrelease", release)
	facts.Add("kernelversion", version)
	facts.Add("kernelmajversion", majorVersion(version))
	return nil
}

func (r *KernelResolver) uname(ctx context.Context) (name, release string, err error) {
	if name, err = run(ctx, r.Exec, "uname", "-s"); err != nil {
		return "", "", err
	}
	if release, err = run(ctx, r.Exec, "uname", "-r"); err != nil {
		return "", "", err
	}
	return name, release, nil
}

// aixRelease reads the first non-empty line of oslevel -s, e.g.
// "7100-04-02-1614".
func (r *KernelResolver) aixRelease(ctx context.Context) (string, error) {
	var release string
	_, err := r.Exec.EachLine(ctx, execution.Command{
		File:    "/usr/bin/oslevel",
		Args:    []string{"-s"},
		Options: execution.DefaultOptions,
	}, func(line string) bool {
		if line == "" {
			return true
		}
		release = line
		return false
	})
	return release, err
}

func windowsKernel(ctx context.Context) (name, release, version string, err error) {
	info, err := hostInfo(ctx)
	if err != nil {
		return "", "", "", errors.Wrap(err, "failed to read host information")
	}
	return "windows", info.KernelVersion, info.KernelVersion, nil
}

// majorVersion keeps the first two dotted components of a version.
func majorVersion(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}
