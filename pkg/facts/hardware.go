package facts

import (
	"context"

	"github.com/vertti/hostfacts/pkg/execution"
)

// HardwareResolver resolves hardwaremodel (uname -m) and hardwareisa
// (uname -p), falling back to the Go architecture when uname has no answer.
type HardwareResolver struct {
	Exec execution.Executor
	Info SysInfo
}

func (r *HardwareResolver) Name() string { return "hardware" }

func (r *HardwareResolver) Resolve(ctx context.Context, facts *Collection) error {
	info := sysInfo(r.Info)
	if info.OS() == "windows" {
		model := windowsHardware(info.Arch())
		facts.Add("hardwaremodel", model)
		facts.Add("hardwareisa", model)
		return nil
	}

	model, err := run(ctx, r.Exec, "uname", "-m")
	if err != nil {
		return err
	}
	isa, err := run(ctx, r.Exec, "uname", "-p")
	if err != nil {
		return err
	}

	if model == "" {
		model = hardwareFromArch(info.Arch())
	}
	// GNU uname prints "unknown" for -p.
	if isa == "" || isa == "unknown" {
		isa = isaFromArch(info.OS(), info.Arch(), model)
	}

	facts.Add("hardwaremodel", model)
	facts.Add("hardwareisa", isa)
	return nil
}

func hardwareFromArch(arch string) string {
	switch arch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	case "arm64":
		return "aarch64"
	case "arm":
		return "armv7l"
	case "sparc64":
		return "sun4v"
	}
	return arch
}

func isaFromArch(goos, arch, model string) string {
	switch arch {
	case "386":
		return "i386"
	case "amd64":
		if isSolaris(goos) {
			return "i386"
		}
		return "x86_64"
	case "sparc64":
		return "sparc"
	}
	return model
}

// windowsHardware names the processor architecture the way Windows does.
func windowsHardware(arch string) string {
	switch arch {
	case "amd64":
		return "x64"
	case "386":
		return "i686"
	}
	return arch
}
