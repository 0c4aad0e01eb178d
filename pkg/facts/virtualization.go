package facts

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/vertti/hostfacts/pkg/execution"
)

// Hypervisor names reported by the virtual fact.
const (
	VirtualPhysical   = "physical"
	VirtualZone       = "zone"
	VirtualLDom       = "ldom"
	VirtualVMware     = "vmware"
	VirtualVirtualBox = "virtualbox"
	VirtualParallels  = "parallels"
	VirtualKVM        = "kvm"
	VirtualXenHVM     = "xenhvm"
	VirtualOVirt      = "ovirt"
)

// prtdiagTimeout matches the limit older facter releases used.
const prtdiagTimeout = 20 * time.Second

// Injected for tests.
var hostVirtualization = host.VirtualizationWithContext

var prtdiagGuests = []struct {
	pattern *regexp.Regexp
	name    string
}{
	{regexp.MustCompile(`VMware`), VirtualVMware},
	{regexp.MustCompile(`VirtualBox`), VirtualVirtualBox},
	{regexp.MustCompile(`Parallels`), VirtualParallels},
	{regexp.MustCompile(`KVM`), VirtualKVM},
	{regexp.MustCompile(`HVM domU`), VirtualXenHVM},
	{regexp.MustCompile(`oVirt Node`), VirtualOVirt},
}

var domainRolePattern = regexp.MustCompile(`Domain role:.*(root|guest)`)

// nonVirtual hypervisor values describe a host rather than a guest.
var nonVirtual = map[string]bool{
	VirtualPhysical:      true,
	"xen0":               true,
	"vmware_server":      true,
	"vmware_workstation": true,
	"openvzhn":           true,
	"vserver_host":       true,
}

// VirtualizationResolver resolves virtual and is_virtual. On Solaris it asks
// zonename, prtdiag and virtinfo; elsewhere it relies on gopsutil's
// detection.
type VirtualizationResolver struct {
	Exec execution.Executor
	Info SysInfo
}

func (r *VirtualizationResolver) Name() string { return "virtualization" }

func (r *VirtualizationResolver) Resolve(ctx context.Context, facts *Collection) error {
	var hypervisor string
	var err error
	if isSolaris(sysInfo(r.Info).OS()) {
		hypervisor, err = r.solarisHypervisor(ctx, facts)
	} else {
		hypervisor, err = detectedHypervisor(ctx)
	}
	if err != nil {
		return err
	}
	if hypervisor == "" {
		hypervisor = VirtualPhysical
	}

	facts.Add("virtual", hypervisor)
	facts.Add("is_virtual", !nonVirtual[hypervisor])
	return nil
}

func (r *VirtualizationResolver) solarisHypervisor(ctx context.Context, facts *Collection) (string, error) {
	zone, err := r.Exec.Execute(ctx, execution.Command{
		File:    "/usr/bin/zonename",
		Options: execution.DefaultOptions,
	}, nil)
	if err != nil {
		return "", err
	}
	if zone.Success && zone.Output != "global" {
		return VirtualZone, nil
	}

	switch facts.String("hardwareisa") {
	case "i386":
		return r.prtdiag(ctx)
	case "sparc":
		return r.virtinfo(ctx)
	}
	return "", nil
}

// prtdiag scans the system diagnostics for a known hypervisor. prtdiag can
// hang on some hardware, so a timeout only logs a warning.
func (r *VirtualizationResolver) prtdiag(ctx context.Context) (string, error) {
	var guest string
	_, err := r.Exec.EachLine(ctx, execution.Command{
		File:    "/usr/sbin/prtdiag",
		Options: execution.DefaultOptions,
		Timeout: prtdiagTimeout,
	}, func(line string) bool {
		for _, g := range prtdiagGuests {
			if g.pattern.MatchString(line) {
				guest = g.name
				return false
			}
		}
		return true
	})

	var timeoutErr *execution.TimeoutError
	if errors.As(err, &timeoutErr) {
		log.Warn().Msgf("execution of prtdiag has timed out after %d seconds.", int(prtdiagTimeout.Seconds()))
		return guest, nil
	}
	if err != nil {
		return "", pkgerrors.Wrap(err, "prtdiag failed")
	}
	return guest, nil
}

func (r *VirtualizationResolver) virtinfo(ctx context.Context) (string, error) {
	var guest string
	_, err := r.Exec.EachLine(ctx, execution.Command{
		File:    "/usr/sbin/virtinfo",
		Args:    []string{"-a"},
		Options: execution.DefaultOptions,
	}, func(line string) bool {
		if m := domainRolePattern.FindStringSubmatch(line); m != nil {
			if m[1] != "root" {
				guest = VirtualLDom
			}
			return false
		}
		if strings.Contains(line, "virtinfo can only be run from the global zone") {
			guest = VirtualZone
			return false
		}
		return true
	})
	if err != nil {
		return "", pkgerrors.Wrap(err, "virtinfo failed")
	}
	return guest, nil
}

// detectedHypervisor maps gopsutil's detection onto hypervisor names. A
// detection failure means no hypervisor was recognized.
func detectedHypervisor(ctx context.Context) (string, error) {
	system, role, err := hostVirtualization(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("virtualization detection failed")
		return "", nil
	}
	if role != "guest" || system == "" {
		return "", nil
	}
	switch system {
	case "xen":
		return "xenu", nil
	case "vbox":
		return VirtualVirtualBox, nil
	}
	return system, nil
}
