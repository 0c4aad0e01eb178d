package facts

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
)

const (
	_         = iota
	KB uint64 = 1 << (10 * iota)
	MB
	GB
	TB
)

var errUnsupported = errors.New("not supported on " + runtime.GOOS)

// ResourceChecker abstracts system resource detection for testability.
type ResourceChecker interface {
	// FreeDiskSpace returns free disk space in bytes at the given path.
	FreeDiskSpace(path string) (uint64, error)

	// TotalMemory returns usable memory in bytes.
	// In containers, this respects cgroup limits.
	TotalMemory() (uint64, error)

	// NumCPUs returns the number of available CPUs.
	NumCPUs() int
}

// RealResourceChecker implements ResourceChecker using actual system calls.
type RealResourceChecker struct{}

// NumCPUs returns the number of available CPUs.
// Go's runtime.NumCPU() already respects container CPU limits.
func (r *RealResourceChecker) NumCPUs() int {
	return runtime.NumCPU()
}

// ResourcesResolver resolves processors, memory and the free space of the
// root mount point. Unsupported measurements are skipped.
type ResourcesResolver struct {
	Checker ResourceChecker
	// Root is the mount point measured; "/" when empty.
	Root string
}

func (r *ResourcesResolver) Name() string { return "resources" }

func (r *ResourcesResolver) Resolve(_ context.Context, facts *Collection) error {
	checker := r.Checker
	if checker == nil {
		checker = &RealResourceChecker{}
	}
	root := r.Root
	if root == "" {
		root = "/"
	}

	facts.Add("processors", map[string]any{"count": checker.NumCPUs()})

	if total, err := checker.TotalMemory(); err != nil {
		log.Debug().Err(err).Msg("memory size unavailable")
	} else {
		facts.Add("memory", map[string]any{
			"system": map[string]any{
				"total_bytes": total,
				"total":       FormatSize(total),
			},
		})
	}

	if free, err := checker.FreeDiskSpace(root); err != nil {
		log.Debug().Err(err).Str("path", root).Msg("disk space unavailable")
	} else {
		facts.Add("mountpoints", map[string]any{
			root: map[string]any{
				"available_bytes": free,
				"available":       FormatSize(free),
			},
		})
	}
	return nil
}

// FormatSize formats bytes into a human-readable string.
func FormatSize(bytes uint64) string {
	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TiB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GiB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MiB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KiB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
