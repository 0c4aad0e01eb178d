package facts

import (
	"context"
	"regexp"

	"github.com/vertti/hostfacts/pkg/execution"
)

// ldomField describes one value parsed from virtinfo -a -p. The flat fact
// name, the key within the ldom fact and, for roles, the nested role key.
type ldomField struct {
	pattern *regexp.Regexp
	fact    string
	key     string
	role    bool
}

var ldomFields = []ldomField{
	{regexp.MustCompile(`DOMAINROLE\|.*impl=([a-zA-Z]*)`), "ldom_domainrole_impl", "impl", true},
	{regexp.MustCompile(`DOMAINROLE\|.*control=([a-zA-Z]*)`), "ldom_domainrole_control", "control", true},
	{regexp.MustCompile(`DOMAINROLE\|.*io=([a-zA-Z]*)`), "ldom_domainrole_io", "io", true},
	{regexp.MustCompile(`DOMAINROLE\|.*service=([a-zA-Z]*)`), "ldom_domainrole_service", "service", true},
	{regexp.MustCompile(`DOMAINROLE\|.*root=([a-zA-Z]*)`), "ldom_domainrole_root", "root", true},
	{regexp.MustCompile(`DOMAINNAME\|name=(.*)`), "ldom_domainname", "name", false},
	{regexp.MustCompile(`DOMAINUUID\|uuid=(.*)`), "ldom_domainuuid", "uuid", false},
	{regexp.MustCompile(`DOMAINCONTROL\|name=(.*)`), "ldom_domaincontrol", "control_name", false},
	{regexp.MustCompile(`DOMAINCHASSIS\|serialno=(.*)`), "ldom_domainchassis", "chassis_serial_number", false},
}

// LDomResolver resolves logical domain facts on SPARC. It does nothing when
// hardwareisa is known and is not sparc.
type LDomResolver struct {
	Exec execution.Executor
}

func (r *LDomResolver) Name() string { return "ldom" }

func (r *LDomResolver) Resolve(ctx context.Context, facts *Collection) error {
	if isa := facts.String("hardwareisa"); isa != "" && isa != "sparc" {
		return nil
	}

	values := make([]string, len(ldomFields))
	_, err := r.Exec.EachLine(ctx, execution.Command{
		File:    "/usr/sbin/virtinfo",
		Args:    []string{"-a", "-p"},
		Options: execution.DefaultOptions,
	}, func(line string) bool {
		for i, f := range ldomFields {
			if values[i] != "" {
				continue
			}
			if m := f.pattern.FindStringSubmatch(line); m != nil {
				values[i] = m[1]
			}
		}
		return true
	})
	if err != nil {
		return err
	}

	ldom := map[string]any{}
	role := map[string]any{}
	for i, f := range ldomFields {
		if values[i] == "" {
			continue
		}
		facts.Add(f.fact, values[i])
		if f.role {
			role[f.key] = values[i]
		} else {
			ldom[f.key] = values[i]
		}
	}
	if len(role) > 0 {
		ldom["role"] = role
	}
	facts.Add("ldom", ldom)
	return nil
}
