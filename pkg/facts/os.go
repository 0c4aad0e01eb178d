package facts

import (
	"bufio"
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/vertti/hostfacts/pkg/execution"
)

// Injected for tests.
var (
	platformInformation = host.PlatformInformationWithContext
	linuxRelease        = readLinuxRelease
	aixReleaseFile      = "/usr/lpp/bos/aix_release.level"
)

// distroRelease is what the Linux release files say about the distribution.
type distroRelease struct {
	ID      string // os-release ID, e.g. "ubuntu"
	Release string
}

var distroNames = map[string]string{
	"almalinux":           "AlmaLinux",
	"alpine":              "Alpine",
	"amzn":                "Amazon",
	"arch":                "Archlinux",
	"centos":              "CentOS",
	"cloudlinux":          "CloudLinux",
	"debian":              "Debian",
	"fedora":              "Fedora",
	"gentoo":              "Gentoo",
	"linuxmint":           "LinuxMint",
	"mageia":              "Mageia",
	"ol":                  "OracleLinux",
	"opensuse":            "OpenSuSE",
	"opensuse-leap":       "OpenSuSE",
	"opensuse-tumbleweed": "OpenSuSE",
	"rhel":                "RedHat",
	"rocky":               "Rocky",
	"scientific":          "Scientific",
	"sled":                "SLED",
	"sles":                "SLES",
	"ubuntu":              "Ubuntu",
	"xenserver":           "XenServer",
}

var osFamilies = map[string]string{
	"RedHat":      "RedHat",
	"Fedora":      "RedHat",
	"CentOS":      "RedHat",
	"Scientific":  "RedHat",
	"SLC":         "RedHat",
	"Ascendos":    "RedHat",
	"CloudLinux":  "RedHat",
	"PSBM":        "RedHat",
	"OracleLinux": "RedHat",
	"OVS":         "RedHat",
	"OEL":         "RedHat",
	"Amazon":      "RedHat",
	"XenServer":   "RedHat",
	"AlmaLinux":   "RedHat",
	"Rocky":       "RedHat",
	"LinuxMint":   "Debian",
	"Ubuntu":      "Debian",
	"Debian":      "Debian",
	"SLES":        "Suse",
	"SLED":        "Suse",
	"OpenSuSE":    "Suse",
	"SuSE":        "Suse",
	"Gentoo":      "Gentoo",
	"Archlinux":   "Archlinux",
	"Mageia":      "Mandrake",
	"Mandriva":    "Mandrake",
	"Mandrake":    "Mandrake",
	"Solaris":     "Solaris",
}

var (
	lsbMajorPattern   = regexp.MustCompile(`^(\d*)\.`)
	x86Pattern        = regexp.MustCompile(`i[3456]86|pentium`)
	aixReleasePattern = regexp.MustCompile(`(\d+)\.(\d+\.\d+\.\d+)`)
)

// OSResolver resolves the structured os fact and its flat equivalents
// (operatingsystem, osfamily, operatingsystemrelease, ...). It reads the
// kernel and hardware facts, so it runs after those resolvers.
type OSResolver struct {
	Exec execution.Executor
	Info SysInfo
}

func (r *OSResolver) Name() string { return "operating system" }

func (r *OSResolver) Resolve(ctx context.Context, facts *Collection) error {
	kernel := facts.String("kernel")
	osFact := map[string]any{}
	name, release := kernel, facts.String("kernelrelease")
	hardware := facts.String("hardwaremodel")
	architecture := hardware

	switch goos := sysInfo(r.Info).OS(); {
	case goos == "linux":
		distro, err := r.lsbFacts(ctx, facts)
		if err != nil {
			return err
		}
		if len(distro) > 0 {
			osFact["distro"] = distro
		}
		name, release = linuxName(facts.String("lsbdistid"), facts.String("lsbdistrelease"), linuxRelease())
	case goos == "aix":
		var err error
		if architecture, err = r.lsattr(ctx, "proc0", "type"); err != nil {
			return err
		}
		if hardware, err = r.lsattr(ctx, "sys0", "modelname"); err != nil {
			return err
		}
		if level := readAIXRelease(aixReleaseFile); level != "" {
			release = level
		}
	case isSolaris(goos):
		name = "Solaris"
	case goos == "windows":
		_, _, version, err := platformInformation(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to read platform information")
		}
		name, release = "windows", version
		if x86Pattern.MatchString(hardware) {
			architecture = "x86"
		}
	}
	if name == "" {
		return errors.New("operating system name could not be determined")
	}

	family := osFamily(name, kernel)
	if hardware == "x86_64" && (family == "Debian" || family == "Gentoo") {
		architecture = "amd64"
	}

	major, minor := splitRelease(name, release)
	osFact["name"] = name
	osFact["family"] = family
	if release != "" {
		rel := map[string]any{"full": release}
		if major != "" {
			rel["major"] = major
		}
		if minor != "" {
			rel["minor"] = minor
		}
		osFact["release"] = rel
	}
	if architecture != "" {
		osFact["architecture"] = architecture
	}
	if hardware != "" {
		osFact["hardware"] = hardware
	}

	facts.Add("os", osFact)
	facts.Add("operatingsystem", name)
	facts.Add("osfamily", family)
	facts.Add("operatingsystemrelease", release)
	facts.Add("operatingsystemmajrelease", major)
	facts.Add("architecture", architecture)
	return nil
}

// lsbFacts runs lsb_release and adds the lsbdist* facts. It returns the
// os.distro map, which is empty when lsb_release is not installed.
func (r *OSResolver) lsbFacts(ctx context.Context, facts *Collection) (map[string]any, error) {
	query := func(flag string) (string, error) {
		return run(ctx, r.Exec, "lsb_release", flag, "-s")
	}

	id, err := query("-i")
	if err != nil {
		return nil, err
	}
	release, err := query("-r")
	if err != nil {
		return nil, err
	}
	description, err := query("-d")
	if err != nil {
		return nil, err
	}
	codename, err := query("-c")
	if err != nil {
		return nil, err
	}
	description = strings.TrimSuffix(strings.TrimPrefix(description, `"`), `"`)

	distro := map[string]any{}
	if id != "" {
		distro["id"] = id
	}
	if description != "" {
		distro["description"] = description
	}
	if codename != "" {
		distro["codename"] = codename
	}
	if release != "" {
		rel := map[string]any{"full": release}
		major := lsbMajor(release)
		rel["major"] = major
		if _, minor, ok := strings.Cut(release, "."); ok && minor != "" {
			rel["minor"] = minor
		}
		distro["release"] = rel
		facts.Add("lsbmajdistrelease", major)
	}

	facts.Add("lsbdistid", id)
	facts.Add("lsbdistrelease", release)
	facts.Add("lsbdistdescription", description)
	facts.Add("lsbdistcodename", codename)
	return distro, nil
}

// lsattr returns the value column of lsattr -El object -a field.
func (r *OSResolver) lsattr(ctx context.Context, object, field string) (string, error) {
	var value string
	_, err := r.Exec.EachLine(ctx, execution.Command{
		File:    "/usr/sbin/lsattr",
		Args:    []string{"-El", object, "-a", field},
		Options: execution.DefaultOptions,
	}, func(line string) bool {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			return true
		}
		if len(tokens) > 1 {
			value = tokens[1]
		}
		return false
	})
	return value, err
}

// linuxName picks the distribution name. lsb_release is trusted for Ubuntu
// and LinuxMint; otherwise the release files decide.
func linuxName(lsbID, lsbRelease string, distro distroRelease) (name, release string) {
	switch lsbID {
	case "Ubuntu", "LinuxMint":
		name = lsbID
	default:
		name = distroNames[strings.ToLower(distro.ID)]
	}
	if name == "" {
		name = lsbID
	}
	if name == "" {
		name = "Linux"
	}

	release = distro.Release
	if release == "" {
		release = lsbRelease
	}
	return name, release
}

func osFamily(name, kernel string) string {
	if family, ok := osFamilies[name]; ok {
		return family
	}
	return kernel
}

// splitRelease returns the major and minor release. Ubuntu's major release
// keeps the year and month, e.g. "22.04"; AIX splits "7.1.0.0" into "7" and
// "1.0.0".
func splitRelease(name, release string) (major, minor string) {
	if release == "" {
		return "", ""
	}
	if name == "AIX" {
		if m := aixReleasePattern.FindStringSubmatch(release); m != nil {
			return m[1], m[2]
		}
		return "", ""
	}
	parts := strings.SplitN(release, ".", 3)
	if name == "Ubuntu" && len(parts) >= 2 {
		major = parts[0] + "." + parts[1]
		if len(parts) == 3 {
			minor = parts[2]
		}
		return major, minor
	}
	major = parts[0]
	if len(parts) > 1 {
		minor = parts[1]
	}
	return major, minor
}

func lsbMajor(release string) string {
	if m := lsbMajorPattern.FindStringSubmatch(release); m != nil {
		return m[1]
	}
	return release
}

// readAIXRelease returns the first "major.x.y.z" release found in the bos
// release level file, or "" when the file is missing or has none.
func readAIXRelease(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := aixReleasePattern.FindStringSubmatch(scanner.Text()); m != nil {
			return m[1] + "." + m[2]
		}
	}
	return ""
}
