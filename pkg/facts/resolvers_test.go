package facts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/hostfacts/pkg/execution"
	"github.com/vertti/hostfacts/pkg/testutil"
)

type mockSysInfo struct {
	os   string
	arch string
}

func (m *mockSysInfo) OS() string   { return m.os }
func (m *mockSysInfo) Arch() string { return m.arch }

func resolve(t *testing.T, r Resolver, facts *Collection) *Collection {
	t.Helper()
	if facts == nil {
		facts = NewCollection()
	}
	require.NoError(t, r.Resolve(context.Background(), facts))
	return facts
}

func TestKernelResolver(t *testing.T) {
	tests := []struct {
		name        string
		info        *mockSysInfo
		outputs     map[string]testutil.MockOutput
		wantKernel  string
		wantRelease string
		wantVersion string
		wantMajor   string
	}{
		{
			name: "linux",
			info: &mockSysInfo{os: "linux", arch: "amd64"},
			outputs: map[string]testutil.MockOutput{
				"uname -s": testutil.Ok("Linux\n"),
				"uname -r": testutil.Ok("6.8.0-45-generic\n"),
			},
			wantKernel:  "Linux",
			wantRelease: "6.8.0-45-generic",
			wantVersion: "6.8.0",
			wantMajor:   "6.8",
		},
		{
			name: "solaris",
			info: &mockSysInfo{os: "solaris", arch: "amd64"},
			outputs: map[string]testutil.MockOutput{
				"uname -s": testutil.Ok("SunOS"),
				"uname -r": testutil.Ok("5.11"),
			},
			wantKernel:  "SunOS",
			wantRelease: "5.11",
			wantVersion: "5.11",
			wantMajor:   "5.11",
		},
		{
			name: "aix",
			info: &mockSysInfo{os: "aix", arch: "ppc64"},
			outputs: map[string]testutil.MockOutput{
				"/usr/bin/oslevel -s": testutil.Ok("\n7100-04-02-1614\n"),
			},
			wantKernel:  "AIX",
			wantRelease: "7100-04-02-1614",
			wantVersion: "7100",
			wantMajor:   "7100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &testutil.MockExecutor{Outputs: tt.outputs}
			facts := resolve(t, &KernelResolver{Exec: exec, Info: tt.info}, nil)

			assert.Equal(t, tt.wantKernel, facts.String("kernel"))
			assert.Equal(t, tt.wantRelease, facts.String("kernelrelease"))
			assert.Equal(t, tt.wantVersion, facts.String("kernelversion"))
			assert.Equal(t, tt.wantMajor, facts.String("kernelmajversion"))
		})
	}
}

func TestKernelResolverWindows(t *testing.T) {
	original := hostInfo
	defer func() { hostInfo = original }()
	hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{KernelVersion: "10.0.22631 Build 22631"}, nil
	}

	exec := &testutil.MockExecutor{}
	facts := resolve(t, &KernelResolver{Exec: exec, Info: &mockSysInfo{os: "windows", arch: "amd64"}}, nil)

	assert.Equal(t, "windows", facts.String("kernel"))
	assert.Equal(t, "10.0.22631 Build 22631", facts.String("kernelrelease"))
	assert.Empty(t, exec.Calls(), "windows kernel facts must not run commands")
}

func TestKernelResolverUnameMissing(t *testing.T) {
	r := &KernelResolver{Exec: &testutil.MockExecutor{}, Info: &mockSysInfo{os: "linux"}}

	assert.Error(t, r.Resolve(context.Background(), NewCollection()))
}

func TestKernelResolverExecutionError(t *testing.T) {
	exec := &testutil.MockExecutor{Outputs: map[string]testutil.MockOutput{
		"uname -s": {Err: &execution.ExecutionError{Msg: "failed to start child process"}},
	}}
	r := &KernelResolver{Exec: exec, Info: &mockSysInfo{os: "linux"}}

	var execErr *execution.ExecutionError
	assert.ErrorAs(t, r.Resolve(context.Background(), NewCollection()), &execErr)
}

func TestHardwareResolver(t *testing.T) {
	tests := []struct {
		name      string
		info      *mockSysInfo
		outputs   map[string]testutil.MockOutput
		wantModel string
		wantISA   string
	}{
		{
			name: "gnu uname reports unknown processor",
			info: &mockSysInfo{os: "linux", arch: "amd64"},
			outputs: map[string]testutil.MockOutput{
				"uname -m": testutil.Ok("x86_64"),
				"uname -p": testutil.Ok("unknown"),
			},
			wantModel: "x86_64",
			wantISA:   "x86_64",
		},
		{
			name: "solaris sparc",
			info: &mockSysInfo{os: "solaris", arch: "sparc64"},
			outputs: map[string]testutil.MockOutput{
				"uname -m": testutil.Ok("sun4v"),
				"uname -p": testutil.Ok("sparc"),
			},
			wantModel: "sun4v",
			wantISA:   "sparc",
		},
		{
			name:      "uname missing falls back to arch",
			info:      &mockSysInfo{os: "solaris", arch: "amd64"},
			wantModel: "x86_64",
			wantISA:   "i386",
		},
		{
			name:      "windows",
			info:      &mockSysInfo{os: "windows", arch: "amd64"},
			wantModel: "x64",
			wantISA:   "x64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &testutil.MockExecutor{Outputs: tt.outputs}
			facts := resolve(t, &HardwareResolver{Exec: exec, Info: tt.info}, nil)

			assert.Equal(t, tt.wantModel, facts.String("hardwaremodel"))
			assert.Equal(t, tt.wantISA, facts.String("hardwareisa"))
		})
	}
}

func withLinuxRelease(t *testing.T, d distroRelease) {
	t.Helper()
	original := linuxRelease
	t.Cleanup(func() { linuxRelease = original })
	linuxRelease = func() distroRelease { return d }
}

func kernelFacts(kernel, release, hardware string) *Collection {
	c := NewCollection()
	c.Add("kernel", kernel)
	c.Add("kernelrelease", release)
	c.Add("hardwaremodel", hardware)
	return c
}

func TestOSResolverUbuntu(t *testing.T) {
	withLinuxRelease(t, distroRelease{ID: "ubuntu", Release: "22.04"})
	exec := &testutil.MockExecutor{Outputs: map[string]testutil.MockOutput{
		"lsb_release -i -s": testutil.Ok("Ubuntu\n"),
		"lsb_release -r -s": testutil.Ok("22.04\n"),
		"lsb_release -d -s": testutil.Ok("\"Ubuntu 22.04.4 LTS\"\n"),
		"lsb_release -c -s": testutil.Ok("jammy\n"),
	}}

	facts := resolve(t, &OSResolver{Exec: exec, Info: &mockSysInfo{os: "linux"}},
		kernelFacts("Linux", "6.8.0-45-generic", "x86_64"))

	assert.Equal(t, "Ubuntu", facts.String("operatingsystem"))
	assert.Equal(t, "Debian", facts.String("osfamily"))
	assert.Equal(t, "22.04", facts.String("operatingsystemrelease"))
	assert.Equal(t, "22.04", facts.String("os.release.major"))
	assert.Equal(t, "amd64", facts.String("os.architecture"))
	assert.Equal(t, "x86_64", facts.String("os.hardware"))
	assert.Equal(t, "Ubuntu 22.04.4 LTS", facts.String("lsbdistdescription"))
	assert.Equal(t, "jammy", facts.String("os.distro.codename"))
	assert.Equal(t, "22", facts.String("lsbmajdistrelease"))
	assert.Equal(t, "04", facts.String("os.distro.release.minor"))
}

func TestOSResolverLinuxWithoutLSB(t *testing.T) {
	tests := []struct {
		name       string
		distro     distroRelease
		wantName   string
		wantFamily string
		wantMajor  string
		wantArch   string
	}{
		{"rhel", distroRelease{ID: "rhel", Release: "9.4"}, "RedHat", "RedHat", "9", "x86_64"},
		{"debian", distroRelease{ID: "debian", Release: "12.5"}, "Debian", "Debian", "12", "amd64"},
		{"opensuse", distroRelease{ID: "opensuse-leap", Release: "15.5"}, "OpenSuSE", "Suse", "15", "x86_64"},
		{"unknown distro", distroRelease{ID: "exotic"}, "Linux", "Linux", "", "x86_64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withLinuxRelease(t, tt.distro)
			exec := &testutil.MockExecutor{}

			facts := resolve(t, &OSResolver{Exec: exec, Info: &mockSysInfo{os: "linux"}},
				kernelFacts("Linux", "6.1.0", "x86_64"))

			assert.Equal(t, tt.wantName, facts.String("os.name"))
			assert.Equal(t, tt.wantFamily, facts.String("os.family"))
			assert.Equal(t, tt.wantMajor, facts.String("operatingsystemmajrelease"))
			assert.Equal(t, tt.wantArch, facts.String("architecture"))
			_, hasDistro := facts.Get("os.distro")
			assert.False(t, hasDistro)
			assert.True(t, exec.Called("lsb_release", "-i", "-s"))
		})
	}
}

func withAIXReleaseFile(t *testing.T, content string) {
	t.Helper()
	original := aixReleaseFile
	t.Cleanup(func() { aixReleaseFile = original })
	aixReleaseFile = filepath.Join(t.TempDir(), "aix_release.level")
	if content != "" {
		require.NoError(t, os.WriteFile(aixReleaseFile, []byte(content), 0o600))
	}
}

func TestOSResolverAIX(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantFull  string
		wantMajor string
		wantMinor string
	}{
		{"release level file", "7.1.0.0\n", "7.1.0.0", "7", "1.0.0"},
		{"release found on a later line", "\nbos 7.2.5.0\n", "7.2.5.0", "7", "2.5.0"},
		{"file missing uses kernel release", "", "7100-04-02-1614", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withAIXReleaseFile(t, tt.level)
			exec := &testutil.MockExecutor{Outputs: map[string]testutil.MockOutput{
				"/usr/sbin/lsattr -El proc0 -a type":      testutil.Ok("type PowerPC_POWER8 Processor type False\n"),
				"/usr/sbin/lsattr -El sys0 -a modelname": testutil.Ok("modelname IBM,8284-22A Machine name False\n"),
			}}

			facts := resolve(t, &OSResolver{Exec: exec, Info: &mockSysInfo{os: "aix"}},
				kernelFacts("AIX", "7100-04-02-1614", "IBM,8284-22A"))

			assert.Equal(t, "AIX", facts.String("os.name"))
			assert.Equal(t, "AIX", facts.String("os.family"))
			assert.Equal(t, "PowerPC_POWER8", facts.String("os.architecture"))
			assert.Equal(t, "IBM,8284-22A", facts.String("os.hardware"))
			assert.Equal(t, tt.wantFull, facts.String("os.release.full"))
			assert.Equal(t, tt.wantMajor, facts.String("os.release.major"))
			assert.Equal(t, tt.wantMinor, facts.String("os.release.minor"))
			assert.Equal(t, tt.wantFull, facts.String("operatingsystemrelease"))
			assert.Equal(t, tt.wantMajor, facts.String("operatingsystemmajrelease"))
		})
	}
}

func TestOSResolverSolaris(t *testing.T) {
	facts := resolve(t, &OSResolver{Exec: &testutil.MockExecutor{}, Info: &mockSysInfo{os: "solaris"}},
		kernelFacts("SunOS", "5.11", "sun4v"))

	assert.Equal(t, "Solaris", facts.String("operatingsystem"))
	assert.Equal(t, "Solaris", facts.String("osfamily"))
	assert.Equal(t, "5", facts.String("operatingsystemmajrelease"))
	assert.Equal(t, "11", facts.String("os.release.minor"))
}

func TestOSResolverWindows(t *testing.T) {
	original := platformInformation
	defer func() { platformInformation = original }()
	platformInformation = func(context.Context) (string, string, string, error) {
		return "Microsoft Windows 11 Pro", "Standalone Workstation", "10.0.22631 Build 22631", nil
	}

	facts := resolve(t, &OSResolver{Exec: &testutil.MockExecutor{}, Info: &mockSysInfo{os: "windows"}},
		kernelFacts("windows", "10.0.22631", "i686"))

	assert.Equal(t, "windows", facts.String("os.name"))
	assert.Equal(t, "windows", facts.String("os.family"))
	assert.Equal(t, "x86", facts.String("os.architecture"))
	assert.Equal(t, "10.0.22631 Build 22631", facts.String("os.release.full"))
}

func TestOSResolverWindowsPlatformError(t *testing.T) {
	original := platformInformation
	defer func() { platformInformation = original }()
	platformInformation = func(context.Context) (string, string, string, error) {
		return "", "", "", errors.New("wmi unavailable")
	}

	r := &OSResolver{Exec: &testutil.MockExecutor{}, Info: &mockSysInfo{os: "windows"}}
	assert.ErrorContains(t, r.Resolve(context.Background(), kernelFacts("windows", "", "x64")), "wmi unavailable")
}

func TestSplitRelease(t *testing.T) {
	tests := []struct {
		name, release, wantMajor, wantMinor string
	}{
		{"RedHat", "9.4", "9", "4"},
		{"Debian", "12", "12", ""},
		{"Ubuntu", "22.04", "22.04", ""},
		{"Ubuntu", "22.04.4", "22.04", "4"},
		{"Solaris", "5.11", "5", "11"},
		{"AIX", "7.1.0.0", "7", "1.0.0"},
		{"AIX", "7100-04-02-1614", "", ""},
		{"Linux", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name+" "+tt.release, func(t *testing.T) {
			major, minor := splitRelease(tt.name, tt.release)
			assert.Equal(t, tt.wantMajor, major)
			assert.Equal(t, tt.wantMinor, minor)
		})
	}
}

func TestVirtualizationResolverSolaris(t *testing.T) {
	tests := []struct {
		name        string
		isa         string
		outputs     map[string]testutil.MockOutput
		wantVirtual string
		wantIs      bool
	}{
		{
			name:        "non-global zone",
			isa:         "i386",
			outputs:     map[string]testutil.MockOutput{"/usr/bin/zonename": testutil.Ok("web01\n")},
			wantVirtual: "zone",
			wantIs:      true,
		},
		{
			name:        "zonename with empty output",
			isa:         "i386",
			outputs:     map[string]testutil.MockOutput{"/usr/bin/zonename": testutil.Ok("")},
			wantVirtual: "zone",
			wantIs:      true,
		},
		{
			name:        "zonename missing",
			isa:         "i386",
			wantVirtual: "physical",
			wantIs:      false,
		},
		{
			name: "vmware guest via prtdiag",
			isa:  "i386",
			outputs: map[string]testutil.MockOutput{
				"/usr/bin/zonename": testutil.Ok("global\n"),
				"/usr/sbin/prtdiag": testutil.Ok("System Configuration: VMware, Inc. VMware Virtual Platform\nBIOS Configuration: Phoenix\n"),
			},
			wantVirtual: "vmware",
			wantIs:      true,
		},
		{
			name: "xen hvm guest via prtdiag",
			isa:  "i386",
			outputs: map[string]testutil.MockOutput{
				"/usr/bin/zonename": testutil.Ok("global"),
				"/usr/sbin/prtdiag": testutil.Ok("System Configuration: Xen HVM domU\n"),
			},
			wantVirtual: "xenhvm",
			wantIs:      true,
		},
		{
			name: "prtdiag timeout keeps physical",
			isa:  "i386",
			outputs: map[string]testutil.MockOutput{
				"/usr/bin/zonename": testutil.Ok("global"),
				"/usr/sbin/prtdiag": {Output: "System Configuration: Oracle Corporation\n", Err: &execution.TimeoutError{Timeout: 20 * time.Second}},
			},
			wantVirtual: "physical",
			wantIs:      false,
		},
		{
			name: "ldom guest via virtinfo",
			isa:  "sparc",
			outputs: map[string]testutil.MockOutput{
				"/usr/bin/zonename":    testutil.Ok("global"),
				"/usr/sbin/virtinfo -a": testutil.Ok("Domain role: LDoms guest\n"),
			},
			wantVirtual: "ldom",
			wantIs:      true,
		},
		{
			name: "ldom root domain is physical",
			isa:  "sparc",
			outputs: map[string]testutil.MockOutput{
				"/usr/bin/zonename":    testutil.Ok("global"),
				"/usr/sbin/virtinfo -a": testutil.Ok("Domain role: LDoms control I/O service root\n"),
			},
			wantVirtual: "physical",
			wantIs:      false,
		},
		{
			name: "virtinfo outside global zone",
			isa:  "sparc",
			outputs: map[string]testutil.MockOutput{
				"/usr/bin/zonename":    testutil.Ok("global"),
				"/usr/sbin/virtinfo -a": testutil.Ok("virtinfo can only be run from the global zone\n"),
			},
			wantVirtual: "zone",
			wantIs:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := NewCollection()
			facts.Add("hardwareisa", tt.isa)
			exec := &testutil.MockExecutor{Outputs: tt.outputs}

			resolve(t, &VirtualizationResolver{Exec: exec, Info: &mockSysInfo{os: "solaris"}}, facts)

			assert.Equal(t, tt.wantVirtual, facts.String("virtual"))
			isVirtual, _ := facts.Get("is_virtual")
			assert.Equal(t, tt.wantIs, isVirtual)
		})
	}
}

func TestVirtualizationResolverPrtdiagTimeout(t *testing.T) {
	facts := NewCollection()
	facts.Add("hardwareisa", "i386")
	exec := &testutil.MockExecutor{Outputs: map[string]testutil.MockOutput{
		"/usr/bin/zonename": testutil.Ok("global"),
	}}

	resolve(t, &VirtualizationResolver{Exec: exec, Info: &mockSysInfo{os: "solaris"}}, facts)

	calls := exec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/usr/sbin/prtdiag", calls[1].File)
	assert.Equal(t, 20*time.Second, calls[1].Timeout)
}

func TestVirtualizationResolverDetected(t *testing.T) {
	tests := []struct {
		name        string
		system      string
		role        string
		err         error
		wantVirtual string
		wantIs      bool
	}{
		{"kvm guest", "kvm", "guest", nil, "kvm", true},
		{"xen guest", "xen", "guest", nil, "xenu", true},
		{"docker guest", "docker", "guest", nil, "docker", true},
		{"kvm host", "kvm", "host", nil, "physical", false},
		{"nothing detected", "", "", nil, "physical", false},
		{"detection error", "", "", errors.New("permission denied"), "physical", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := hostVirtualization
			defer func() { hostVirtualization = original }()
			hostVirtualization = func(context.Context) (string, string, error) {
				return tt.system, tt.role, tt.err
			}
			exec := &testutil.MockExecutor{}

			facts := resolve(t, &VirtualizationResolver{Exec: exec, Info: &mockSysInfo{os: "linux"}}, nil)

			assert.Equal(t, tt.wantVirtual, facts.String("virtual"))
			isVirtual, _ := facts.Get("is_virtual")
			assert.Equal(t, tt.wantIs, isVirtual)
			assert.Empty(t, exec.Calls())
		})
	}
}

const virtinfoParseable = `VERSION 1.0
DOMAINROLE|impl=LDoms|control=false|io=true|service=true|root=true
DOMAINNAME|name=primary
DOMAINUUID|uuid=8e0d6ec5-cd55-e57f-ae9f-b4cc050999a4
DOMAINCONTROL|name=san-t2k-6
DOMAINCHASSIS|serialno=0704RB0280
`

func TestLDomResolver(t *testing.T) {
	facts := NewCollection()
	facts.Add("hardwareisa", "sparc")
	exec := &testutil.MockExecutor{Outputs: map[string]testutil.MockOutput{
		"/usr/sbin/virtinfo -a -p": testutil.Ok(virtinfoParseable),
	}}

	resolve(t, &LDomResolver{Exec: exec}, facts)

	assert.Equal(t, "LDoms", facts.String("ldom_domainrole_impl"))
	assert.Equal(t, "false", facts.String("ldom_domainrole_control"))
	assert.Equal(t, "true", facts.String("ldom_domainrole_io"))
	assert.Equal(t, "true", facts.String("ldom_domainrole_service"))
	assert.Equal(t, "true", facts.String("ldom_domainrole_root"))
	assert.Equal(t, "primary", facts.String("ldom_domainname"))
	assert.Equal(t, "8e0d6ec5-cd55-e57f-ae9f-b4cc050999a4", facts.String("ldom_domainuuid"))
	assert.Equal(t, "san-t2k-6", facts.String("ldom_domaincontrol"))
	assert.Equal(t, "0704RB0280", facts.String("ldom_domainchassis"))

	assert.Equal(t, "primary", facts.String("ldom.name"))
	assert.Equal(t, "san-t2k-6", facts.String("ldom.control_name"))
	assert.Equal(t, "0704RB0280", facts.String("ldom.chassis_serial_number"))
	assert.Equal(t, "LDoms", facts.String("ldom.role.impl"))
	assert.Equal(t, "false", facts.String("ldom.role.control"))
}

func TestLDomResolverFirstMatchWins(t *testing.T) {
	exec := &testutil.MockExecutor{Outputs: map[string]testutil.MockOutput{
		"/usr/sbin/virtinfo -a -p": testutil.Ok("DOMAINNAME|name=first\nDOMAINNAME|name=second\n"),
	}}

	facts := resolve(t, &LDomResolver{Exec: exec}, nil)

	assert.Equal(t, "first", facts.String("ldom_domainname"))
	_, hasRole := facts.Get("ldom.role")
	assert.False(t, hasRole)
}

func TestLDomResolverSkipsOtherISA(t *testing.T) {
	facts := NewCollection()
	facts.Add("hardwareisa", "x86_64")
	exec := &testutil.MockExecutor{}

	resolve(t, &LDomResolver{Exec: exec}, facts)

	assert.Empty(t, exec.Calls())
	_, ok := facts.Get("ldom")
	assert.False(t, ok)
}

func TestLDomResolverVirtinfoMissing(t *testing.T) {
	facts := resolve(t, &LDomResolver{Exec: &testutil.MockExecutor{}}, nil)

	assert.Empty(t, facts.Names())
}

func TestUniqueIDResolver(t *testing.T) {
	tests := []struct {
		kernel   string
		outputs  map[string]testutil.MockOutput
		wantID   string
		wantUUID string
	}{
		{kernel: "SunOS", outputs: map[string]testutil.MockOutput{"hostid": testutil.Ok("8325f14e\n")}, wantID: "8325f14e"},
		{kernel: "Linux", outputs: map[string]testutil.MockOutput{"hostid": testutil.Ok("007f0101\n")}, wantID: "007f0101"},
		{kernel: "AIX", outputs: map[string]testutil.MockOutput{"hostid": testutil.Ok("0xac1f0a1b\n")}, wantID: "0xac1f0a1b"},
		{kernel: "GNU/kFreeBSD", outputs: map[string]testutil.MockOutput{"hostid": testutil.Ok("a8c00b01\n")}, wantID: "a8c00b01"},
		{
			kernel: "FreeBSD",
			outputs: map[string]testutil.MockOutput{
				"sysctl -n kern.hostid":   testutil.Ok("2376498765\n"),
				"sysctl -n kern.hostuuid": testutil.Ok("4c4c4544-0046-3510-8035-b4c04f4e4b31\n"),
			},
			wantID:   "2376498765",
			wantUUID: "4c4c4544-0046-3510-8035-b4c04f4e4b31",
		},
		{kernel: "windows", outputs: map[string]testutil.MockOutput{"hostid": testutil.Ok("ignored")}},
		{kernel: "Linux"},
	}

	for _, tt := range tests {
		t.Run(tt.kernel, func(t *testing.T) {
			facts := NewCollection()
			facts.Add("kernel", tt.kernel)
			exec := &testutil.MockExecutor{Outputs: tt.outputs}

			resolve(t, &UniqueIDResolver{Exec: exec}, facts)

			assert.Equal(t, tt.wantID, facts.String("uniqueid"))
			assert.Equal(t, tt.wantUUID, facts.String("hostuuid"))
		})
	}
}

func TestUniqueIDResolverSkipsOtherKernels(t *testing.T) {
	facts := NewCollection()
	facts.Add("kernel", "Darwin")
	exec := &testutil.MockExecutor{}

	resolve(t, &UniqueIDResolver{Exec: exec}, facts)

	assert.Empty(t, exec.Calls())
}
