//go:build darwin

package collector

import (
	"os"
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ftahirops/macsense/model"
)

func readHost() (model.HostInfo, error) {
	h := model.HostInfo{
		OSName:        "macOS",
		OSVersion:     sysctlString("kern.osproductversion"),
		KernelRelease: sysctlString("kern.osrelease"),
		HardwareModel: sysctlString("hw.model"),
		Arch:          runtime.GOARCH,
	}
	h.Hostname, _ = os.Hostname()

	if tv, err := unix.SysctlTimeval("kern.boottime"); err == nil {
		sec, nsec := tv.Unix()
		h.BootTime = time.Unix(sec, nsec)
	}
	// Both nodes are absent on Intel machines.
	h.AppleSilicon = sysctlInt("hw.optional.arm64") == 1
	h.Translated = sysctlInt("sysctl.proc_translated") == 1
	if h.Translated {
		h.AppleSilicon = true
	}
	return h, nil
}
