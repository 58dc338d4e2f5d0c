//go:build !darwin

package collector

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ftahirops/macsense/model"
)

func readHost() (model.HostInfo, error) {
	info, err := host.Info()
	if err != nil {
		return model.HostInfo{Arch: runtime.GOARCH}, err
	}
	return model.HostInfo{
		Hostname:      info.Hostname,
		OSName:        info.Platform,
		OSVersion:     info.PlatformVersion,
		KernelRelease: info.KernelVersion,
		Arch:          runtime.GOARCH,
		BootTime:      time.Unix(int64(info.BootTime), 0),
	}, nil
}
