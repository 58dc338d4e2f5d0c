//go:build darwin

package collector

import (
	"golang.org/x/sys/unix"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/mach"
)

func readCPUStatic() model.CPUInfo {
	c := model.CPUInfo{
		Brand:           sysctlString("machdep.cpu.brand_string"),
		PhysicalCores:   sysctlInt("hw.physicalcpu"),
		LogicalCores:    sysctlInt("hw.logicalcpu"),
		PerfCores:       sysctlInt("hw.perflevel0.physicalcpu"),
		EfficiencyCores: sysctlInt("hw.perflevel1.physicalcpu"),
	}
	c.L2CacheBytes, _ = sysctlUint("hw.l2cachesize")
	c.L3CacheBytes, _ = sysctlUint("hw.l3cachesize")
	// Apple Silicon does not publish a nominal frequency.
	if hz, err := sysctlUint("hw.cpufrequency"); err == nil && hz > 0 {
		c.FrequencyHz = hz
		c.FrequencySupported = true
	}
	return c
}

func readLoadAvg() (model.LoadAvg, error) {
	b, err := unix.SysctlRaw("vm.loadavg")
	if err != nil {
		return model.LoadAvg{}, err
	}
	return decodeLoadAvg(b)
}

func readCPUTicks() (model.CPUTicks, []model.CPUTicks, error) {
	loads, err := mach.CPULoadInfo()
	if err != nil {
		return model.CPUTicks{}, nil, err
	}
	total, per := ticksFromLoads(loads)
	return total, per, nil
}
