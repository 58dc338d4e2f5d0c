//go:build !darwin

package collector

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"

	"github.com/ftahirops/macsense/model"
)

// clockTicks converts gopsutil's seconds back to scheduler ticks.
const clockTicks = 100

func readCPUStatic() model.CPUInfo {
	var c model.CPUInfo
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		c.Brand = infos[0].ModelName
		c.FrequencyHz = uint64(infos[0].Mhz * 1e6)
		c.FrequencySupported = c.FrequencyHz > 0
	}
	c.PhysicalCores, _ = cpu.Counts(false)
	c.LogicalCores, _ = cpu.Counts(true)
	return c
}

func readLoadAvg() (model.LoadAvg, error) {
	avg, err := load.Avg()
	if err != nil {
		return model.LoadAvg{}, err
	}
	return model.LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

func readCPUTicks() (model.CPUTicks, []model.CPUTicks, error) {
	times, err := cpu.Times(true)
	if err != nil {
		return model.CPUTicks{}, nil, err
	}
	var total model.CPUTicks
	per := make([]model.CPUTicks, len(times))
	for i, t := range times {
		per[i] = model.CPUTicks{
			User:   uint64(t.User * clockTicks),
			System: uint64((t.System + t.Irq + t.Softirq) * clockTicks),
			Idle:   uint64((t.Idle + t.Iowait) * clockTicks),
			Nice:   uint64(t.Nice * clockTicks),
		}
		total = total.Add(per[i])
	}
	return total, per, nil
}
