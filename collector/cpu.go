package collector

import (
	"sync"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/mach"
)

// CPUCollector reads CPU identity once and tick counters plus load
// averages on every tick.
type CPUCollector struct {
	once   sync.Once
	static model.CPUInfo
}

func (c *CPUCollector) Name() string { return "cpu" }

func (c *CPUCollector) Collect(snap *model.Snapshot) error {
	c.once.Do(func() {
		c.static = readCPUStatic()
	})
	info := c.static

	load, err := readLoadAvg()
	if err != nil {
		return err
	}
	info.Load = load

	total, perCore, err := readCPUTicks()
	if err != nil {
		return err
	}
	info.Total = total
	info.PerCore = perCore
	if info.LogicalCores == 0 {
		info.LogicalCores = len(perCore)
	}
	snap.CPU = info
	return nil
}

// ticksFromLoads converts per-processor cpu_ticks into per-core and summed
// counters.
func ticksFromLoads(loads []mach.CPULoad) (model.CPUTicks, []model.CPUTicks) {
	var total model.CPUTicks
	per := make([]model.CPUTicks, len(loads))
	for i, l := range loads {
		per[i] = model.CPUTicks{
			User:   uint64(l[mach.CPUStateUser]),
			System: uint64(l[mach.CPUStateSystem]),
			Idle:   uint64(l[mach.CPUStateIdle]),
			Nice:   uint64(l[mach.CPUStateNice]),
		}
		total = total.Add(per[i])
	}
	return total, per
}
