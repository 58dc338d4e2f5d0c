package model

import "github.com/ftahirops/macsense/util"

// CPUTicks holds cumulative scheduler ticks for one core or the whole
// machine, in the order PROCESSOR_CPU_LOAD_INFO reports them.
type CPUTicks struct {
	User   uint64 `json:"user"`
	System uint64 `json:"system"`
	Idle   uint64 `json:"idle"`
	Nice   uint64 `json:"nice"`
}

// Total returns the sum of all tick counters.
func (t CPUTicks) Total() uint64 {
	return t.User + t.System + t.Idle + t.Nice
}

// Busy returns the non-idle ticks.
func (t CPUTicks) Busy() uint64 {
	return t.User + t.System + t.Nice
}

// Add returns the element-wise sum of two tick sets.
func (t CPUTicks) Add(o CPUTicks) CPUTicks {
	return CPUTicks{
		User:   t.User + o.User,
		System: t.System + o.System,
		Idle:   t.Idle + o.Idle,
		Nice:   t.Nice + o.Nice,
	}
}

// LoadAvg holds the 1/5/15 minute load averages.
type LoadAvg struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// CPUInfo is a CPU snapshot.
type CPUInfo struct {
	Brand           string `json:"brand"`
	PhysicalCores   int    `json:"physical_cores"`
	LogicalCores    int    `json:"logical_cores"`
	PerfCores       int    `json:"perf_cores"`       // Apple Silicon perflevel0
	EfficiencyCores int    `json:"efficiency_cores"` // Apple Silicon perflevel1
	L2CacheBytes    uint64 `json:"l2_cache_bytes"`
	L3CacheBytes    uint64 `json:"l3_cache_bytes"`

	// FrequencyHz is only reported by Intel machines.
	FrequencyHz        uint64 `json:"frequency_hz"`
	FrequencySupported bool   `json:"frequency_supported"`

	Load    LoadAvg    `json:"load"`
	Total   CPUTicks   `json:"total"`
	PerCore []CPUTicks `json:"per_core,omitempty"`
}

// IdlePctSinceBoot returns the idle share of all ticks accumulated since
// boot. Live usage needs two snapshots, see engine.ComputeRates.
func (c CPUInfo) IdlePctSinceBoot() float64 {
	return util.PctU64(c.Total.Idle, c.Total.Total())
}

// Heterogeneous reports whether the CPU has separate performance and
// efficiency clusters.
func (c CPUInfo) Heterogeneous() bool {
	return c.PerfCores > 0 && c.EfficiencyCores > 0
}
