package model

import "github.com/ftahirops/macsense/util"

// GPUInfo is one graphics accelerator. Utilization figures come from the
// accelerator's PerformanceStatistics and are only published by Apple
// Silicon and some discrete GPUs; UtilizationSupported tells which.
type GPUInfo struct {
	Model        string `json:"model"`
	IOClass      string `json:"io_class"`
	Vendor       string `json:"vendor"`
	CoreCount    int    `json:"core_count"`
	AppleSilicon bool   `json:"apple_silicon"`

	UtilizationSupported bool    `json:"utilization_supported"`
	DeviceUtilization    float64 `json:"device_utilization"`
	RendererUtilization  float64 `json:"renderer_utilization"`
	TilerUtilization     float64 `json:"tiler_utilization"`

	InUseMemoryBytes uint64 `json:"in_use_memory_bytes"`
	AllocMemoryBytes uint64 `json:"alloc_memory_bytes"`
	VRAMTotalBytes   uint64 `json:"vram_total_bytes"` // discrete GPUs only
	VRAMFreeBytes    uint64 `json:"vram_free_bytes"`
}

// VRAMUsedPercent returns VRAM usage on discrete GPUs, 0 otherwise.
func (g GPUInfo) VRAMUsedPercent() float64 {
	return util.PctU64(util.SafeSub(g.VRAMTotalBytes, g.VRAMFreeBytes), g.VRAMTotalBytes)
}
