package collector

import (
	"strings"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/cf"
)

// GPUCollector reads graphics accelerators and their utilization.
type GPUCollector struct{}

func (g *GPUCollector) Name() string { return "gpu" }

func (g *GPUCollector) Collect(snap *model.Snapshot) error {
	gpus, err := readGPUs()
	if err != nil {
		return err
	}
	snap.GPUs = gpus
	return nil
}

var pciVendors = map[uint64]string{
	0x106b: "Apple",
	0x1002: "AMD",
	0x8086: "Intel",
	0x10de: "NVIDIA",
}

// gpuFromProps decodes an IOAccelerator entry. pci holds the properties
// of the IOPCIDevice above it and is empty on Apple Silicon.
func gpuFromProps(accel, pci cf.Dict) model.GPUInfo {
	g := model.GPUInfo{
		Model:     accel.String("model"),
		IOClass:   accel.String("IOClass"),
		CoreCount: int(accel.Int("gpu-core-count")),
	}
	if g.Model == "" {
		g.Model = pci.String("model")
	}
	vendor := pci.Uint("vendor-id")
	if vendor == 0 {
		vendor = accel.Uint("vendor-id")
	}
	g.Vendor = pciVendors[vendor]
	g.AppleSilicon = strings.HasPrefix(g.IOClass, "AGX") || (vendor == 0 && strings.HasPrefix(g.Model, "Apple"))
	if g.Vendor == "" && g.AppleSilicon {
		g.Vendor = "Apple"
	}

	stats := accel.Dict("PerformanceStatistics")
	if stats.Has("Device Utilization %") {
		g.UtilizationSupported = true
		g.DeviceUtilization = stats.Float("Device Utilization %")
		g.RendererUtilization = stats.Float("Renderer Utilization %")
		g.TilerUtilization = stats.Float("Tiler Utilization %")
	}
	g.InUseMemoryBytes = stats.Uint("In use system memory")
	g.AllocMemoryBytes = stats.Uint("Alloc system memory")

	if mb := pci.Uint("VRAM,totalMB"); mb > 0 {
		g.VRAMTotalBytes = mb << 20
		g.VRAMFreeBytes = stats.Uint("vramFreeBytes")
		if used := stats.Uint("vramUsedBytes"); used > 0 && g.VRAMFreeBytes == 0 && used <= g.VRAMTotalBytes {
			g.VRAMFreeBytes = g.VRAMTotalBytes - used
		}
	}
	return g
}
