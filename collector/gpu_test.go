package collector

import (
	"testing"

	"github.com/ftahirops/macsense/native/cf"
)

func TestGPUFromPropsAppleSilicon(t *testing.T) {
	accel := cf.Dict{
		"IOClass":        "AGXAcceleratorG13X",
		"model":          "Apple M1 Pro",
		"gpu-core-count": int64(16),
		"PerformanceStatistics": map[string]any{
			"Device Utilization %":   int64(37),
			"Renderer Utilization %": int64(35),
			"Tiler Utilization %":    int64(12),
			"In use system memory":   int64(512 << 20),
			"Alloc system memory":    int64(1 << 30),
		},
	}
	g := gpuFromProps(accel, cf.Dict{})
	if g.Model != "Apple M1 Pro" || g.CoreCount != 16 || !g.AppleSilicon || g.Vendor != "Apple" {
		t.Errorf("identity = %+v", g)
	}
	if !g.UtilizationSupported || g.DeviceUtilization != 37 || g.TilerUtilization != 12 {
		t.Errorf("utilization = %+v", g)
	}
	if g.InUseMemoryBytes != 512<<20 || g.AllocMemoryBytes != 1<<30 {
		t.Errorf("memory = %d/%d", g.InUseMemoryBytes, g.AllocMemoryBytes)
	}
	if g.VRAMTotalBytes != 0 || g.VRAMUsedPercent() != 0 {
		t.Errorf("unified memory GPU reported VRAM")
	}
}

func TestGPUFromPropsDiscrete(t *testing.T) {
	accel := cf.Dict{
		"IOClass": "AMDRadeonX6000_AMDNavi14GraphicsAccelerator",
		"PerformanceStatistics": map[string]any{
			"vramFreeBytes": int64(3 << 30),
		},
	}
	pci := cf.Dict{
		"model":        []byte("AMD Radeon Pro 5500M\x00"),
		"vendor-id":    []byte{0x02, 0x10, 0x00, 0x00},
		"VRAM,totalMB": int64(4096),
	}
	g := gpuFromProps(accel, pci)
	if g.Model != "AMD Radeon Pro 5500M" || g.Vendor != "AMD" || g.AppleSilicon {
		t.Errorf("identity = %+v", g)
	}
	if g.UtilizationSupported {
		t.Error("utilization should be unsupported without the key")
	}
	if g.VRAMTotalBytes != 4<<30 || g.VRAMUsedPercent() != 25 {
		t.Errorf("vram = %d used %.1f%%", g.VRAMTotalBytes, g.VRAMUsedPercent())
	}
}
