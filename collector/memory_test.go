package collector

import (
	"testing"

	"github.com/ftahirops/macsense/native/mach"
)

func TestMemoryFromVM(t *testing.T) {
	const page = 16384
	vm := mach.VMStatistics64{
		FreeCount:           10000,
		ActiveCount:         200000,
		InactiveCount:       190000,
		WireCount:           150000,
		PurgeableCount:      5000,
		SpeculativeCount:    3000,
		CompressorPageCount: 60000,
		ExternalPageCount:   120000,
		InternalPageCount:   250000,
		Pageins:             900,
		Swapouts:            7,
	}
	total := uint64(16 << 30)
	info := memoryFromVM(vm, total, page, swapUsage{Total: 1 << 30, Used: 1 << 29, Encrypted: true})

	if info.WiredBytes() != 150000*page {
		t.Errorf("wired = %d", info.WiredBytes())
	}
	if info.AppBytes() != (250000-5000)*page {
		t.Errorf("app = %d", info.AppBytes())
	}
	if info.UsedBytes()+info.AvailableBytes() != total {
		t.Errorf("used %d + available %d != total %d", info.UsedBytes(), info.AvailableBytes(), total)
	}
	if info.Pageins != 900 || info.Swapouts != 7 {
		t.Errorf("counters = %d/%d", info.Pageins, info.Swapouts)
	}
	if !info.SwapEncrypted || info.SwapUsedPercent() != 50 {
		t.Errorf("swap = %+v", info)
	}
}

func TestMemoryUsedCappedAtTotal(t *testing.T) {
	vm := mach.VMStatistics64{WireCount: 1000, InternalPageCount: 1000}
	info := memoryFromVM(vm, 4096*1500, 4096, swapUsage{})
	if info.UsedBytes() != info.TotalBytes {
		t.Errorf("used = %d, want capped at %d", info.UsedBytes(), info.TotalBytes)
	}
	if info.AvailableBytes() != 0 {
		t.Errorf("available = %d, want 0", info.AvailableBytes())
	}
}
