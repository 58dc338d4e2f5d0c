package collector

import (
	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/mach"
)

// MemoryCollector reads page counts and swap usage.
type MemoryCollector struct{}

func (m *MemoryCollector) Name() string { return "memory" }

func (m *MemoryCollector) Collect(snap *model.Snapshot) error {
	info, err := readMemory()
	if err != nil {
		return err
	}
	snap.Memory = info
	return nil
}

// memoryFromVM combines HOST_VM_INFO64 counters with the sysctl totals.
func memoryFromVM(vm mach.VMStatistics64, total, pageSize uint64, swap swapUsage) model.MemoryInfo {
	return model.MemoryInfo{
		TotalBytes: total,
		PageSize:   pageSize,

		FreePages:        uint64(vm.FreeCount),
		ActivePages:      uint64(vm.ActiveCount),
		InactivePages:    uint64(vm.InactiveCount),
		SpeculativePages: uint64(vm.SpeculativeCount),
		WiredPages:       uint64(vm.WireCount),
		CompressedPages:  uint64(vm.CompressorPageCount),
		PurgeablePages:   uint64(vm.PurgeableCount),
		ExternalPages:    uint64(vm.ExternalPageCount),
		InternalPages:    uint64(vm.InternalPageCount),

		Pageins:        vm.Pageins,
		Pageouts:       vm.Pageouts,
		Swapins:        vm.Swapins,
		Swapouts:       vm.Swapouts,
		Compressions:   vm.Compressions,
		Decompressions: vm.Decompressions,
		Faults:         vm.Faults,

		SwapTotalBytes: swap.Total,
		SwapUsedBytes:  swap.Used,
		SwapEncrypted:  swap.Encrypted,
	}
}
