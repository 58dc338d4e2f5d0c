//go:build !darwin

package collector

import (
	"os"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/ftahirops/macsense/model"
)

// readMemory maps gopsutil byte totals onto page counts so the derived
// figures behave as on macOS.
func readMemory() (model.MemoryInfo, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return model.MemoryInfo{}, err
	}
	page := uint64(os.Getpagesize())
	info := model.MemoryInfo{
		TotalBytes:    vm.Total,
		PageSize:      page,
		FreePages:     vm.Free / page,
		ActivePages:   vm.Active / page,
		InactivePages: vm.Inactive / page,
		WiredPages:    vm.Wired / page,
		ExternalPages: (vm.Cached + vm.Buffers) / page,
		InternalPages: vm.Used / page,
	}
	if sw, err := mem.SwapMemory(); err == nil {
		info.SwapTotalBytes = sw.Total
		info.SwapUsedBytes = sw.Used
		info.Swapins = sw.Sin / page
		info.Swapouts = sw.Sout / page
		info.Pageins = sw.PgIn
		info.Pageouts = sw.PgOut
		info.Faults = sw.PgFault
	}
	return info, nil
}
