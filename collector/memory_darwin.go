//go:build darwin

package collector

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/mach"
)

func readMemory() (model.MemoryInfo, error) {
	total, err := sysctlUint("hw.memsize")
	if err != nil {
		return model.MemoryInfo{}, fmt.Errorf("hw.memsize: %w", err)
	}
	pageSize, err := sysctlUint("hw.pagesize")
	if err != nil {
		return model.MemoryInfo{}, fmt.Errorf("hw.pagesize: %w", err)
	}
	vm, err := mach.HostVMInfo64()
	if err != nil {
		return model.MemoryInfo{}, err
	}
	var swap swapUsage
	if b, err := unix.SysctlRaw("vm.swapusage"); err == nil {
		swap, _ = decodeSwapUsage(b)
	}
	return memoryFromVM(vm, total, pageSize, swap), nil
}
