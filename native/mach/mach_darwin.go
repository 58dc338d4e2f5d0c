//go:build darwin

package mach

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/ftahirops/macsense/native/cf"
	"github.com/ftahirops/macsense/native/iokit"
)

const libSystemPath = "/usr/lib/libSystem.B.dylib"

var (
	loadOnce sync.Once
	loadErr  error

	machHostSelf      func() uint32
	hostStatistics64  func(host uint32, flavor int32, info unsafe.Pointer, count *uint32) int32
	hostProcessorInfo func(host uint32, flavor int32, cpus *uint32, info *uintptr, count *uint32) int32
	vmDeallocate      func(task uint32, addr uintptr, size uintptr) int32

	taskSelf uint32
	// hostPort is taken once; mach_host_self returns a new send right on
	// every call.
	hostPort uint32
)

func load() error {
	loadOnce.Do(func() {
		handle, err := purego.Dlopen(libSystemPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("dlopen libSystem: %w", err)
			return
		}
		loadErr = cf.Bind(handle, map[string]any{
			"mach_host_self":      &machHostSelf,
			"host_statistics64":   &hostStatistics64,
			"host_processor_info": &hostProcessorInfo,
			"vm_deallocate":       &vmDeallocate,
		})
		if loadErr != nil {
			return
		}
		sym, err := purego.Dlsym(handle, "mach_task_self_")
		if err != nil {
			loadErr = fmt.Errorf("dlsym mach_task_self_: %w", err)
			return
		}
		taskSelf = *(*uint32)(unsafe.Pointer(sym))
		hostPort = machHostSelf()
		if hostPort == 0 {
			loadErr = fmt.Errorf("mach_host_self: no host port")
		}
	})
	return loadErr
}

// HostVMInfo64 returns the host-wide virtual memory counters.
func HostVMInfo64() (VMStatistics64, error) {
	var vm VMStatistics64
	if err := load(); err != nil {
		return vm, err
	}
	count := uint32(HostVMInfo64Count)
	if err := iokit.Check("host_statistics64", hostStatistics64(hostPort, hostVMInfo64, unsafe.Pointer(&vm), &count)); err != nil {
		return vm, err
	}
	return vm, nil
}

// CPULoadInfo returns the tick counters of every processor. The kernel
// allocates the array in our address space; it is deallocated before
// returning.
func CPULoadInfo() ([]CPULoad, error) {
	if err := load(); err != nil {
		return nil, err
	}
	var ncpu, count uint32
	var info uintptr
	if err := iokit.Check("host_processor_info", hostProcessorInfo(hostPort, processorCPULoadInfo, &ncpu, &info, &count)); err != nil {
		return nil, err
	}
	defer vmDeallocate(taskSelf, info, uintptr(count)*4)

	if info == 0 || uintptr(count) < uintptr(ncpu)*CPUStateMax {
		return nil, fmt.Errorf("host_processor_info: short array (%d words for %d cpus)", count, ncpu)
	}
	src := unsafe.Slice((*CPULoad)(unsafe.Pointer(info)), int(ncpu))
	out := make([]CPULoad, len(src))
	copy(out, src)
	return out, nil
}
