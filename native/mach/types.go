// Package mach reads Mach host statistics: virtual memory counters
// (host_statistics64 HOST_VM_INFO64) and per-processor tick counters
// (host_processor_info PROCESSOR_CPU_LOAD_INFO).
package mach

// VMStatistics64 mirrors struct vm_statistics64 from <mach/vm_statistics.h>.
// Field order and widths must match the C header exactly; the kernel fills
// HOST_VM_INFO64_COUNT 32-bit words of it.
type VMStatistics64 struct {
	FreeCount                          uint32
	ActiveCount                        uint32
	InactiveCount                      uint32
	WireCount                          uint32
	ZeroFillCount                      uint64
	Reactivations                      uint64
	Pageins                            uint64
	Pageouts                           uint64
	Faults                             uint64
	CowFaults                          uint64
	Lookups                            uint64
	Hits                               uint64
	Purges                             uint64
	PurgeableCount                     uint32
	SpeculativeCount                   uint32
	Decompressions                     uint64
	Compressions                       uint64
	Swapins                            uint64
	Swapouts                           uint64
	CompressorPageCount                uint32
	ThrottledCount                     uint32
	ExternalPageCount                  uint32
	InternalPageCount                  uint32
	TotalUncompressedPagesInCompressor uint64
}

// HostVMInfo64Count is HOST_VM_INFO64_COUNT: the struct size in 32-bit words.
const HostVMInfo64Count = 38

// CPU state indexes into cpu_ticks.
const (
	CPUStateUser   = 0
	CPUStateSystem = 1
	CPUStateIdle   = 2
	CPUStateNice   = 3
	CPUStateMax    = 4
)

// CPULoad is one processor's cpu_ticks array.
type CPULoad [CPUStateMax]uint32

// Flavors.
const (
	hostVMInfo64         = 4 // HOST_VM_INFO64
	processorCPULoadInfo = 2 // PROCESSOR_CPU_LOAD_INFO
)
