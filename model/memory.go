package model

import "github.com/ftahirops/macsense/util"

// MemoryInfo is a virtual memory snapshot built from HOST_VM_INFO64 page
// counts plus the sysctl totals.
type MemoryInfo struct {
	TotalBytes uint64 `json:"total_bytes"`
	PageSize   uint64 `json:"page_size"`

	FreePages        uint64 `json:"free_pages"`
	ActivePages      uint64 `json:"active_pages"`
	InactivePages    uint64 `json:"inactive_pages"`
	SpeculativePages uint64 `json:"speculative_pages"`
	WiredPages       uint64 `json:"wired_pages"`
	CompressedPages  uint64 `json:"compressed_pages"` // pages occupied by the compressor
	PurgeablePages   uint64 `json:"purgeable_pages"`
	ExternalPages    uint64 `json:"external_pages"` // file backed
	InternalPages    uint64 `json:"internal_pages"` // anonymous

	// Cumulative counters.
	Pageins        uint64 `json:"pageins"`
	Pageouts       uint64 `json:"pageouts"`
	Swapins        uint64 `json:"swapins"`
	Swapouts       uint64 `json:"swapouts"`
	Compressions   uint64 `json:"compressions"`
	Decompressions uint64 `json:"decompressions"`
	Faults         uint64 `json:"faults"`

	SwapTotalBytes uint64 `json:"swap_total_bytes"`
	SwapUsedBytes  uint64 `json:"swap_used_bytes"`
	SwapEncrypted  bool   `json:"swap_encrypted"`
}

func (m MemoryInfo) pages(n uint64) uint64 { return n * m.PageSize }

// AppBytes is anonymous memory not held by the purgeable pool, the figure
// Activity Monitor reports as "App Memory".
func (m MemoryInfo) AppBytes() uint64 {
	return m.pages(util.SafeSub(m.InternalPages, m.PurgeablePages))
}

// WiredBytes returns wired memory in bytes.
func (m MemoryInfo) WiredBytes() uint64 { return m.pages(m.WiredPages) }

// CompressedBytes returns memory occupied by the compressor.
func (m MemoryInfo) CompressedBytes() uint64 { return m.pages(m.CompressedPages) }

// CachedBytes returns file-backed plus purgeable memory.
func (m MemoryInfo) CachedBytes() uint64 {
	return m.pages(m.ExternalPages + m.PurgeablePages)
}

// UsedBytes is app + wired + compressed memory, capped at the total.
func (m MemoryInfo) UsedBytes() uint64 {
	used := m.AppBytes() + m.WiredBytes() + m.CompressedBytes()
	if used > m.TotalBytes {
		return m.TotalBytes
	}
	return used
}

// AvailableBytes is the remainder of the total after UsedBytes, so that
// UsedBytes()+AvailableBytes() == TotalBytes.
func (m MemoryInfo) AvailableBytes() uint64 {
	return m.TotalBytes - m.UsedBytes()
}

// FreeBytes returns pages on the free list.
func (m MemoryInfo) FreeBytes() uint64 { return m.pages(m.FreePages) }

// UsedPercent returns UsedBytes as a share of the total.
func (m MemoryInfo) UsedPercent() float64 {
	return util.PctU64(m.UsedBytes(), m.TotalBytes)
}

// SwapFreeBytes returns unused swap.
func (m MemoryInfo) SwapFreeBytes() uint64 {
	return util.SafeSub(m.SwapTotalBytes, m.SwapUsedBytes)
}

// SwapUsedPercent returns swap usage as a share of swap total.
func (m MemoryInfo) SwapUsedPercent() float64 {
	return util.PctU64(m.SwapUsedBytes, m.SwapTotalBytes)
}
