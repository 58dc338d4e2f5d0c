package mach

import (
	"testing"
	"unsafe"
)

func TestVMStatistics64Layout(t *testing.T) {
	size := unsafe.Sizeof(VMStatistics64{})
	if size != HostVMInfo64Count*4 {
		t.Fatalf("sizeof(VMStatistics64) = %d; want %d", size, HostVMInfo64Count*4)
	}
	var v VMStatistics64
	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"zero_fill_count", unsafe.Offsetof(v.ZeroFillCount), 16},
		{"purgeable_count", unsafe.Offsetof(v.PurgeableCount), 88},
		{"decompressions", unsafe.Offsetof(v.Decompressions), 96},
		{"compressor_page_count", unsafe.Offsetof(v.CompressorPageCount), 128},
		{"total_uncompressed_pages_in_compressor", unsafe.Offsetof(v.TotalUncompressedPagesInCompressor), 144},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offset of %s = %d; want %d", o.name, o.got, o.want)
		}
	}
}

func TestCPULoadSize(t *testing.T) {
	if got := unsafe.Sizeof(CPULoad{}); got != 16 {
		t.Fatalf("sizeof(CPULoad) = %d; want 16", got)
	}
}
