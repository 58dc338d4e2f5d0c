package model

import "github.com/ftahirops/macsense/util"

// Volume is a mounted filesystem.
type Volume struct {
	MountPoint  string `json:"mount_point"`
	Device      string `json:"device"`
	FSType      string `json:"fs_type"`
	TotalBytes  uint64 `json:"total_bytes"`
	FreeBytes   uint64 `json:"free_bytes"` // available to unprivileged users
	InodesTotal uint64 `json:"inodes_total"`
	InodesFree  uint64 `json:"inodes_free"`
}

// UsedBytes returns TotalBytes - FreeBytes, or 0 if the volume reports more
// free space than its size.
func (v Volume) UsedBytes() uint64 {
	return util.SafeSub(v.TotalBytes, v.FreeBytes)
}

// UsedPercent returns UsedBytes as a share of the total.
func (v Volume) UsedPercent() float64 {
	return util.PctU64(v.UsedBytes(), v.TotalBytes)
}

// InodesUsedPercent returns inode usage as a share of the inode total.
func (v Volume) InodesUsedPercent() float64 {
	return util.PctU64(util.SafeSub(v.InodesTotal, v.InodesFree), v.InodesTotal)
}

// DiskIO holds cumulative block storage driver statistics.
type DiskIO struct {
	BytesRead    uint64 `json:"bytes_read"`
	BytesWritten uint64 `json:"bytes_written"`
	Reads        uint64 `json:"reads"`
	Writes       uint64 `json:"writes"`
	ReadTimeNs   uint64 `json:"read_time_ns"`
	WriteTimeNs  uint64 `json:"write_time_ns"`
	ReadErrors   uint64 `json:"read_errors"`
	WriteErrors  uint64 `json:"write_errors"`
}

// DiskDevice is a physical (whole) disk.
type DiskDevice struct {
	BSDName      string `json:"bsd_name"` // "disk0"
	Model        string `json:"model"`
	Serial       string `json:"serial"`
	Revision     string `json:"revision"`
	Protocol     string `json:"protocol"` // "NVMe", "SATA", "USB", ...
	Medium       string `json:"medium"`   // "Solid State", "Rotational"
	SizeBytes    uint64 `json:"size_bytes"`
	Internal     bool   `json:"internal"`
	Removable    bool   `json:"removable"`
	SMARTCapable bool   `json:"smart_capable"`
	IO           DiskIO `json:"io"`
}

// Solid reports whether the device is flash based.
func (d DiskDevice) Solid() bool {
	return d.Medium == "Solid State"
}
