package collector

import (
	"testing"

	"github.com/shirou/gopsutil/v4/disk"
)

func TestRealVolume(t *testing.T) {
	tests := []struct {
		part disk.PartitionStat
		want bool
	}{
		{disk.PartitionStat{Device: "/dev/disk3s1s1", Mountpoint: "/", Fstype: "apfs"}, true},
		{disk.PartitionStat{Device: "/dev/disk3s5", Mountpoint: "/System/Volumes/Data", Fstype: "apfs"}, true},
		{disk.PartitionStat{Device: "/dev/disk3s6", Mountpoint: "/System/Volumes/VM", Fstype: "apfs"}, false},
		{disk.PartitionStat{Device: "devfs", Mountpoint: "/dev", Fstype: "devfs"}, false},
		{disk.PartitionStat{Device: "map auto_home", Mountpoint: "/System/Volumes/Data/home", Fstype: "autofs"}, false},
		{disk.PartitionStat{Device: "//user@nas/share", Mountpoint: "/Volumes/share", Fstype: "smbfs"}, true},
		{disk.PartitionStat{Device: "nas:/export", Mountpoint: "/Volumes/nfs", Fstype: "nfs"}, true},
	}
	for _, tt := range tests {
		if got := realVolume(tt.part); got != tt.want {
			t.Errorf("realVolume(%s on %s) = %v, want %v", tt.part.Device, tt.part.Mountpoint, got, tt.want)
		}
	}
}

func TestVolumeFromUsage(t *testing.T) {
	p := disk.PartitionStat{Device: "/dev/disk3s1s1", Mountpoint: "/", Fstype: "apfs"}
	u := &disk.UsageStat{Total: 1000, Free: 250, InodesTotal: 100, InodesFree: 40}
	v, ok := volumeFromUsage(p, u)
	if !ok {
		t.Fatal("volume dropped")
	}
	if v.UsedBytes()+v.FreeBytes != v.TotalBytes {
		t.Errorf("used %d + free %d != total %d", v.UsedBytes(), v.FreeBytes, v.TotalBytes)
	}
	if v.UsedPercent() != 75 || v.InodesUsedPercent() != 60 {
		t.Errorf("used%% = %f inodes%% = %f", v.UsedPercent(), v.InodesUsedPercent())
	}
	if _, ok := volumeFromUsage(p, &disk.UsageStat{}); ok {
		t.Error("zero-sized volume kept")
	}
}
