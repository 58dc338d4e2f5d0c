package collector

import (
	"strings"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/ftahirops/macsense/model"
)

// pseudoFS lists filesystem types to skip (not real block-backed filesystems).
var pseudoFS = map[string]bool{
	"devfs": true, "autofs": true, "nullfs": true, "fdesc": true,
	"tmpfs": true, "proc": true, "sysfs": true, "cgroup2": true,
	"overlay": true, "squashfs": true,
}

// VolumeCollector statfs()es every mounted, block-backed filesystem.
type VolumeCollector struct{}

func (v *VolumeCollector) Name() string { return "volumes" }

func (v *VolumeCollector) Collect(snap *model.Snapshot) error {
	parts, err := disk.Partitions(false)
	if err != nil {
		return err
	}
	seen := make(map[string]bool)
	var vols []model.Volume
	for _, p := range parts {
		if !realVolume(p) || seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true
		u, err := disk.Usage(p.Mountpoint)
		if err != nil {
			// Unreadable mounts (permissions, stale network shares) are skipped.
			continue
		}
		if vol, ok := volumeFromUsage(p, u); ok {
			vols = append(vols, vol)
		}
	}
	snap.Volumes = vols
	return nil
}

func realVolume(p disk.PartitionStat) bool {
	if pseudoFS[p.Fstype] {
		return false
	}
	// The sealed system snapshot and its data-volume helpers are noise.
	if strings.HasPrefix(p.Mountpoint, "/System/Volumes/") && p.Mountpoint != "/System/Volumes/Data" {
		return false
	}
	return strings.HasPrefix(p.Device, "/dev/") || strings.Contains(p.Device, ":/") || strings.HasPrefix(p.Device, "//")
}

func volumeFromUsage(p disk.PartitionStat, u *disk.UsageStat) (model.Volume, bool) {
	if u == nil || u.Total == 0 {
		return model.Volume{}, false
	}
	return model.Volume{
		MountPoint:  p.Mountpoint,
		Device:      p.Device,
		FSType:      p.Fstype,
		TotalBytes:  u.Total,
		FreeBytes:   u.Free,
		InodesTotal: u.InodesTotal,
		InodesFree:  u.InodesFree,
	}, true
}
