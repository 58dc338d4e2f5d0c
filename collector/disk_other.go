//go:build !darwin

package collector

import (
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/ftahirops/macsense/model"
)

func readDisks() ([]model.DiskDevice, error) {
	counters, err := disk.IOCounters()
	if err != nil {
		return nil, err
	}
	disks := make([]model.DiskDevice, 0, len(counters))
	for name, c := range counters {
		disks = append(disks, model.DiskDevice{
			BSDName: name,
			Serial:  c.SerialNumber,
			IO: model.DiskIO{
				BytesRead:    c.ReadBytes,
				BytesWritten: c.WriteBytes,
				Reads:        c.ReadCount,
				Writes:       c.WriteCount,
				ReadTimeNs:   c.ReadTime * 1e6,
				WriteTimeNs:  c.WriteTime * 1e6,
			},
		})
	}
	return disks, nil
}
