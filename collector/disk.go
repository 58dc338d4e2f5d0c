package collector

import (
	"sort"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/cf"
)

// DiskCollector reads whole-disk identity and cumulative IO statistics.
type DiskCollector struct{}

func (d *DiskCollector) Name() string { return "disks" }

func (d *DiskCollector) Collect(snap *model.Snapshot) error {
	disks, err := readDisks()
	if err != nil {
		return err
	}
	sort.Slice(disks, func(i, j int) bool { return disks[i].BSDName < disks[j].BSDName })
	snap.Disks = disks
	return nil
}

// diskFromProps builds a device from the property tables of the whole
// IOMedia, the IOBlockStorageDriver above it and the storage device
// above that.
func diskFromProps(media, driver, device cf.Dict) model.DiskDevice {
	chars := device.Dict("Device Characteristics")
	proto := device.Dict("Protocol Characteristics")
	stats := driver.Dict("Statistics")

	d := model.DiskDevice{
		BSDName:      media.String("BSD Name"),
		Model:        chars.String("Product Name"),
		Serial:       chars.String("Serial Number"),
		Revision:     chars.String("Product Revision Level"),
		Protocol:     proto.String("Physical Interconnect"),
		Medium:       chars.String("Medium Type"),
		SizeBytes:    media.Uint("Size"),
		Internal:     proto.String("Physical Interconnect Location") == "Internal",
		Removable:    media.Bool("Removable") || media.Bool("Ejectable"),
		SMARTCapable: device.Bool("NVMe SMART Capable") || device.Bool("SMART Capable"),
		IO: model.DiskIO{
			BytesRead:    stats.Uint("Bytes (Read)"),
			BytesWritten: stats.Uint("Bytes (Write)"),
			Reads:        stats.Uint("Operations (Read)"),
			Writes:       stats.Uint("Operations (Write)"),
			ReadTimeNs:   stats.Uint("Total Time (Read)"),
			WriteTimeNs:  stats.Uint("Total Time (Write)"),
			ReadErrors:   stats.Uint("Errors (Read)"),
			WriteErrors:  stats.Uint("Errors (Write)"),
		},
	}
	if d.Model == "" {
		d.Model = trimSpaces(chars.String("Vendor Name") + " " + device.String("Model"))
	}
	return d
}

func trimSpaces(s string) string {
	start, end := 0, len(s)
	for start < end && s[start] == ' ' {
		start++
	}
	for end > start && s[end-1] == ' ' {
		end--
	}
	return s[start:end]
}
