package model

import "time"

// SMARTKind distinguishes the two SMART wire formats.
type SMARTKind string

const (
	SMARTNVMe SMARTKind = "nvme"
	SMARTATA  SMARTKind = "ata"
)

// SMARTLog is one read of a disk's SMART data.
type SMARTLog struct {
	Device     string      `json:"device"`
	Kind       SMARTKind   `json:"kind"`
	CapturedAt time.Time   `json:"captured_at"`
	Raw        []byte      `json:"raw,omitempty"`
	NVMe       *NVMeHealth `json:"nvme,omitempty"`
	ATA        *ATAHealth  `json:"ata,omitempty"`
}

// Healthy reports the overall verdict for either format.
func (l SMARTLog) Healthy() bool {
	switch {
	case l.NVMe != nil:
		return l.NVMe.Healthy()
	case l.ATA != nil:
		return l.ATA.Healthy()
	}
	return false
}

// TemperatureCelsius returns the drive temperature, or 0 if unreported.
func (l SMARTLog) TemperatureCelsius() float64 {
	switch {
	case l.NVMe != nil:
		return l.NVMe.TemperatureCelsius()
	case l.ATA != nil:
		return float64(l.ATA.TemperatureCelsius())
	}
	return 0
}

// NVMe critical warning bits (log page 02h, byte 0).
const (
	NVMeWarnSpare       uint8 = 1 << 0
	NVMeWarnTemperature uint8 = 1 << 1
	NVMeWarnReliability uint8 = 1 << 2
	NVMeWarnReadOnly    uint8 = 1 << 3
	NVMeWarnVolatile    uint8 = 1 << 4
	NVMeWarnPMR         uint8 = 1 << 5
)

var nvmeWarnNames = []struct {
	bit  uint8
	name string
}{
	{NVMeWarnSpare, "spare below threshold"},
	{NVMeWarnTemperature, "temperature"},
	{NVMeWarnReliability, "reliability degraded"},
	{NVMeWarnReadOnly, "read-only"},
	{NVMeWarnVolatile, "volatile backup failed"},
	{NVMeWarnPMR, "PMR read-only"},
}

// NVMeHealth is the decoded NVMe SMART / Health Information log.
type NVMeHealth struct {
	CriticalWarning     uint8     `json:"critical_warning"`
	CompositeTempKelvin uint16    `json:"composite_temp_kelvin"`
	AvailableSparePct   uint8     `json:"available_spare_pct"`
	SpareThresholdPct   uint8     `json:"spare_threshold_pct"`
	PercentageUsed      uint8     `json:"percentage_used"`
	DataUnitsRead       uint64    `json:"data_units_read"` // units of 1000 × 512 bytes
	DataUnitsWritten    uint64    `json:"data_units_written"`
	HostReadCommands    uint64    `json:"host_read_commands"`
	HostWriteCommands   uint64    `json:"host_write_commands"`
	ControllerBusyMin   uint64    `json:"controller_busy_min"`
	PowerCycles         uint64    `json:"power_cycles"`
	PowerOnHours        uint64    `json:"power_on_hours"`
	UnsafeShutdowns     uint64    `json:"unsafe_shutdowns"`
	MediaErrors         uint64    `json:"media_errors"`
	ErrorLogEntries     uint64    `json:"error_log_entries"`
	WarningTempMinutes  uint32    `json:"warning_temp_minutes"`
	CriticalTempMinutes uint32    `json:"critical_temp_minutes"`
	SensorKelvin        [8]uint16 `json:"sensor_kelvin"` // 0 = not implemented
}

// NVMeDataUnitBytes is the size of one NVMe data unit.
const NVMeDataUnitBytes = 512 * 1000

func kelvinToCelsius(k uint16) float64 {
	if k == 0 {
		return 0
	}
	return float64(k) - 273.15
}

// TemperatureCelsius converts the composite temperature.
func (h NVMeHealth) TemperatureCelsius() float64 {
	return kelvinToCelsius(h.CompositeTempKelvin)
}

// SensorCelsius returns the implemented temperature sensors, keyed by
// their 1-based sensor number.
func (h NVMeHealth) SensorCelsius() map[int]float64 {
	out := make(map[int]float64)
	for i, k := range h.SensorKelvin {
		if k != 0 {
			out[i+1] = kelvinToCelsius(k)
		}
	}
	return out
}

// BytesRead converts data units to bytes, saturating on overflow.
func (h NVMeHealth) BytesRead() uint64 { return unitsToBytes(h.DataUnitsRead) }

// BytesWritten converts data units to bytes, saturating on overflow.
func (h NVMeHealth) BytesWritten() uint64 { return unitsToBytes(h.DataUnitsWritten) }

func unitsToBytes(units uint64) uint64 {
	if units > ^uint64(0)/NVMeDataUnitBytes {
		return ^uint64(0)
	}
	return units * NVMeDataUnitBytes
}

// Warnings names the critical warning bits that are set.
func (h NVMeHealth) Warnings() []string {
	var out []string
	for _, w := range nvmeWarnNames {
		if h.CriticalWarning&w.bit != 0 {
			out = append(out, w.name)
		}
	}
	return out
}

// Healthy is true when no critical warning bit is set.
func (h NVMeHealth) Healthy() bool { return h.CriticalWarning == 0 }

// LifeRemainingPct returns 100 - percentage used, floored at 0. Drives
// may report more than 100% used.
func (h NVMeHealth) LifeRemainingPct() int {
	if h.PercentageUsed >= 100 {
		return 0
	}
	return 100 - int(h.PercentageUsed)
}

// ATAAttribute is one entry of the ATA SMART attribute table.
type ATAAttribute struct {
	ID        uint8  `json:"id"`
	Name      string `json:"name"`
	Flags     uint16 `json:"flags"`
	Current   uint8  `json:"current"`
	Worst     uint8  `json:"worst"`
	Threshold uint8  `json:"threshold"`
	Raw       uint64 `json:"raw"` // 48-bit little-endian raw value
}

// Prefailure reports whether the attribute is flagged pre-failure.
func (a ATAAttribute) Prefailure() bool { return a.Flags&0x1 != 0 }

// Failing reports whether a pre-failure attribute is at or below its
// threshold. A zero threshold never fails.
func (a ATAAttribute) Failing() bool {
	return a.Prefailure() && a.Threshold != 0 && a.Current != 0 && a.Current <= a.Threshold
}

// ATAHealth is the decoded ATA SMART data structure.
type ATAHealth struct {
	Revision        uint16         `json:"revision"`
	Attributes      []ATAAttribute `json:"attributes"`
	OfflineStatus   uint8          `json:"offline_status"`
	SelfTestStatus  uint8          `json:"self_test_status"`
	ChecksumValid   bool           `json:"checksum_valid"`
	ThresholdsKnown bool           `json:"thresholds_known"`
}

// Attribute looks up an attribute by id.
func (h ATAHealth) Attribute(id uint8) (ATAAttribute, bool) {
	for _, a := range h.Attributes {
		if a.ID == id {
			return a, true
		}
	}
	return ATAAttribute{}, false
}

// TemperatureCelsius reads attribute 194, falling back to 190. Only the
// low raw byte carries the current temperature.
func (h ATAHealth) TemperatureCelsius() int {
	for _, id := range []uint8{194, 190} {
		if a, ok := h.Attribute(id); ok {
			return int(a.Raw & 0xff)
		}
	}
	return 0
}

// PowerOnHours reads attribute 9.
func (h ATAHealth) PowerOnHours() uint64 {
	a, _ := h.Attribute(9)
	return a.Raw & 0xffffffff
}

// ReallocatedSectors reads attribute 5.
func (h ATAHealth) ReallocatedSectors() uint64 {
	a, _ := h.Attribute(5)
	return a.Raw & 0xffffffff
}

// PendingSectors reads attribute 197.
func (h ATAHealth) PendingSectors() uint64 {
	a, _ := h.Attribute(197)
	return a.Raw & 0xffffffff
}

// Healthy is false when any pre-failure attribute crossed its threshold.
func (h ATAHealth) Healthy() bool {
	for _, a := range h.Attributes {
		if a.Failing() {
			return false
		}
	}
	return true
}
