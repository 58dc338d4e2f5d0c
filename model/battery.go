package model

import "github.com/ftahirops/macsense/util"

// BatteryInfo is an AppleSmartBattery snapshot. Present is false on
// machines without an internal battery; all other fields are then zero.
type BatteryInfo struct {
	Present bool `json:"present"`

	// CurrentCapacity/MaxCapacity are percentages on Apple Silicon and
	// mAh on Intel; the Raw fields are always mAh.
	CurrentCapacity    int `json:"current_capacity"`
	MaxCapacity        int `json:"max_capacity"`
	RawCurrentCapacity int `json:"raw_current_capacity"`
	RawMaxCapacity     int `json:"raw_max_capacity"`
	DesignCapacity     int `json:"design_capacity"`
	NominalCapacity    int `json:"nominal_capacity"`
	CycleCount         int `json:"cycle_count"`
	DesignCycleCount   int `json:"design_cycle_count"`

	VoltageMV        int `json:"voltage_mv"`
	AmperageMA       int `json:"amperage_ma"`       // negative while discharging
	TemperatureCenti int `json:"temperature_centi"` // hundredths of °C

	IsCharging        bool `json:"is_charging"`
	ExternalConnected bool `json:"external_connected"`
	FullyCharged      bool `json:"fully_charged"`

	TimeToEmptyMin int `json:"time_to_empty_min"` // -1 when unknown
	TimeToFullMin  int `json:"time_to_full_min"`

	Serial       string `json:"serial,omitempty"`
	DeviceName   string `json:"device_name,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

// ChargePercent returns the state of charge.
func (b BatteryInfo) ChargePercent() float64 {
	if b.RawMaxCapacity > 0 && b.RawCurrentCapacity > 0 {
		return util.Pct(float64(b.RawCurrentCapacity), float64(b.RawMaxCapacity))
	}
	return util.Pct(float64(b.CurrentCapacity), float64(b.MaxCapacity))
}

// HealthPercent returns full-charge capacity relative to design capacity.
func (b BatteryInfo) HealthPercent() float64 {
	full := b.RawMaxCapacity
	if full == 0 {
		full = b.NominalCapacity
	}
	return util.Pct(float64(full), float64(b.DesignCapacity))
}

// VoltageVolts returns the pack voltage.
func (b BatteryInfo) VoltageVolts() float64 {
	return float64(b.VoltageMV) / 1000
}

// CurrentAmps returns the signed pack current.
func (b BatteryInfo) CurrentAmps() float64 {
	return float64(b.AmperageMA) / 1000
}

// PowerWatts returns the signed power flow; negative while discharging.
func (b BatteryInfo) PowerWatts() float64 {
	return b.VoltageVolts() * b.CurrentAmps()
}

// TemperatureCelsius returns the pack temperature.
func (b BatteryInfo) TemperatureCelsius() float64 {
	return float64(b.TemperatureCenti) / 100
}
