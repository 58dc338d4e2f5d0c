package model

import "github.com/ftahirops/macsense/util"

// SensorKind groups SMC keys by what they measure.
type SensorKind string

const (
	SensorTemperature SensorKind = "temperature"
	SensorVoltage     SensorKind = "voltage"
	SensorCurrent     SensorKind = "current"
	SensorPower       SensorKind = "power"
	SensorFan         SensorKind = "fan"
	SensorOther       SensorKind = "other"
)

// Unit returns the display unit for the kind.
func (k SensorKind) Unit() string {
	switch k {
	case SensorTemperature:
		return "°C"
	case SensorVoltage:
		return "V"
	case SensorCurrent:
		return "A"
	case SensorPower:
		return "W"
	case SensorFan:
		return "rpm"
	}
	return ""
}

// SMCSensor is one decoded SMC key.
type SMCSensor struct {
	Key         string     `json:"key"`
	DataType    string     `json:"data_type"`
	Kind        SensorKind `json:"kind"`
	Value       float64    `json:"value"`
	Description string     `json:"description,omitempty"`
}

// FanInfo describes one fan.
type FanInfo struct {
	Index     int     `json:"index"`
	ActualRPM float64 `json:"actual_rpm"`
	MinRPM    float64 `json:"min_rpm"`
	MaxRPM    float64 `json:"max_rpm"`
	TargetRPM float64 `json:"target_rpm"`
	Forced    bool    `json:"forced"`
}

// Percent returns the fan speed within its min..max range.
func (f FanInfo) Percent() float64 {
	if f.MaxRPM <= f.MinRPM {
		return 0
	}
	return util.Pct(f.ActualRPM-f.MinRPM, f.MaxRPM-f.MinRPM)
}

// SensorReadings is the SMC section of a snapshot.
type SensorReadings struct {
	Supported bool        `json:"supported"`
	Sensors   []SMCSensor `json:"sensors,omitempty"`
	Fans      []FanInfo   `json:"fans,omitempty"`
}

// ByKind returns the sensors of one kind in snapshot order.
func (s SensorReadings) ByKind(kind SensorKind) []SMCSensor {
	var out []SMCSensor
	for _, sn := range s.Sensors {
		if sn.Kind == kind {
			out = append(out, sn)
		}
	}
	return out
}

// MaxTemperature returns the hottest plausible temperature reading.
func (s SensorReadings) MaxTemperature() (SMCSensor, bool) {
	var best SMCSensor
	found := false
	for _, sn := range s.Sensors {
		if sn.Kind != SensorTemperature || sn.Value <= 0 || sn.Value >= 150 {
			continue
		}
		if !found || sn.Value > best.Value {
			best, found = sn, true
		}
	}
	return best, found
}
