package collector

import (
	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/cf"
)

// BatteryCollector reads the internal battery, if any.
type BatteryCollector struct{}

func (b *BatteryCollector) Name() string { return "battery" }

func (b *BatteryCollector) Collect(snap *model.Snapshot) error {
	info, err := readBattery()
	if err != nil {
		return err
	}
	snap.Battery = info
	return nil
}

// unknownMinutes is what the gas gauge reports while it is still
// estimating.
const unknownMinutes = 65535

// batteryFromProps decodes the AppleSmartBattery property table.
func batteryFromProps(p cf.Dict) model.BatteryInfo {
	if len(p) == 0 {
		return model.BatteryInfo{}
	}
	b := model.BatteryInfo{
		Present:            p.Bool("BatteryInstalled") || !p.Has("BatteryInstalled"),
		CurrentCapacity:    int(p.Int("CurrentCapacity")),
		MaxCapacity:        int(p.Int("MaxCapacity")),
		RawCurrentCapacity: int(p.Int("AppleRawCurrentCapacity")),
		RawMaxCapacity:     int(p.Int("AppleRawMaxCapacity")),
		DesignCapacity:     int(p.Int("DesignCapacity")),
		NominalCapacity:    int(p.Int("NominalChargeCapacity")),
		CycleCount:         int(p.Int("CycleCount")),
		DesignCycleCount:   int(p.Int("DesignCycleCount9C")),
		VoltageMV:          int(p.Int("Voltage")),
		AmperageMA:         int(int32(p.Int("Amperage"))),
		TemperatureCenti:   int(p.Int("Temperature")),
		IsCharging:         p.Bool("IsCharging"),
		ExternalConnected:  p.Bool("ExternalConnected"),
		FullyCharged:       p.Bool("FullyCharged"),
		TimeToEmptyMin:     minutes(p, "AvgTimeToEmpty"),
		TimeToFullMin:      minutes(p, "AvgTimeToFull"),
		Serial:             p.String("Serial"),
		DeviceName:         p.String("DeviceName"),
		Manufacturer:       p.String("Manufacturer"),
	}
	return b
}

func minutes(p cf.Dict, key string) int {
	v := p.IntOr(key, unknownMinutes)
	if v < 0 || v >= unknownMinutes {
		return -1
	}
	return int(v)
}
