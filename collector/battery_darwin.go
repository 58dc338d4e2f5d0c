//go:build darwin

package collector

import (
	"errors"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/iokit"
)

func readBattery() (model.BatteryInfo, error) {
	svc, err := iokit.FirstService("AppleSmartBattery")
	if errors.Is(err, iokit.ErrNotFound) {
		// Desktops have no battery.
		return model.BatteryInfo{}, nil
	}
	if err != nil {
		return model.BatteryInfo{}, err
	}
	defer svc.Release()
	props, err := svc.Properties()
	if err != nil {
		return model.BatteryInfo{}, err
	}
	return batteryFromProps(props), nil
}
