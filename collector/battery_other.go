//go:build !darwin

package collector

import "github.com/ftahirops/macsense/model"

func readBattery() (model.BatteryInfo, error) { return model.BatteryInfo{}, nil }
