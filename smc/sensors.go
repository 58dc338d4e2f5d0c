package smc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ftahirops/macsense/model"
)

var descriptions = map[string]string{
	"TA0P": "Ambient",
	"TA1P": "Ambient 2",
	"TB0T": "Battery",
	"TB1T": "Battery 1",
	"TB2T": "Battery 2",
	"TC0D": "CPU die",
	"TC0E": "CPU die (PECI)",
	"TC0F": "CPU die (filtered)",
	"TC0P": "CPU proximity",
	"TCGC": "PECI GPU",
	"TCXC": "PECI CPU",
	"TG0D": "GPU die",
	"TG0P": "GPU proximity",
	"TH0P": "Drive bay",
	"TM0P": "Memory proximity",
	"TPCD": "Platform controller hub",
	"TW0P": "Wireless module",
	"Ts0P": "Palm rest",
	"Ts1P": "Palm rest 2",
	"Tp01": "P-core 1",
	"Tp05": "P-core 2",
	"Tp09": "P-core 3",
	"Tp0D": "P-core 4",
	"Tp0T": "P-core 5",
	"Te05": "E-core 1",
	"Te0L": "E-core 2",
	"Tg05": "GPU 1",
	"Tg0D": "GPU 2",
	"TaLP": "Airflow left",
	"TaRF": "Airflow right",
	"TH0x": "NAND",
	"VD0R": "DC in",
	"VP0R": "12V rail",
	"VC0C": "CPU core",
	"VG0C": "GPU core",
	"ID0R": "DC in",
	"IC0R": "CPU rail",
	"IB0R": "Battery",
	"PSTR": "System total",
	"PCPC": "CPU package",
	"PCPG": "GPU package",
	"PC0C": "CPU core",
	"PDTR": "DC in",
	"PPBR": "Battery",
}

// Describe returns a human label for well-known keys.
func Describe(key string) string {
	return descriptions[key]
}

// Classify maps a key to the quantity it measures by its first letter.
func Classify(key string) model.SensorKind {
	if len(key) != 4 {
		return model.SensorOther
	}
	switch key[0] {
	case 'T':
		return model.SensorTemperature
	case 'V':
		return model.SensorVoltage
	case 'I':
		return model.SensorCurrent
	case 'P':
		return model.SensorPower
	case 'F':
		if key[1] >= '0' && key[1] <= '9' {
			return model.SensorFan
		}
	}
	return model.SensorOther
}

// plausible filters values the SMC reports for absent sensors.
func plausible(kind model.SensorKind, v float64) bool {
	switch kind {
	case model.SensorTemperature:
		return v > 0 && v < 150
	case model.SensorVoltage, model.SensorCurrent, model.SensorPower:
		return v > 0 && v < 1000
	}
	return true
}

// ReadSensors enumerates every key, keeps those whose prefix matches one of
// prefixes (all sensor kinds when prefixes is empty), and decodes them.
// Keys that fail to read or decode are skipped.
func ReadSensors(r Reader, prefixes []string) (model.SensorReadings, error) {
	out := model.SensorReadings{Supported: true}
	n, err := r.KeyCount()
	if err != nil {
		return out, fmt.Errorf("smc key count: %w", err)
	}
	for i := 0; i < n; i++ {
		key, err := r.KeyAt(i)
		if err != nil {
			continue
		}
		kind := Classify(key)
		if kind == model.SensorOther || kind == model.SensorFan {
			continue
		}
		if !matchPrefix(key, prefixes) {
			continue
		}
		v, err := r.Read(key)
		if err != nil {
			continue
		}
		f, err := Decode(v)
		if err != nil || !plausible(kind, f) {
			continue
		}
		out.Sensors = append(out.Sensors, model.SMCSensor{
			Key:         key,
			DataType:    v.DataType,
			Kind:        kind,
			Value:       f,
			Description: Describe(key),
		})
	}
	sort.SliceStable(out.Sensors, func(i, j int) bool {
		if out.Sensors[i].Kind != out.Sensors[j].Kind {
			return out.Sensors[i].Kind < out.Sensors[j].Kind
		}
		return out.Sensors[i].Key < out.Sensors[j].Key
	})

	fans, err := ReadFans(r)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return out, err
	}
	out.Fans = fans
	return out, nil
}

func matchPrefix(key string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// ReadFans reads FNum and the per-fan F<n>Ac/Mn/Mx/Tg/Md keys. Machines
// without fans return ErrKeyNotFound or zero fans.
func ReadFans(r Reader) ([]model.FanInfo, error) {
	v, err := r.Read("FNum")
	if err != nil {
		return nil, err
	}
	count, err := Decode(v)
	if err != nil {
		return nil, err
	}
	var fans []model.FanInfo
	for i := 0; i < int(count); i++ {
		fan := model.FanInfo{Index: i}
		fan.ActualRPM = readFloat(r, fmt.Sprintf("F%dAc", i))
		fan.MinRPM = readFloat(r, fmt.Sprintf("F%dMn", i))
		fan.MaxRPM = readFloat(r, fmt.Sprintf("F%dMx", i))
		fan.TargetRPM = readFloat(r, fmt.Sprintf("F%dTg", i))
		fan.Forced = readFloat(r, fmt.Sprintf("F%dMd", i)) == 1
		fans = append(fans, fan)
	}
	return fans, nil
}

func readFloat(r Reader, key string) float64 {
	v, err := r.Read(key)
	if err != nil {
		return 0
	}
	f, err := Decode(v)
	if err != nil {
		return 0
	}
	return f
}
