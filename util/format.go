package util

import (
	"fmt"
	"math"
	"strconv"
)

var byteUnits = []string{"KiB", "MiB", "GiB", "TiB", "PiB"}

// FormatBytes renders a byte count with binary units and two decimals:
// 0 -> "0 B", 1024 -> "1.00 KiB", 1048576 -> "1.00 MiB".
func FormatBytes(n uint64) string {
	if n < 1024 {
		return strconv.FormatUint(n, 10) + " B"
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	// 1023.999 KiB rounds to "1024.00"; carry into the next unit.
	if math.Round(v*100) >= 1024*100 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + byteUnits[unit]
}

// FormatRate renders a bytes-per-second rate.
func FormatRate(bytesPerSec float64) string {
	if bytesPerSec <= 0 {
		return "0 B/s"
	}
	return FormatBytes(uint64(bytesPerSec)) + "/s"
}

// FormatPct renders a percentage with one decimal.
func FormatPct(v float64) string {
	return strconv.FormatFloat(ClampPct(v), 'f', 1, 64) + "%"
}

// FormatCelsius renders a temperature in degrees Celsius.
func FormatCelsius(c float64) string {
	return fmt.Sprintf("%.1f °C", c)
}

// FormatVolts renders a voltage.
func FormatVolts(v float64) string {
	return fmt.Sprintf("%.3f V", v)
}

// FormatAmps renders a current.
func FormatAmps(a float64) string {
	return fmt.Sprintf("%.3f A", a)
}

// FormatWatts renders a power draw.
func FormatWatts(w float64) string {
	return fmt.Sprintf("%.2f W", w)
}

// FormatMinutes renders a minute count as "3h07m"; negative means unknown.
func FormatMinutes(m int) string {
	if m < 0 {
		return "-"
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}
