package util

import "time"

// Rate computes the per-second rate between two counter values.
// A counter that went backwards (reset or wrap) yields 0.
func Rate(prev, curr uint64, dt time.Duration) float64 {
	if dt <= 0 || curr < prev {
		return 0
	}
	return float64(curr-prev) / dt.Seconds()
}

// Pct returns num/den as a percentage clamped to [0, 100].
// A zero denominator yields 0.
func Pct(num, den float64) float64 {
	if den <= 0 || num <= 0 {
		return 0
	}
	return ClampPct(num / den * 100)
}

// PctU64 is Pct for unsigned counters.
func PctU64(num, den uint64) float64 {
	if den == 0 {
		return 0
	}
	return Pct(float64(num), float64(den))
}

// ClampPct clamps v into [0, 100]. NaN becomes 0.
func ClampPct(v float64) float64 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// CPUPct computes CPU usage percentage from two busy tick values and two
// total tick values.
func CPUPct(prevBusy, currBusy, prevTotal, currTotal uint64) float64 {
	dtotal := Delta(prevTotal, currTotal)
	if dtotal == 0 {
		return 0
	}
	return Pct(float64(Delta(prevBusy, currBusy)), float64(dtotal))
}

// Delta returns curr - prev, or 0 if curr < prev (counter wrap).
func Delta(prev, curr uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}

// SafeSub returns a - b, or 0 if b > a.
func SafeSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
