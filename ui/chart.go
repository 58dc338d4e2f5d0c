package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// chartBlocks fill one cell from empty to full in eighths.
var chartBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// chartScale maps a series onto chart rows.
type chartScale struct {
	max   float64
	label func(float64) string
	color func(v, ratio float64) lipgloss.Style
	peak  bool // resample by bucket maximum instead of mean
}

// pctScale is a fixed 0..100 axis colored like the usage bars.
func pctScale() chartScale {
	return chartScale{
		max:   100,
		label: func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
		color: func(v, _ float64) lipgloss.Style { return usageColor(v) },
	}
}

// rateScale fits a bytes-per-second series. The axis top is the series
// peak rounded up to 1, 2 or 5 times a power of ten within its binary
// unit, so short bursts stay visible.
func rateScale(data []float64) chartScale {
	var peak float64
	for _, v := range data {
		peak = max(peak, v)
	}
	return chartScale{
		max:   niceRateCeil(peak),
		label: compactRate,
		color: func(_, ratio float64) lipgloss.Style {
			if ratio >= 0.75 {
				return orangeStyle
			}
			return netStyle
		},
		peak: true,
	}
}

var rateSuffixes = []string{"", "K", "M", "G", "T"}

func niceRateCeil(peak float64) float64 {
	if peak <= 0 {
		return 1024
	}
	unit := 1.0
	for i := 0; peak/unit >= 1024 && i < len(rateSuffixes)-1; i++ {
		unit *= 1024
	}
	m := peak / unit
	for _, step := range []float64{1, 2, 5, 10, 20, 50, 100, 200, 500} {
		if m <= step {
			return step * unit
		}
	}
	return 1024 * unit
}

// compactRate labels an axis tick: "0", "512", "1.5K", "20M".
func compactRate(v float64) string {
	unit := 0
	for v >= 1024 && unit < len(rateSuffixes)-1 {
		v /= 1024
		unit++
	}
	if v < 10 && v != float64(int(v)) {
		return fmt.Sprintf("%.1f%s", v, rateSuffixes[unit])
	}
	return fmt.Sprintf("%.0f%s", v, rateSuffixes[unit])
}

// areaChart renders a series as filled columns under a labeled Y axis,
// newest sample on the right:
//
//	CPU Busy %                                   now 42%
//	100%│
//	 67%│          ▄███
//	 33%│    ▂▄▆██████████▆▄▂   ▃
//	    └──────────────────────────────
//	    16:30:00               16:35:00
func areaChart(data []float64, title string, width, height int, sc chartScale, start, end time.Time) string {
	height = max(height, 2)
	if sc.max <= 0 {
		sc.max = 1
	}

	labels := make([]string, height)
	axisW := 0
	for row := range labels {
		labels[row] = sc.label(sc.max * float64(row+1) / float64(height))
		axisW = max(axisW, lipgloss.Width(labels[row]))
	}
	cols := resample(data, max(width-axisW-1, 10), sc.peak)

	var sb strings.Builder
	now := 0.0
	if len(cols) > 0 {
		now = data[len(data)-1]
	}
	head := titleStyle.Render(title)
	tail := dimStyle.Render("now " + sc.label(now))
	sb.WriteString(head + strings.Repeat(" ", max(width-lipgloss.Width(head)-lipgloss.Width(tail), 2)) + tail + "\n")

	for row := height - 1; row >= 0; row-- {
		sb.WriteString(dimStyle.Render(padLeft(labels[row], axisW) + "│"))
		for _, v := range cols {
			v = min(max(v, 0), sc.max)
			fill := v/sc.max*float64(height) - float64(row)
			idx := min(max(int(fill*8), 0), len(chartBlocks)-1)
			if idx == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteString(sc.color(v, v/sc.max).Render(string(chartBlocks[idx])))
		}
		sb.WriteString("\n")
	}

	pad := strings.Repeat(" ", axisW)
	sb.WriteString(dimStyle.Render(pad + "└" + strings.Repeat("─", len(cols))))
	if !start.IsZero() && !end.IsZero() {
		left, right := start.Format("15:04:05"), end.Format("15:04:05")
		gap := max(len(cols)+1-len(left)-len(right), 1)
		sb.WriteString("\n" + dimStyle.Render(pad+left+strings.Repeat(" ", gap)+right))
	}
	return sb.String()
}

// resample folds data into at most width columns, each the mean (or the
// maximum with peak) of the samples that land in it.
func resample(data []float64, width int, peak bool) []float64 {
	if len(data) <= width || width <= 0 {
		return data
	}
	out := make([]float64, width)
	for i := range out {
		lo := i * len(data) / width
		hi := max((i+1)*len(data)/width, lo+1)
		bucket := data[lo:hi]
		var agg float64
		for _, v := range bucket {
			if peak {
				agg = max(agg, v)
			} else {
				agg += v
			}
		}
		if !peak {
			agg /= float64(len(bucket))
		}
		out[i] = agg
	}
	return out
}
