package ui

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNiceRateCeil(t *testing.T) {
	tests := []struct {
		peak, want float64
	}{
		{0, 1024},
		{700, 1000},
		{1000, 1000},
		{1023, 1024},
		{1536, 2 * 1024},
		{3.4 * 1024 * 1024, 5 * 1024 * 1024},
		{120 << 30, 200 << 30},
	}
	for _, tt := range tests {
		if got := niceRateCeil(tt.peak); got != tt.want {
			t.Errorf("niceRateCeil(%v) = %v, want %v", tt.peak, got, tt.want)
		}
	}
}

func TestCompactRate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{512, "512"},
		{1024, "1K"},
		{1536, "1.5K"},
		{20 << 20, "20M"},
	}
	for _, tt := range tests {
		if got := compactRate(tt.in); got != tt.want {
			t.Errorf("compactRate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResample(t *testing.T) {
	data := []float64{0, 10, 0, 10}
	if got := resample(data, 2, false); !reflect.DeepEqual(got, []float64{5, 5}) {
		t.Errorf("mean = %v", got)
	}
	if got := resample(data, 2, true); !reflect.DeepEqual(got, []float64{10, 10}) {
		t.Errorf("peak = %v", got)
	}
	if got := resample(data, 8, false); len(got) != 4 {
		t.Errorf("short series should pass through, got %v", got)
	}
}

func TestAreaChartFill(t *testing.T) {
	out := areaChart([]float64{100, 50, 60}, "CPU Busy %", 40, 4, pctScale(), time.Time{}, time.Time{})
	lines := strings.Split(out, "\n")
	if len(lines) != 4+2 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "CPU Busy %") || !strings.Contains(lines[0], "now 60%") {
		t.Errorf("title line = %q", lines[0])
	}
	// Rows top to bottom are 100%, 75%, 50%, 25%; 60 fills 2.4 rows.
	want := []string{"100%│█  ", " 75%│█ ▃", " 50%│███", " 25%│███"}
	for i, w := range want {
		if lines[i+1] != w {
			t.Errorf("row %d = %q, want %q", i, lines[i+1], w)
		}
	}
	if lines[5] != "    └───" {
		t.Errorf("axis = %q", lines[5])
	}
}

func TestAreaChartRateAxis(t *testing.T) {
	data := []float64{0, 1 << 20, 3 << 20}
	start := time.Date(2024, 5, 1, 16, 30, 0, 0, time.UTC)
	out := areaChart(data, "Receive", 60, 2, rateScale(data), start, start.Add(2*time.Second))
	for _, w := range []string{"5M│", "2.5M│", "now 3M", "16:30:00", "16:30:02"} {
		if !strings.Contains(out, w) {
			t.Errorf("chart missing %q:\n%s", w, out)
		}
	}
}
