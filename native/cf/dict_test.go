package cf

import (
	"math"
	"testing"
)

func TestDictAccessors(t *testing.T) {
	d := Dict{
		"Model":          []byte("Apple M2\x00\x00"),
		"Name":           "AGXAcceleratorG14G",
		"CycleCount":     int64(412),
		"Voltage":        "12650",
		"Temperature":    float64(30.5),
		"gpu-core-count": []byte{0x0a, 0x00, 0x00, 0x00},
		"IsCharging":     "Yes",
		"FullyCharged":   int64(0),
		"External":       true,
		"Huge":           uint64(math.MaxUint64),
		"Negative":       int64(-5),
		"Stats":          map[string]any{"Device Utilization %": int64(37)},
		"Items":          []any{"a", "b"},
	}

	if got := d.String("Model"); got != "Apple M2" {
		t.Errorf("String(bytes) = %q", got)
	}
	if got := d.String("CycleCount"); got != "412" {
		t.Errorf("String(int) = %q", got)
	}
	if got := d.String("missing"); got != "" {
		t.Errorf("String(missing) = %q", got)
	}

	tests := []struct {
		key  string
		want int64
	}{
		{"CycleCount", 412},
		{"Voltage", 12650},
		{"gpu-core-count", 10},
		{"Name", 0},
		{"missing", 0},
	}
	for _, tt := range tests {
		if got := d.Int(tt.key); got != tt.want {
			t.Errorf("Int(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}

	if got := d.Uint("Huge"); got != math.MaxUint64 {
		t.Errorf("Uint(Huge) = %d", got)
	}
	if got := d.Uint("Negative"); got != 0 {
		t.Errorf("Uint(Negative) = %d", got)
	}
	if got := d.Float("Temperature"); got != 30.5 {
		t.Errorf("Float = %v", got)
	}
	if !d.Bool("IsCharging") || d.Bool("FullyCharged") || !d.Bool("External") || d.Bool("missing") {
		t.Error("Bool conversions")
	}
	if got := d.Dict("Stats").Int("Device Utilization %"); got != 37 {
		t.Errorf("nested Dict = %d", got)
	}
	if len(d.Dict("missing")) != 0 {
		t.Error("missing nested dict should be empty")
	}
	if len(d.Array("Items")) != 2 || d.Array("Name") != nil {
		t.Error("Array")
	}
	if d.Bytes("Name") != nil || len(d.Bytes("Model")) != 10 {
		t.Error("Bytes")
	}
	if d.IntOr("missing", -1) != -1 || d.IntOr("Negative", -1) != -5 {
		t.Error("IntOr")
	}
}

func TestLeUintTruncates(t *testing.T) {
	b := []byte{1, 0, 0, 0, 0, 0, 0, 0, 0xff}
	if got := leUint(b); got != 1 {
		t.Errorf("leUint = %d", got)
	}
}
