package util

import (
	"math"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{1048575, "1.00 MiB"},
		{1 << 20, "1.00 MiB"},
		{1073741823, "1.00 GiB"},
		{1048064, "1023.50 KiB"},
		{5 << 30, "5.00 GiB"},
		{1 << 50, "1.00 PiB"},
		{1 << 60, "1024.00 PiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatRate(0), "0 B/s"},
		{FormatRate(-3), "0 B/s"},
		{FormatRate(2048), "2.00 KiB/s"},
		{FormatPct(12.345), "12.3%"},
		{FormatPct(140), "100.0%"},
		{FormatCelsius(41.25), "41.2 °C"},
		{FormatVolts(12.6), "12.600 V"},
		{FormatAmps(-1.5), "-1.500 A"},
		{FormatWatts(18.9), "18.90 W"},
		{FormatMinutes(187), "3h07m"},
		{FormatMinutes(0), "0h00m"},
		{FormatMinutes(-1), "-"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr uint64
		dt         time.Duration
		want       float64
	}{
		{"steady", 100, 300, 2 * time.Second, 100},
		{"reset", 300, 100, time.Second, 0},
		{"zero interval", 0, 100, 0, 0},
		{"negative interval", 0, 100, -time.Second, 0},
		{"idle", 50, 50, time.Second, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.prev, tt.curr, tt.dt); got != tt.want {
				t.Errorf("Rate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPct(t *testing.T) {
	tests := []struct {
		num, den, want float64
	}{
		{50, 200, 25},
		{1, 0, 0},
		{-1, 10, 0},
		{30, 10, 100},
	}
	for _, tt := range tests {
		if got := Pct(tt.num, tt.den); got != tt.want {
			t.Errorf("Pct(%v, %v) = %v, want %v", tt.num, tt.den, got, tt.want)
		}
	}
	if got := PctU64(3, 0); got != 0 {
		t.Errorf("PctU64 zero denominator = %v", got)
	}
	if got := ClampPct(math.NaN()); got != 0 {
		t.Errorf("ClampPct(NaN) = %v", got)
	}
}

func TestCPUPct(t *testing.T) {
	if got := CPUPct(100, 150, 1000, 1100); got != 50 {
		t.Errorf("CPUPct = %v, want 50", got)
	}
	if got := CPUPct(100, 150, 1000, 1000); got != 0 {
		t.Errorf("no elapsed ticks = %v, want 0", got)
	}
	if got := CPUPct(200, 100, 1000, 1100); got != 0 {
		t.Errorf("busy counter reset = %v, want 0", got)
	}
}

func TestDeltaAndSafeSub(t *testing.T) {
	if Delta(5, 8) != 3 || Delta(8, 5) != 0 {
		t.Error("Delta")
	}
	if SafeSub(8, 5) != 3 || SafeSub(5, 8) != 0 {
		t.Error("SafeSub")
	}
}

func TestCString(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("en0\x00\x00\x00"), "en0"},
		{[]byte("abc"), "abc"},
		{[]byte{0, 'x'}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := CString(tt.in); got != tt.want {
			t.Errorf("CString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := TrimCString([]byte("  APPLE SSD  \x00junk")); got != "APPLE SSD" {
		t.Errorf("TrimCString = %q", got)
	}
}

func TestFourCC(t *testing.T) {
	if got := FourCC("TC0P"); got != 0x54433050 {
		t.Errorf("FourCC = %#x", got)
	}
	if got := FourCCString(FourCC("ui8")); got != "ui8 " {
		t.Errorf("short code = %q, want space padded", got)
	}
}

func TestParseNumbers(t *testing.T) {
	if ParseUint64(" 42\n") != 42 || ParseUint64("x") != 0 {
		t.Error("ParseUint64")
	}
	if ParseInt("-7") != -7 || ParseInt("") != 0 {
		t.Error("ParseInt")
	}
}

func TestUint128LE(t *testing.T) {
	b := make([]byte, 16)
	b[0], b[1] = 0x34, 0x12
	if got := Uint128LE(b); got != 0x1234 {
		t.Errorf("low half = %#x", got)
	}
	b[8] = 1
	if got := Uint128LE(b); got != math.MaxUint64 {
		t.Errorf("high half set = %#x, want saturation", got)
	}
	if got := Uint128LE(b[:15]); got != 0 {
		t.Errorf("short input = %#x", got)
	}
}

func TestUint48LE(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0xff}
	if got := Uint48LE(b); got != 0x060504030201 {
		t.Errorf("Uint48LE = %#x", got)
	}
	if got := Uint48LE(b[:5]); got != 0 {
		t.Errorf("short input = %#x", got)
	}
}
