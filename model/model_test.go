package model

import (
	"reflect"
	"testing"
)

func TestVolumeUsage(t *testing.T) {
	tests := []struct {
		name     string
		v        Volume
		wantUsed uint64
		wantPct  float64
	}{
		{"half", Volume{TotalBytes: 1000, FreeBytes: 500}, 500, 50},
		{"full", Volume{TotalBytes: 1000}, 1000, 100},
		{"free exceeds total", Volume{TotalBytes: 100, FreeBytes: 200}, 0, 0},
		{"empty", Volume{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.UsedBytes(); got != tt.wantUsed {
				t.Errorf("UsedBytes = %d, want %d", got, tt.wantUsed)
			}
			if got := tt.v.UsedPercent(); got != tt.wantPct {
				t.Errorf("UsedPercent = %v, want %v", got, tt.wantPct)
			}
		})
	}
}

func TestMemoryAccounting(t *testing.T) {
	m := MemoryInfo{
		TotalBytes:      16 << 30,
		PageSize:        16384,
		InternalPages:   300000,
		PurgeablePages:  20000,
		WiredPages:      100000,
		CompressedPages: 50000,
		ExternalPages:   80000,
	}
	wantApp := uint64(280000) * 16384
	if got := m.AppBytes(); got != wantApp {
		t.Errorf("AppBytes = %d, want %d", got, wantApp)
	}
	if got := m.CachedBytes(); got != 100000*16384 {
		t.Errorf("CachedBytes = %d", got)
	}
	if m.UsedBytes()+m.AvailableBytes() != m.TotalBytes {
		t.Errorf("used %d + available %d != total %d", m.UsedBytes(), m.AvailableBytes(), m.TotalBytes)
	}

	// Page counts larger than the physical total are capped.
	m.WiredPages = 2 << 20
	if m.UsedBytes() != m.TotalBytes || m.AvailableBytes() != 0 {
		t.Errorf("overcommitted: used %d available %d", m.UsedBytes(), m.AvailableBytes())
	}
	if m.UsedPercent() != 100 {
		t.Errorf("UsedPercent = %v", m.UsedPercent())
	}
}

func TestSwap(t *testing.T) {
	m := MemoryInfo{SwapTotalBytes: 2 << 30, SwapUsedBytes: 1 << 30}
	if m.SwapFreeBytes() != 1<<30 || m.SwapUsedPercent() != 50 {
		t.Errorf("free %d pct %v", m.SwapFreeBytes(), m.SwapUsedPercent())
	}
	if (MemoryInfo{}).SwapUsedPercent() != 0 {
		t.Error("no swap should be 0%")
	}
}

func TestClassifyFlags(t *testing.T) {
	tests := []struct {
		flags uint32
		want  LinkState
	}{
		{0, LinkDown},
		{IFFRunning, LinkDown},
		{IFFUp | IFFBroadcast, LinkNoCarrier},
		{IFFUp | IFFRunning, LinkOperational},
		{IFFUp | IFFRunning | IFFLoopback | IFFMulticast, LinkOperational},
	}
	for _, tt := range tests {
		if got := ClassifyFlags(tt.flags); got != tt.want {
			t.Errorf("ClassifyFlags(%#x) = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func TestFlagNamesRoundTrip(t *testing.T) {
	flags := IFFUp | IFFBroadcast | IFFRunning | IFFMulticast
	names := FlagNames(flags)
	if names != "up,broadcast,running,multicast" {
		t.Fatalf("FlagNames = %q", names)
	}
	if got := ParseFlagNames([]string{"UP", " broadcast", "running", "multicast", "bogus"}); got != flags {
		t.Errorf("ParseFlagNames = %#x, want %#x", got, flags)
	}
	if FlagNames(0) != "" {
		t.Error("no flags should render empty")
	}
}

func TestInterfaceTypeName(t *testing.T) {
	tests := []struct {
		iface NetInterface
		want  string
	}{
		{NetInterface{Name: "en0", Type: 0x06}, "ethernet"},
		{NetInterface{Name: "lo0", Type: 0x18}, "loopback"},
		{NetInterface{Name: "bridge0", Type: 0xd1}, "bridge"},
		{NetInterface{Name: "utun3", Type: 0xf5}, "tunnel"},
		{NetInterface{Name: "ap1", Type: 0x99}, "other"},
		{NetInterface{Name: "x"}, ""},
	}
	for _, tt := range tests {
		if got := tt.iface.TypeName(); got != tt.want {
			t.Errorf("%s TypeName = %q, want %q", tt.iface.Name, got, tt.want)
		}
	}
}

func TestBattery(t *testing.T) {
	b := BatteryInfo{
		Present:            true,
		CurrentCapacity:    80,
		MaxCapacity:        100,
		RawCurrentCapacity: 3000,
		RawMaxCapacity:     4000,
		DesignCapacity:     5000,
		VoltageMV:          12000,
		AmperageMA:         -1500,
		TemperatureCenti:   3050,
	}
	if got := b.ChargePercent(); got != 75 {
		t.Errorf("ChargePercent = %v, want 75 from raw mAh", got)
	}
	if got := b.HealthPercent(); got != 80 {
		t.Errorf("HealthPercent = %v", got)
	}
	if got := b.PowerWatts(); got != -18 {
		t.Errorf("PowerWatts = %v", got)
	}
	if got := b.TemperatureCelsius(); got != 30.5 {
		t.Errorf("TemperatureCelsius = %v", got)
	}

	b.RawCurrentCapacity, b.RawMaxCapacity = 0, 0
	if got := b.ChargePercent(); got != 80 {
		t.Errorf("ChargePercent fallback = %v", got)
	}
	if got := (BatteryInfo{}).ChargePercent(); got != 0 {
		t.Errorf("absent battery = %v", got)
	}
}

func TestSignalQuality(t *testing.T) {
	tests := []struct {
		rssi int
		want float64
	}{
		{0, 0},
		{-40, 100},
		{-50, 100},
		{-75, 50},
		{-100, 0},
		{-110, 0},
	}
	for _, tt := range tests {
		if got := SignalQuality(tt.rssi); got != tt.want {
			t.Errorf("SignalQuality(%d) = %v, want %v", tt.rssi, got, tt.want)
		}
	}
	w := WiFiInterface{PowerOn: true, RSSI: -60, Noise: -92}
	if !w.Associated() || w.SNR() != 32 {
		t.Errorf("associated %v snr %d", w.Associated(), w.SNR())
	}
	if (WiFiInterface{PowerOn: true}).Associated() {
		t.Error("no RSSI means not associated")
	}
}

func TestNVMeHealth(t *testing.T) {
	h := NVMeHealth{
		CriticalWarning:     NVMeWarnSpare | NVMeWarnReadOnly,
		CompositeTempKelvin: 313,
		PercentageUsed:      7,
		DataUnitsRead:       2,
		SensorKelvin:        [8]uint16{310, 0, 320},
	}
	if h.Healthy() {
		t.Error("warning bits set, should be unhealthy")
	}
	want := []string{"spare below threshold", "read-only"}
	if got := h.Warnings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Warnings = %v, want %v", got, want)
	}
	if got := h.LifeRemainingPct(); got != 93 {
		t.Errorf("LifeRemainingPct = %d", got)
	}
	if got := h.BytesRead(); got != 1024000 {
		t.Errorf("BytesRead = %d", got)
	}
	sensors := h.SensorCelsius()
	if len(sensors) != 2 || sensors[1] < 36.8 || sensors[1] > 36.9 {
		t.Errorf("SensorCelsius = %v", sensors)
	}

	h = NVMeHealth{PercentageUsed: 255, DataUnitsWritten: ^uint64(0)}
	if h.LifeRemainingPct() != 0 {
		t.Error("worn-out drive should floor at 0")
	}
	if h.BytesWritten() != ^uint64(0) {
		t.Error("data units should saturate")
	}
	if !h.Healthy() || h.Warnings() != nil {
		t.Error("no warning bits")
	}
}

func TestATAHealth(t *testing.T) {
	h := ATAHealth{Attributes: []ATAAttribute{
		{ID: 5, Flags: 0x33, Current: 100, Threshold: 10, Raw: 8},
		{ID: 9, Flags: 0x32, Current: 99, Raw: 0x0000_1234_0000_0fa0},
		{ID: 190, Flags: 0x22, Current: 60, Raw: 40},
		{ID: 194, Flags: 0x22, Current: 64, Raw: 0x0032_0014_0024},
	}}
	if got := h.TemperatureCelsius(); got != 0x24 {
		t.Errorf("TemperatureCelsius = %d, want attribute 194 low byte", got)
	}
	if got := h.PowerOnHours(); got != 0x0fa0 {
		t.Errorf("PowerOnHours = %#x", got)
	}
	if got := h.ReallocatedSectors(); got != 8 {
		t.Errorf("ReallocatedSectors = %d", got)
	}
	if got := h.PendingSectors(); got != 0 {
		t.Errorf("PendingSectors = %d", got)
	}
	if !h.Healthy() {
		t.Error("no attribute below threshold")
	}

	h.Attributes[0].Current = 10
	if h.Healthy() {
		t.Error("pre-failure attribute at threshold should fail")
	}

	// Old-age attributes and zero thresholds never fail.
	for _, a := range []ATAAttribute{
		{Flags: 0x32, Current: 1, Threshold: 50},
		{Flags: 0x33, Current: 1, Threshold: 0},
	} {
		if a.Failing() {
			t.Errorf("%+v should not fail", a)
		}
	}

	log := SMARTLog{Kind: SMARTATA, ATA: &ATAHealth{Attributes: []ATAAttribute{{ID: 190, Raw: 33}}}}
	if log.TemperatureCelsius() != 33 || !log.Healthy() {
		t.Errorf("log temp %v healthy %v", log.TemperatureCelsius(), log.Healthy())
	}
	if (SMARTLog{}).Healthy() {
		t.Error("empty log has no verdict")
	}
}

func TestSensorReadings(t *testing.T) {
	s := SensorReadings{Sensors: []SMCSensor{
		{Key: "TC0P", Kind: SensorTemperature, Value: 52},
		{Key: "TB0T", Kind: SensorTemperature, Value: 31},
		{Key: "Tbad", Kind: SensorTemperature, Value: 255},
		{Key: "VD0R", Kind: SensorVoltage, Value: 12.3},
	}}
	best, ok := s.MaxTemperature()
	if !ok || best.Key != "TC0P" {
		t.Errorf("MaxTemperature = %+v %v", best, ok)
	}
	if got := len(s.ByKind(SensorTemperature)); got != 3 {
		t.Errorf("ByKind = %d", got)
	}
	if _, ok := (SensorReadings{}).MaxTemperature(); ok {
		t.Error("no sensors")
	}
	f := FanInfo{ActualRPM: 2000, MinRPM: 1000, MaxRPM: 5000}
	if f.Percent() != 25 {
		t.Errorf("fan Percent = %v", f.Percent())
	}
	if (FanInfo{ActualRPM: 1200}).Percent() != 0 {
		t.Error("unknown range should be 0")
	}
}
