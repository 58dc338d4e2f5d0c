package collector

import (
	"testing"
	"time"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/util"
)

func TestWiFiCollectorCaches(t *testing.T) {
	calls := 0
	w := NewWiFiCollector(time.Minute, true)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }
	w.read = func(scan bool) (model.WiFiInfo, error) {
		calls++
		if !scan {
			t.Error("scan not requested")
		}
		return model.WiFiInfo{Supported: true, Interface: model.WiFiInterface{Name: "en0", RSSI: -55}}, nil
	}

	var snap model.Snapshot
	for i := 0; i < 3; i++ {
		if err := w.Collect(&snap); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("reads = %d, want 1", calls)
	}
	if snap.WiFi.Interface.Name != "en0" || snap.WiFi.Interface.Quality() != 90 {
		t.Errorf("wifi = %+v", snap.WiFi)
	}

	now = now.Add(2 * time.Minute)
	w.Collect(&snap)
	w.Trigger()
	w.Collect(&snap)
	if calls != 3 {
		t.Errorf("reads = %d, want 3", calls)
	}
}

func TestWiFiCollectorUnsupported(t *testing.T) {
	w := NewWiFiCollector(0, false)
	w.read = func(bool) (model.WiFiInfo, error) { return model.WiFiInfo{}, util.ErrUnsupported }
	var snap model.Snapshot
	if err := w.Collect(&snap); err != nil {
		t.Errorf("unsupported platform should not fail: %v", err)
	}
	if snap.WiFi.Supported {
		t.Error("reported supported")
	}
}
