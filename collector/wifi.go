package collector

import (
	"errors"
	"sync"
	"time"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/util"
	"github.com/ftahirops/macsense/wifi"
)

// WiFiCollector reads the Wi-Fi interface and, optionally, scan results.
// Scans take seconds, so results are cached for interval.
type WiFiCollector struct {
	mu       sync.RWMutex
	info     model.WiFiInfo
	lastRun  time.Time
	interval time.Duration
	scan     bool
	read     func(scan bool) (model.WiFiInfo, error)
	now      func() time.Time
}

// NewWiFiCollector creates a collector that refreshes every interval.
func NewWiFiCollector(interval time.Duration, scan bool) *WiFiCollector {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &WiFiCollector{interval: interval, scan: scan, read: wifi.Read, now: time.Now}
}

func (w *WiFiCollector) Name() string { return "wifi" }

func (w *WiFiCollector) Collect(snap *model.Snapshot) error {
	info, err := w.Get()
	snap.WiFi = info
	if errors.Is(err, util.ErrUnsupported) {
		return nil
	}
	return err
}

// Get returns cached Wi-Fi state, refreshing if stale.
func (w *WiFiCollector) Get() (model.WiFiInfo, error) {
	w.mu.RLock()
	if !w.lastRun.IsZero() && w.now().Sub(w.lastRun) < w.interval {
		info := w.info
		w.mu.RUnlock()
		return info, nil
	}
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.lastRun.IsZero() && w.now().Sub(w.lastRun) < w.interval {
		return w.info, nil
	}

	info, err := w.read(w.scan)
	if err != nil {
		return info, err
	}
	w.info = info
	w.lastRun = w.now()
	return w.info, nil
}

// Trigger forces a rescan on the next collection.
func (w *WiFiCollector) Trigger() {
	w.mu.Lock()
	w.lastRun = time.Time{}
	w.mu.Unlock()
}
