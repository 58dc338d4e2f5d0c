package collector

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/smart"
)

// SMARTCollector reads disk SMART logs through a session manager and
// caches them; reading a log is slow.
type SMARTCollector struct {
	mu       sync.RWMutex
	logs     []model.SMARTLog
	lastRun  time.Time
	interval time.Duration
	manager  *smart.Manager
	now      func() time.Time
}

// NewSMARTCollector creates a collector that refreshes every interval.
func NewSMARTCollector(interval time.Duration, logger *slog.Logger) *SMARTCollector {
	return newSMARTCollector(smart.NewNativeOpener(), interval, logger)
}

func newSMARTCollector(o smart.Opener, interval time.Duration, logger *slog.Logger) *SMARTCollector {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SMARTCollector{
		interval: interval,
		manager:  smart.NewManager(o, logger),
		now:      time.Now,
	}
}

func (s *SMARTCollector) Name() string { return "smart" }

func (s *SMARTCollector) Collect(snap *model.Snapshot) error {
	logs, err := s.Get()
	if err != nil {
		return err
	}
	snap.SMART = logs
	return nil
}

// Get returns cached SMART logs, refreshing if stale.
func (s *SMARTCollector) Get() ([]model.SMARTLog, error) {
	s.mu.RLock()
	if !s.lastRun.IsZero() && s.now().Sub(s.lastRun) < s.interval {
		logs := s.logs
		s.mu.RUnlock()
		return logs, nil
	}
	s.mu.RUnlock()

	// Need to refresh
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if !s.lastRun.IsZero() && s.now().Sub(s.lastRun) < s.interval {
		return s.logs, nil
	}

	logs, err := s.manager.ReadAll()
	if err != nil {
		return s.logs, err
	}
	s.logs = logs
	s.lastRun = s.now()
	return s.logs, nil
}

// Trigger forces a refresh on the next collection.
func (s *SMARTCollector) Trigger() {
	s.mu.Lock()
	s.lastRun = time.Time{}
	s.mu.Unlock()
}

// Close releases every SMART session.
func (s *SMARTCollector) Close() error {
	return s.manager.Close()
}
