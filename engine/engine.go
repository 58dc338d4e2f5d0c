package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ftahirops/macsense/collector"
	"github.com/ftahirops/macsense/model"
)

// Engine orchestrates collection and rate computation.
type Engine struct {
	registry *collector.Registry
	History  *History
	logger   *slog.Logger
	now      func() time.Time
	tickMu   sync.Mutex // serializes Tick() calls to prevent concurrent collection
}

// NewEngine creates an engine that collects through reg.
func NewEngine(reg *collector.Registry, historySize int, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if historySize < 2 {
		historySize = 2
	}
	return &Engine{
		registry: reg,
		History:  NewHistory(historySize),
		logger:   logger,
		now:      time.Now,
	}
}

// Tick performs one collection cycle and returns the snapshot and, from
// the second tick on, the rates against the previous snapshot.
// Serialized via tickMu to prevent concurrent collection when ticks overlap.
func (e *Engine) Tick() (*model.Snapshot, *model.RateSnapshot) {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	snap := &model.Snapshot{
		Timestamp: e.now(),
	}

	// Collect all metrics
	if e.registry != nil {
		if errs := e.registry.CollectAll(snap); len(errs) > 0 {
			e.logger.Debug("tick completed with errors", "errors", len(errs))
		}
	}

	// Get previous snapshot for rate calculations
	prev := e.History.Latest()

	// Store in history
	e.History.Push(*snap)

	var rates *model.RateSnapshot
	if prev != nil {
		r := ComputeRates(prev, snap)
		rates = &r
		e.History.PushRate(r)
	}
	return snap, rates
}

// Trigger asks a cached collector (smart, wifi) to refresh on the next tick.
func (e *Engine) Trigger(name string) {
	if e.registry != nil {
		e.registry.TriggerByName(name)
	}
}

// Close releases native resources held by the collectors.
func (e *Engine) Close() error {
	if e.registry == nil {
		return nil
	}
	return e.registry.Close()
}
