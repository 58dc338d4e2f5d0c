package engine

import "github.com/ftahirops/macsense/model"

// Ticker abstracts a data source that can produce snapshots.
type Ticker interface {
	Tick() (*model.Snapshot, *model.RateSnapshot)
	Base() *Engine
}

// Base returns itself for the default engine ticker.
func (e *Engine) Base() *Engine {
	return e
}
