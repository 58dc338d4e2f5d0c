package collector

import (
	"sync"

	"github.com/ftahirops/macsense/model"
)

// HostCollector collects host identity once; none of it changes while the
// process runs.
type HostCollector struct {
	once   sync.Once
	cached model.HostInfo
	err    error
}

func (h *HostCollector) Name() string { return "host" }

func (h *HostCollector) Collect(snap *model.Snapshot) error {
	h.once.Do(func() {
		h.cached, h.err = readHost()
	})
	snap.Host = h.cached
	return h.err
}
