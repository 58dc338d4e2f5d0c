package collector

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ftahirops/macsense/model"
)

// Collector is the interface for all metric collectors.
type Collector interface {
	Name() string
	Collect(snap *model.Snapshot) error
}

// Triggerable is a collector that supports on-demand rescans.
type Triggerable interface {
	Trigger()
}

// Sections lists every collector name in collection order.
var Sections = []string{
	"host", "cpu", "memory", "volumes", "disks", "network",
	"gpu", "battery", "smc", "wifi", "smart",
}

// Options configures a registry.
type Options struct {
	// Sections selects collectors by name. Empty means all.
	Sections []string

	SMARTInterval time.Duration
	WiFiInterval  time.Duration
	WiFiScan      bool
	SMCPrefixes   []string

	Logger *slog.Logger
}

// Registry holds all registered collectors.
type Registry struct {
	collectors []Collector
	logger     *slog.Logger
}

// TriggerByName triggers a rescan on a named collector if it supports Triggerable.
func (r *Registry) TriggerByName(name string) {
	for _, c := range r.collectors {
		if c.Name() == name {
			if t, ok := c.(Triggerable); ok {
				t.Trigger()
			}
		}
	}
}

// NewRegistry creates a registry with the selected collectors.
func NewRegistry(opts Options) (*Registry, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	names := opts.Sections
	if len(names) == 0 {
		names = Sections
	}
	enabled := make(map[string]bool, len(names))
	for _, n := range names {
		if !validSection(n) {
			return nil, fmt.Errorf("unknown section %q", n)
		}
		enabled[n] = true
	}

	r := &Registry{logger: logger}
	// Keep collection order independent of the order sections were named in.
	for _, n := range Sections {
		if !enabled[n] {
			continue
		}
		switch n {
		case "host":
			r.Add(&HostCollector{})
		case "cpu":
			r.Add(&CPUCollector{})
		case "memory":
			r.Add(&MemoryCollector{})
		case "volumes":
			r.Add(&VolumeCollector{})
		case "disks":
			r.Add(&DiskCollector{})
		case "network":
			r.Add(&NetworkCollector{})
		case "gpu":
			r.Add(&GPUCollector{})
		case "battery":
			r.Add(&BatteryCollector{})
		case "smc":
			r.Add(NewSMCCollector(opts.SMCPrefixes, logger))
		case "wifi":
			r.Add(NewWiFiCollector(opts.WiFiInterval, opts.WiFiScan))
		case "smart":
			r.Add(NewSMARTCollector(opts.SMARTInterval, logger))
		}
	}
	return r, nil
}

func validSection(name string) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}

// Add registers an additional collector.
func (r *Registry) Add(c Collector) {
	r.collectors = append(r.collectors, c)
}

// Names returns the registered collector names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.collectors))
	for i, c := range r.collectors {
		names[i] = c.Name()
	}
	return names
}

// CollectAll runs all collectors, populating the snapshot. Failures are
// also recorded in snap.Errors.
func (r *Registry) CollectAll(snap *model.Snapshot) []error {
	var errs []error
	for _, c := range r.collectors {
		if err := c.Collect(snap); err != nil {
			err = fmt.Errorf("%s: %w", c.Name(), err)
			if r.logger != nil {
				r.logger.Debug("collector failed", "collector", c.Name(), "error", err)
			}
			snap.Errors = append(snap.Errors, err.Error())
			errs = append(errs, err)
		}
	}
	return errs
}

// Close releases native resources held by collectors.
func (r *Registry) Close() error {
	var errs []error
	for _, c := range r.collectors {
		if cl, ok := c.(io.Closer); ok {
			if err := cl.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", c.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}
