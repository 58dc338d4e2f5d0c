package collector

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/smc"
	"github.com/ftahirops/macsense/util"
)

// SMCCollector reads temperature, power and fan sensors from the System
// Management Controller. The connection is opened on first use and kept
// until Close.
type SMCCollector struct {
	mu       sync.Mutex
	prefixes []string
	logger   *slog.Logger
	conn     smc.Reader
	openErr  error
	opened   bool
}

// NewSMCCollector creates a collector limited to keys with the given
// prefixes (all keys when empty).
func NewSMCCollector(prefixes []string, logger *slog.Logger) *SMCCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMCCollector{prefixes: prefixes, logger: logger}
}

func (s *SMCCollector) Name() string { return "smc" }

func (s *SMCCollector) Collect(snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		s.opened = true
		conn, err := smc.Open()
		if err == nil {
			s.conn = conn
		}
		s.openErr = err
		if err != nil {
			s.logger.Debug("smc unavailable", "error", err)
		}
	}
	if s.conn == nil {
		if errors.Is(s.openErr, util.ErrUnsupported) {
			snap.Sensors = fallbackSensors(s.prefixes)
			return nil
		}
		// No AppleSMC (virtual machines) is not a failure.
		snap.Sensors = model.SensorReadings{}
		return nil
	}

	readings, err := smc.ReadSensors(s.conn, s.prefixes)
	if err != nil {
		return err
	}
	snap.Sensors = readings
	return nil
}

// Close releases the SMC connection.
func (s *SMCCollector) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// fallbackSensors reports platform temperature sensors through gopsutil
// where no SMC exists.
func fallbackSensors(prefixes []string) model.SensorReadings {
	temps, err := sensors.TemperaturesWithContext(context.Background())
	if err != nil && len(temps) == 0 {
		return model.SensorReadings{}
	}
	out := model.SensorReadings{Supported: len(temps) > 0}
	for _, t := range temps {
		if len(prefixes) > 0 && !hasAnyPrefix(t.SensorKey, prefixes) {
			continue
		}
		out.Sensors = append(out.Sensors, model.SMCSensor{
			Key:         t.SensorKey,
			Kind:        model.SensorTemperature,
			Value:       t.Temperature,
			Description: t.SensorKey,
		})
	}
	sort.Slice(out.Sensors, func(i, j int) bool { return out.Sensors[i].Key < out.Sensors[j].Key })
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
