// Package smart reads disk SMART data through per-device native plugin
// interfaces.
//
// A Session holds one acquired interface and can be read repeatedly. The
// interface can only be acquired once per device per process, so sessions
// are handed out by a Manager that remembers both open sessions and failed
// opens.
package smart

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ftahirops/macsense/model"
)

var (
	// ErrNotCapable means the device does not expose a SMART interface.
	ErrNotCapable = errors.New("smart: device not SMART capable")
	// ErrClosed is returned by reads on a released session.
	ErrClosed = errors.New("smart: session closed")
	// ErrAlreadyOpen is returned when a second session is requested for a
	// device that already has one.
	ErrAlreadyOpen = errors.New("smart: device already has a session")
)

// Device identifies a SMART capable disk.
type Device struct {
	Name  string // BSD name, "disk0"
	Model string
	Kind  model.SMARTKind
}

// Interface is an acquired native SMART interface.
type Interface interface {
	// Read fills buf with up to LogSize bytes of SMART data.
	Read(buf []byte) error
	// Close releases the native interface.
	Close() error
}

// ThresholdReader is implemented by ATA interfaces that can also read the
// attribute threshold sector.
type ThresholdReader interface {
	ReadThresholds(buf []byte) error
}

// Opener discovers devices and acquires their interfaces.
type Opener interface {
	Devices() ([]Device, error)
	Open(dev Device) (Interface, error)
}

// State is a session's lifecycle position.
type State int

const (
	StateUnopened State = iota
	StateOpen
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpen:
		return "open"
	case StateReleased:
		return "released"
	}
	return "unknown"
}

// held tracks devices with a live session anywhere in the process.
var (
	heldMu sync.Mutex
	held   = make(map[string]bool)
)

func acquire(name string) bool {
	heldMu.Lock()
	defer heldMu.Unlock()
	if held[name] {
		return false
	}
	held[name] = true
	return true
}

func release(name string) {
	heldMu.Lock()
	defer heldMu.Unlock()
	delete(held, name)
}

// Session is one device's acquired SMART interface.
type Session struct {
	mu     sync.Mutex
	device Device
	iface  Interface
	state  State
	now    func() time.Time
}

// Open acquires the device's interface. It fails with ErrAlreadyOpen when
// another session holds the device.
func Open(o Opener, dev Device) (*Session, error) {
	if !acquire(dev.Name) {
		return nil, fmt.Errorf("%s: %w", dev.Name, ErrAlreadyOpen)
	}
	iface, err := o.Open(dev)
	if err != nil {
		release(dev.Name)
		return nil, fmt.Errorf("open smart %s: %w", dev.Name, err)
	}
	if iface == nil {
		release(dev.Name)
		return nil, fmt.Errorf("open smart %s: %w", dev.Name, ErrNotCapable)
	}
	return &Session{device: dev, iface: iface, state: StateOpen, now: time.Now}, nil
}

// Device returns the device the session was opened for.
func (s *Session) Device() Device { return s.device }

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Read reads and decodes the current SMART data. A failed read leaves the
// session open; it may be retried.
func (s *Session) Read() (*model.SMARTLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return nil, ErrClosed
	}
	buf := make([]byte, LogSize)
	if err := s.iface.Read(buf); err != nil {
		return nil, fmt.Errorf("read smart %s: %w", s.device.Name, err)
	}
	log := &model.SMARTLog{
		Device:     s.device.Name,
		Kind:       s.device.Kind,
		CapturedAt: s.now(),
		Raw:        buf,
	}
	switch s.device.Kind {
	case model.SMARTNVMe:
		h, err := DecodeNVMe(buf)
		if err != nil {
			return nil, err
		}
		log.NVMe = h
	case model.SMARTATA:
		var thresholds []byte
		if tr, ok := s.iface.(ThresholdReader); ok {
			t := make([]byte, LogSize)
			if err := tr.ReadThresholds(t); err == nil {
				thresholds = t
			}
		}
		h, err := DecodeATA(buf, thresholds)
		if err != nil {
			return nil, err
		}
		log.ATA = h
	default:
		return nil, fmt.Errorf("smart %s: unknown kind %q", s.device.Name, s.device.Kind)
	}
	return log, nil
}

// Close releases the native interface. Only the first call does any work.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return nil
	}
	s.state = StateReleased
	err := s.iface.Close()
	s.iface = nil
	release(s.device.Name)
	return err
}

// Manager owns the sessions of one disk collection.
type Manager struct {
	mu       sync.Mutex
	opener   Opener
	logger   *slog.Logger
	sessions map[string]*Session
	failed   map[string]error
	closed   bool
}

// NewManager creates a manager that acquires interfaces through o.
func NewManager(o Opener, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		opener:   o,
		logger:   logger,
		sessions: make(map[string]*Session),
		failed:   make(map[string]error),
	}
}

// Devices lists SMART capable devices.
func (m *Manager) Devices() ([]Device, error) {
	return m.opener.Devices()
}

// Read returns the device's current SMART log. The session is opened on
// first use. If opening ever failed, every later call returns the same
// error without another attempt.
func (m *Manager) Read(dev Device) (*model.SMARTLog, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	if err, ok := m.failed[dev.Name]; ok {
		m.mu.Unlock()
		return nil, err
	}
	s, ok := m.sessions[dev.Name]
	if !ok {
		var err error
		s, err = Open(m.opener, dev)
		if err != nil {
			m.failed[dev.Name] = err
			m.mu.Unlock()
			m.logger.Debug("smart session unavailable", "device", dev.Name, "error", err)
			return nil, err
		}
		m.sessions[dev.Name] = s
	}
	m.mu.Unlock()
	return s.Read()
}

// ReadAll reads every device, skipping those without data.
func (m *Manager) ReadAll() ([]model.SMARTLog, error) {
	devs, err := m.Devices()
	if err != nil {
		return nil, err
	}
	var logs []model.SMARTLog
	for _, d := range devs {
		l, err := m.Read(d)
		if err != nil {
			continue
		}
		logs = append(logs, *l)
	}
	return logs, nil
}

// Close releases every open session. The manager cannot be reused.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	var errs []error
	for name, s := range m.sessions {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close smart %s: %w", name, err))
		}
	}
	m.sessions = nil
	return errors.Join(errs...)
}
