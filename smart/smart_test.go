package smart

import (
	"errors"
	"sync"
	"testing"

	"github.com/ftahirops/macsense/model"
)

type fakeIface struct {
	mu      sync.Mutex
	data    []byte
	readErr error
	reads   int
	closes  int
}

func (f *fakeIface) Read(buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.readErr != nil {
		return f.readErr
	}
	copy(buf, f.data)
	return nil
}

func (f *fakeIface) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

type fakeOpener struct {
	devs   []Device
	ifaces map[string]*fakeIface
	fail   map[string]error
	opens  map[string]int
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{
		ifaces: make(map[string]*fakeIface),
		fail:   make(map[string]error),
		opens:  make(map[string]int),
	}
}

func (o *fakeOpener) Devices() ([]Device, error) { return o.devs, nil }

func (o *fakeOpener) Open(dev Device) (Interface, error) {
	o.opens[dev.Name]++
	if err := o.fail[dev.Name]; err != nil {
		return nil, err
	}
	f, ok := o.ifaces[dev.Name]
	if !ok {
		return nil, nil
	}
	return f, nil
}

func nvmeDevice(name string) Device {
	return Device{Name: name, Model: "APPLE SSD", Kind: model.SMARTNVMe}
}

func TestSessionLifecycle(t *testing.T) {
	o := newFakeOpener()
	f := &fakeIface{data: nvmeLog()}
	o.ifaces["disk90"] = f

	s, err := Open(o, nvmeDevice("disk90"))
	if err != nil {
		t.Fatal(err)
	}
	if s.State() != StateOpen {
		t.Fatalf("state = %v, want open", s.State())
	}
	log, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if log.NVMe == nil || log.NVMe.PowerOnHours != 777 || log.Device != "disk90" {
		t.Errorf("log = %+v", log)
	}
	if len(log.Raw) != LogSize {
		t.Errorf("raw = %d bytes", len(log.Raw))
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if f.closes != 1 {
		t.Errorf("native close called %d times, want 1", f.closes)
	}
	if s.State() != StateReleased {
		t.Errorf("state = %v, want released", s.State())
	}
	if _, err := s.Read(); !errors.Is(err, ErrClosed) {
		t.Errorf("read after close = %v, want ErrClosed", err)
	}
}

func TestSessionReadFailureIsRetryable(t *testing.T) {
	o := newFakeOpener()
	f := &fakeIface{data: nvmeLog(), readErr: errors.New("io error")}
	o.ifaces["disk91"] = f

	s, err := Open(o, nvmeDevice("disk91"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Read(); err == nil {
		t.Fatal("expected read error")
	}
	if s.State() != StateOpen {
		t.Fatalf("failed read changed state to %v", s.State())
	}
	f.readErr = nil
	if _, err := s.Read(); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestOneSessionPerDevice(t *testing.T) {
	o := newFakeOpener()
	o.ifaces["disk92"] = &fakeIface{data: nvmeLog()}

	s, err := Open(o, nvmeDevice("disk92"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Open(o, nvmeDevice("disk92")); !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("second open = %v, want ErrAlreadyOpen", err)
	}
	s.Close()
	s2, err := Open(o, nvmeDevice("disk92"))
	if err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
	s2.Close()
}

func TestOpenNotCapable(t *testing.T) {
	o := newFakeOpener()
	if _, err := Open(o, nvmeDevice("disk93")); !errors.Is(err, ErrNotCapable) {
		t.Fatalf("err = %v, want ErrNotCapable", err)
	}
	// A failed open must not hold the device.
	o.ifaces["disk93"] = &fakeIface{data: nvmeLog()}
	s, err := Open(o, nvmeDevice("disk93"))
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
}

func TestManagerRemembersFailedOpen(t *testing.T) {
	o := newFakeOpener()
	o.fail["disk94"] = errors.New("kIOReturnNotPrivileged")
	m := NewManager(o, nil)
	defer m.Close()

	dev := nvmeDevice("disk94")
	for i := 0; i < 3; i++ {
		if log, err := m.Read(dev); err == nil || log != nil {
			t.Fatalf("read %d returned data", i)
		}
	}
	if o.opens["disk94"] != 1 {
		t.Errorf("open attempted %d times, want 1", o.opens["disk94"])
	}
}

func TestManagerReusesSessionAndCloses(t *testing.T) {
	o := newFakeOpener()
	f := &fakeIface{data: ataData()}
	o.ifaces["disk95"] = f
	ok := &fakeIface{data: nvmeLog()}
	o.ifaces["disk96"] = ok
	o.devs = []Device{
		{Name: "disk95", Kind: model.SMARTATA},
		nvmeDevice("disk96"),
		nvmeDevice("disk97"), // no interface
	}
	m := NewManager(o, nil)

	logs, err := m.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(logs))
	}
	if logs[0].ATA == nil || logs[0].ATA.PowerOnHours() != 12345 {
		t.Errorf("ata log = %+v", logs[0])
	}
	if logs[0].ATA.ThresholdsKnown {
		t.Error("fake without thresholds reported them")
	}

	f.readErr = errors.New("transient")
	if _, err := m.ReadAll(); err != nil {
		t.Fatal(err)
	}
	if o.opens["disk95"] != 1 || o.opens["disk96"] != 1 {
		t.Errorf("opens = %v, want one per device", o.opens)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if f.closes != 1 || ok.closes != 1 {
		t.Errorf("closes = %d/%d, want 1/1", f.closes, ok.closes)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Read(nvmeDevice("disk96")); !errors.Is(err, ErrClosed) {
		t.Errorf("read after manager close = %v", err)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{StateUnopened: "unopened", StateOpen: "open", StateReleased: "released"} {
		if s.String() != want {
			t.Errorf("%d = %q", s, s.String())
		}
	}
}
