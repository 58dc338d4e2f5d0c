//go:build darwin

package smart

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/google/uuid"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/iokit"
)

const (
	blockDeviceClass = "IOBlockStorageDevice"
	mediaClass       = "IOMedia"

	propNVMeCapable = "NVMe SMART Capable"
	propATACapable  = "SMART Capable"
)

// COM vtable slot offsets. Slot 0 is a reserved pointer in IOKit plugin
// interfaces, so IUnknown begins at 8.
const (
	vtQueryInterface = 8
	vtRelease        = 24

	vtNVMeReadData = 40

	vtATAEnableDisable  = 40
	vtATAReadData       = 72
	vtATAReadThresholds = 88
)

// NativeOpener discovers SMART capable disks in the IOKit registry and
// acquires their plugin interfaces.
type NativeOpener struct{}

// NewNativeOpener returns the IOKit backed opener.
func NewNativeOpener() Opener { return NativeOpener{} }

// Devices lists block storage devices advertising a SMART interface.
func (NativeOpener) Devices() ([]Device, error) {
	var devs []Device
	err := iokit.EachService(blockDeviceClass, func(svc iokit.Object) error {
		d, ok := describe(svc)
		if ok {
			devs = append(devs, d)
		}
		return nil
	})
	return devs, err
}

// Open creates the plugin and queries the kind-specific interface.
func (NativeOpener) Open(dev Device) (Interface, error) {
	var iface Interface
	errFound := errors.New("found")
	err := iokit.EachService(blockDeviceClass, func(svc iokit.Object) error {
		d, ok := describe(svc)
		if !ok || d.Name != dev.Name {
			return nil
		}
		var err error
		iface, err = openPlugin(svc, d.Kind)
		if err != nil {
			return err
		}
		return errFound
	})
	if errors.Is(err, errFound) {
		return iface, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%s: %w", dev.Name, ErrNotCapable)
}

func describe(svc iokit.Object) (Device, bool) {
	props, err := svc.Properties()
	if err != nil {
		return Device{}, false
	}
	var kind model.SMARTKind
	switch {
	case props.Bool(propNVMeCapable):
		kind = model.SMARTNVMe
	case props.Bool(propATACapable):
		kind = model.SMARTATA
	default:
		return Device{}, false
	}
	name := wholeMediaName(svc, 4)
	if name == "" {
		return Device{}, false
	}
	return Device{
		Name:  name,
		Model: props.Dict("Device Characteristics").String("Product Name"),
		Kind:  kind,
	}, true
}

// wholeMediaName finds the BSD name of the whole-disk IOMedia below o.
func wholeMediaName(o iokit.Object, depth int) string {
	if depth == 0 {
		return ""
	}
	children, err := o.Children(iokit.PlaneService)
	if err != nil {
		return ""
	}
	defer func() {
		for _, c := range children {
			c.Release()
		}
	}()
	for _, c := range children {
		if c.ConformsTo(mediaClass) {
			if whole, _ := c.Property("Whole").(bool); whole {
				if name, _ := c.Property("BSD Name").(string); name != "" {
					return name
				}
			}
		}
		if name := wholeMediaName(c, depth-1); name != "" {
			return name
		}
	}
	return ""
}

func openPlugin(svc iokit.Object, kind model.SMARTKind) (Interface, error) {
	clientType, ifaceID := nvmeUserClientTypeID, nvmeInterfaceID
	if kind == model.SMARTATA {
		clientType, ifaceID = ataUserClientTypeID, ataInterfaceID
	}
	plugin, err := svc.PlugIn(cfString(clientType), cfString(cfPlugInInterfaceID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCapable, err)
	}
	iface, err := queryInterface(plugin, ifaceID)
	if err != nil {
		iokit.DestroyPlugIn(plugin)
		return nil, err
	}
	p := &pluginInterface{kind: kind, plugin: plugin, iface: iface}
	if kind == model.SMARTATA {
		if err := p.call(vtATAEnableDisable, 1); err != nil {
			p.Close()
			return nil, fmt.Errorf("enable ata smart: %w", err)
		}
	}
	return p, nil
}

// method loads the function pointer at a vtable offset of a COM style
// object (a pointer to a pointer to the vtable).
func method(obj uintptr, offset uintptr) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtbl + offset))
}

func queryInterface(plugin uintptr, id uuid.UUID) (uintptr, error) {
	lo, hi := iidWords(id)
	var out uintptr
	r, _, _ := purego.SyscallN(method(plugin, vtQueryInterface), plugin, lo, hi, uintptr(unsafe.Pointer(&out)))
	if int32(r) != 0 || out == 0 {
		return 0, fmt.Errorf("QueryInterface %s: HRESULT 0x%08x", cfString(id), uint32(r))
	}
	return out, nil
}

// pluginInterface adapts an IONVMeSMARTInterface** or IOATASMARTInterface**.
type pluginInterface struct {
	mu     sync.Mutex
	kind   model.SMARTKind
	plugin uintptr
	iface  uintptr
}

func (p *pluginInterface) call(offset uintptr, args ...uintptr) error {
	r, _, _ := purego.SyscallN(method(p.iface, offset), append([]uintptr{p.iface}, args...)...)
	return iokit.Check("smart plugin call", int32(r))
}

func (p *pluginInterface) Read(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.iface == 0 {
		return ErrClosed
	}
	if len(buf) < LogSize {
		return fmt.Errorf("smart buffer %d bytes, want %d", len(buf), LogSize)
	}
	offset := uintptr(vtNVMeReadData)
	if p.kind == model.SMARTATA {
		offset = vtATAReadData
	}
	return p.call(offset, uintptr(unsafe.Pointer(&buf[0])))
}

func (p *pluginInterface) ReadThresholds(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.iface == 0 {
		return ErrClosed
	}
	if p.kind != model.SMARTATA {
		return ErrNotCapable
	}
	if len(buf) < LogSize {
		return fmt.Errorf("smart buffer %d bytes, want %d", len(buf), LogSize)
	}
	return p.call(vtATAReadThresholds, uintptr(unsafe.Pointer(&buf[0])))
}

func (p *pluginInterface) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.iface != 0 {
		purego.SyscallN(method(p.iface, vtRelease), p.iface)
		p.iface = 0
	}
	if p.plugin != 0 {
		iokit.DestroyPlugIn(p.plugin)
		p.plugin = 0
	}
	return nil
}

var _ ThresholdReader = (*pluginInterface)(nil)
