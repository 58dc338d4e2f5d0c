//go:build darwin

package iokit

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/ftahirops/macsense/native/cf"
)

const frameworkPath = "/System/Library/Frameworks/IOKit.framework/IOKit"

// PlaneService is the registry plane drivers attach in.
const PlaneService = "IOService"

// mainPort is kIOMainPortDefault.
const mainPort uint32 = 0

// Object is an io_object_t (service, registry entry or iterator).
type Object uint32

// Connection is an io_connect_t to a driver user client.
type Connection uint32

var (
	loadOnce sync.Once
	loadErr  error

	ioServiceMatching                 func(name string) uintptr
	ioServiceGetMatchingServices      func(port uint32, matching uintptr, iter *uint32) int32
	ioIteratorNext                    func(iter uint32) uint32
	ioObjectRelease                   func(obj uint32) int32
	ioObjectConformsTo                func(obj uint32, class string) bool
	ioObjectGetClass                  func(obj uint32, name unsafe.Pointer) int32
	ioRegistryEntryGetName            func(obj uint32, name unsafe.Pointer) int32
	ioRegistryEntryCreateCFProperties func(obj uint32, props *uintptr, alloc uintptr, opts uint32) int32
	ioRegistryEntryCreateCFProperty   func(obj uint32, key uintptr, alloc uintptr, opts uint32) uintptr
	ioRegistryEntryGetParentEntry     func(obj uint32, plane string, parent *uint32) int32
	ioRegistryEntryGetChildIterator   func(obj uint32, plane string, iter *uint32) int32
	ioServiceOpen                     func(service uint32, task uint32, typ uint32, conn *uint32) int32
	ioServiceClose                    func(conn uint32) int32
	ioConnectCallStructMethod         func(conn uint32, selector uint32, in unsafe.Pointer, inSize uintptr, out unsafe.Pointer, outSize *uintptr) int32
	ioCreatePlugInInterfaceForService func(service uint32, pluginType uintptr, interfaceType uintptr, iface *uintptr, score *int32) int32
	ioDestroyPlugInInterface          func(iface uintptr) int32

	taskSelf uint32
)

// Load opens IOKit (and CoreFoundation) once per process.
func Load() error {
	loadOnce.Do(func() {
		if loadErr = cf.Load(); loadErr != nil {
			return
		}
		handle, err := purego.Dlopen(frameworkPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("dlopen IOKit: %w", err)
			return
		}
		loadErr = cf.Bind(handle, map[string]any{
			"IOServiceMatching":                 &ioServiceMatching,
			"IOServiceGetMatchingServices":      &ioServiceGetMatchingServices,
			"IOIteratorNext":                    &ioIteratorNext,
			"IOObjectRelease":                   &ioObjectRelease,
			"IOObjectConformsTo":                &ioObjectConformsTo,
			"IOObjectGetClass":                  &ioObjectGetClass,
			"IORegistryEntryGetName":            &ioRegistryEntryGetName,
			"IORegistryEntryCreateCFProperties": &ioRegistryEntryCreateCFProperties,
			"IORegistryEntryCreateCFProperty":   &ioRegistryEntryCreateCFProperty,
			"IORegistryEntryGetParentEntry":     &ioRegistryEntryGetParentEntry,
			"IORegistryEntryGetChildIterator":   &ioRegistryEntryGetChildIterator,
			"IOServiceOpen":                     &ioServiceOpen,
			"IOServiceClose":                    &ioServiceClose,
			"IOConnectCallStructMethod":         &ioConnectCallStructMethod,
			"IOCreatePlugInInterfaceForService": &ioCreatePlugInInterfaceForService,
			"IODestroyPlugInInterface":          &ioDestroyPlugInInterface,
		})
		if loadErr != nil {
			return
		}
		// mach_task_self() is a macro over this exported variable.
		libSystem, err := purego.Dlopen("/usr/lib/libSystem.B.dylib", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("dlopen libSystem: %w", err)
			return
		}
		sym, err := purego.Dlsym(libSystem, "mach_task_self_")
		if err != nil {
			loadErr = fmt.Errorf("dlsym mach_task_self_: %w", err)
			return
		}
		taskSelf = *(*uint32)(unsafe.Pointer(sym))
	})
	return loadErr
}

// Release releases the object. Zero objects are ignored.
func (o Object) Release() {
	if o != 0 {
		ioObjectRelease(uint32(o))
	}
}

// Services returns every service matching the IOKit class name. The caller
// releases each returned object.
func Services(class string) ([]Object, error) {
	if err := Load(); err != nil {
		return nil, err
	}
	matching := ioServiceMatching(class)
	if matching == 0 {
		return nil, fmt.Errorf("IOServiceMatching %s failed", class)
	}
	var iter uint32
	// IOServiceGetMatchingServices consumes the matching dictionary.
	if err := Check("IOServiceGetMatchingServices "+class, ioServiceGetMatchingServices(mainPort, matching, &iter)); err != nil {
		return nil, err
	}
	defer Object(iter).Release()
	return drain(iter), nil
}

// EachService calls fn for every service of class, releasing each one
// after fn returns. Iteration stops at the first error.
func EachService(class string, fn func(Object) error) error {
	services, err := Services(class)
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range services {
			s.Release()
		}
	}()
	for _, s := range services {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

// FirstService returns the first service of class or ErrNotFound. The
// caller releases it.
func FirstService(class string) (Object, error) {
	services, err := Services(class)
	if err != nil {
		return 0, err
	}
	if len(services) == 0 {
		return 0, fmt.Errorf("%s: %w", class, ErrNotFound)
	}
	for _, s := range services[1:] {
		s.Release()
	}
	return services[0], nil
}

func drain(iter uint32) []Object {
	var out []Object
	for {
		o := ioIteratorNext(iter)
		if o == 0 {
			return out
		}
		out = append(out, Object(o))
	}
}

// Properties converts the entry's whole property table.
func (o Object) Properties() (cf.Dict, error) {
	var props uintptr
	if err := Check("IORegistryEntryCreateCFProperties", ioRegistryEntryCreateCFProperties(uint32(o), &props, 0, 0)); err != nil {
		return nil, err
	}
	defer cf.Release(cf.Ref(props))
	return cf.ToDict(cf.Ref(props)), nil
}

// Property converts one property, nil when absent.
func (o Object) Property(key string) any {
	k, err := cf.NewString(key)
	if err != nil {
		return nil
	}
	defer cf.Release(k)
	v := ioRegistryEntryCreateCFProperty(uint32(o), uintptr(k), 0, 0)
	if v == 0 {
		return nil
	}
	defer cf.Release(cf.Ref(v))
	return cf.Convert(cf.Ref(v))
}

// Name returns the registry entry name.
func (o Object) Name() string {
	var buf [128]byte // io_name_t
	if ioRegistryEntryGetName(uint32(o), unsafe.Pointer(&buf[0])) != 0 {
		return ""
	}
	return cString(buf[:])
}

// Class returns the object's IOKit class name.
func (o Object) Class() string {
	var buf [128]byte
	if ioObjectGetClass(uint32(o), unsafe.Pointer(&buf[0])) != 0 {
		return ""
	}
	return cString(buf[:])
}

// ConformsTo reports whether the object is an instance of class or a
// subclass.
func (o Object) ConformsTo(class string) bool {
	return ioObjectConformsTo(uint32(o), class)
}

// Parent returns the parent entry in plane. The caller releases it.
func (o Object) Parent(plane string) (Object, error) {
	var parent uint32
	if err := Check("IORegistryEntryGetParentEntry", ioRegistryEntryGetParentEntry(uint32(o), plane, &parent)); err != nil {
		return 0, err
	}
	return Object(parent), nil
}

// Children returns the child entries in plane. The caller releases each.
func (o Object) Children(plane string) ([]Object, error) {
	var iter uint32
	if err := Check("IORegistryEntryGetChildIterator", ioRegistryEntryGetChildIterator(uint32(o), plane, &iter)); err != nil {
		return nil, err
	}
	defer Object(iter).Release()
	return drain(iter), nil
}

// FindAncestor walks up the plane until an entry conforming to class is
// found. The caller releases the result; o itself is untouched.
func (o Object) FindAncestor(plane, class string) (Object, error) {
	cur, err := o.Parent(plane)
	for err == nil {
		if cur.ConformsTo(class) {
			return cur, nil
		}
		next, perr := cur.Parent(plane)
		cur.Release()
		cur, err = next, perr
	}
	return 0, fmt.Errorf("%s ancestor: %w", class, ErrNotFound)
}

// Open opens a user-client connection of the given type.
func (o Object) Open(typ uint32) (Connection, error) {
	var conn uint32
	if err := Check("IOServiceOpen", ioServiceOpen(uint32(o), taskSelf, typ, &conn)); err != nil {
		return 0, err
	}
	return Connection(conn), nil
}

// Close closes the connection. Zero connections are ignored.
func (c Connection) Close() {
	if c != 0 {
		ioServiceClose(uint32(c))
	}
}

// CallStruct invokes a struct-in/struct-out external method.
func (c Connection) CallStruct(selector uint32, in unsafe.Pointer, inSize uintptr, out unsafe.Pointer, outSize uintptr) error {
	size := outSize
	return Check("IOConnectCallStructMethod", ioConnectCallStructMethod(uint32(c), selector, in, inSize, out, &size))
}

// PlugIn creates a CFPlugIn interface for the service. The result is an
// IOCFPlugInInterface** that must be passed to DestroyPlugIn.
func (o Object) PlugIn(pluginType, interfaceType string) (uintptr, error) {
	pt, err := cf.NewUUID(pluginType)
	if err != nil {
		return 0, err
	}
	defer cf.Release(pt)
	it, err := cf.NewUUID(interfaceType)
	if err != nil {
		return 0, err
	}
	defer cf.Release(it)

	var iface uintptr
	var score int32
	if err := Check("IOCreatePlugInInterfaceForService", ioCreatePlugInInterfaceForService(uint32(o), uintptr(pt), uintptr(it), &iface, &score)); err != nil {
		return 0, err
	}
	if iface == 0 {
		return 0, fmt.Errorf("IOCreatePlugInInterfaceForService: %w", ErrNotFound)
	}
	return iface, nil
}

// DestroyPlugIn releases an interface obtained from PlugIn.
func DestroyPlugIn(iface uintptr) {
	if iface != 0 {
		ioDestroyPlugInInterface(iface)
	}
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
