//go:build darwin

package cf

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

const frameworkPath = "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation"

const (
	encodingUTF8  uint32 = 0x08000100
	numberSInt64  int    = 4
	numberFloat64 int    = 6
)

// Ref is a CFTypeRef.
type Ref uintptr

var (
	loadOnce sync.Once
	loadErr  error
	handle   uintptr

	cfRelease                      func(uintptr)
	cfGetTypeID                    func(uintptr) uint
	cfStringGetTypeID              func() uint
	cfNumberGetTypeID              func() uint
	cfBooleanGetTypeID             func() uint
	cfDataGetTypeID                func() uint
	cfArrayGetTypeID               func() uint
	cfDictionaryGetTypeID          func() uint
	cfStringCreateWithCString      func(alloc uintptr, s string, enc uint32) uintptr
	cfStringGetLength              func(s uintptr) int
	cfStringGetMaximumSizeForEnc   func(length int, enc uint32) int
	cfStringGetCString             func(s uintptr, buf unsafe.Pointer, size int, enc uint32) bool
	cfNumberGetValue               func(n uintptr, typ int, out unsafe.Pointer) bool
	cfNumberIsFloatType            func(n uintptr) bool
	cfBooleanGetValue              func(b uintptr) bool
	cfDataGetLength                func(d uintptr) int
	cfDataGetBytePtr               func(d uintptr) uintptr
	cfArrayGetCount                func(a uintptr) int
	cfArrayGetValueAtIndex         func(a uintptr, i int) uintptr
	cfDictionaryGetCount           func(d uintptr) int
	cfDictionaryGetKeysAndValues   func(d uintptr, keys, values unsafe.Pointer)
	cfDictionaryGetValue           func(d uintptr, key uintptr) uintptr
	cfUUIDCreateFromString         func(alloc uintptr, s uintptr) uintptr
)

// Load opens CoreFoundation and binds the functions this package uses. It
// is safe to call repeatedly; the work happens once per process.
func Load() error {
	loadOnce.Do(func() {
		handle, loadErr = purego.Dlopen(frameworkPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if loadErr != nil {
			loadErr = fmt.Errorf("dlopen CoreFoundation: %w", loadErr)
			return
		}
		loadErr = Bind(handle, map[string]any{
			"CFRelease":                         &cfRelease,
			"CFGetTypeID":                       &cfGetTypeID,
			"CFStringGetTypeID":                 &cfStringGetTypeID,
			"CFNumberGetTypeID":                 &cfNumberGetTypeID,
			"CFBooleanGetTypeID":                &cfBooleanGetTypeID,
			"CFDataGetTypeID":                   &cfDataGetTypeID,
			"CFArrayGetTypeID":                  &cfArrayGetTypeID,
			"CFDictionaryGetTypeID":             &cfDictionaryGetTypeID,
			"CFStringCreateWithCString":         &cfStringCreateWithCString,
			"CFStringGetLength":                 &cfStringGetLength,
			"CFStringGetMaximumSizeForEncoding": &cfStringGetMaximumSizeForEnc,
			"CFStringGetCString":                &cfStringGetCString,
			"CFNumberGetValue":                  &cfNumberGetValue,
			"CFNumberIsFloatType":               &cfNumberIsFloatType,
			"CFBooleanGetValue":                 &cfBooleanGetValue,
			"CFDataGetLength":                   &cfDataGetLength,
			"CFDataGetBytePtr":                  &cfDataGetBytePtr,
			"CFArrayGetCount":                   &cfArrayGetCount,
			"CFArrayGetValueAtIndex":            &cfArrayGetValueAtIndex,
			"CFDictionaryGetCount":              &cfDictionaryGetCount,
			"CFDictionaryGetKeysAndValues":      &cfDictionaryGetKeysAndValues,
			"CFDictionaryGetValue":              &cfDictionaryGetValue,
			"CFUUIDCreateFromString":            &cfUUIDCreateFromString,
		})
	})
	return loadErr
}

// Bind resolves each symbol in handle and registers it into the function
// pointer it maps to. A missing symbol is an error rather than a panic.
func Bind(handle uintptr, funcs map[string]any) error {
	for name, fptr := range funcs {
		sym, err := purego.Dlsym(handle, name)
		if err != nil {
			return fmt.Errorf("dlsym %s: %w", name, err)
		}
		purego.RegisterFunc(fptr, sym)
	}
	return nil
}

// Release drops one reference. A zero ref is ignored.
func Release(r Ref) {
	if r != 0 {
		cfRelease(uintptr(r))
	}
}

// NewString creates a CFString the caller must Release.
func NewString(s string) (Ref, error) {
	if err := Load(); err != nil {
		return 0, err
	}
	r := cfStringCreateWithCString(0, s, encodingUTF8)
	if r == 0 {
		return 0, fmt.Errorf("CFStringCreateWithCString %q failed", s)
	}
	return Ref(r), nil
}

// NewUUID creates a CFUUID from its canonical string form. The caller
// must Release it.
func NewUUID(s string) (Ref, error) {
	str, err := NewString(s)
	if err != nil {
		return 0, err
	}
	defer Release(str)
	r := cfUUIDCreateFromString(0, uintptr(str))
	if r == 0 {
		return 0, fmt.Errorf("CFUUIDCreateFromString %q failed", s)
	}
	return Ref(r), nil
}

// GoString copies a CFString into a Go string.
func GoString(r Ref) string {
	if r == 0 {
		return ""
	}
	n := cfStringGetLength(uintptr(r))
	size := cfStringGetMaximumSizeForEnc(n, encodingUTF8) + 1
	buf := make([]byte, size)
	if !cfStringGetCString(uintptr(r), unsafe.Pointer(&buf[0]), size, encodingUTF8) {
		return ""
	}
	for i, c := range buf {
		if c == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// DictValue looks up a string key in a CFDictionary without converting
// the whole dictionary. The result is borrowed, not owned.
func DictValue(dict Ref, key string) (Ref, error) {
	k, err := NewString(key)
	if err != nil {
		return 0, err
	}
	defer Release(k)
	return Ref(cfDictionaryGetValue(uintptr(dict), uintptr(k))), nil
}

// ToDict converts a CFDictionary into a Dict. Non-dictionaries yield an
// empty Dict. The ref is borrowed.
func ToDict(r Ref) Dict {
	if d, ok := Convert(r).(Dict); ok {
		return d
	}
	return Dict{}
}

// Convert recursively converts a CF property-list value. The ref is
// borrowed; nothing is released.
func Convert(r Ref) any {
	if r == 0 {
		return nil
	}
	p := uintptr(r)
	switch cfGetTypeID(p) {
	case cfStringGetTypeID():
		return GoString(r)
	case cfBooleanGetTypeID():
		return cfBooleanGetValue(p)
	case cfNumberGetTypeID():
		if cfNumberIsFloatType(p) {
			var f float64
			cfNumberGetValue(p, numberFloat64, unsafe.Pointer(&f))
			return f
		}
		var n int64
		cfNumberGetValue(p, numberSInt64, unsafe.Pointer(&n))
		return n
	case cfDataGetTypeID():
		n := cfDataGetLength(p)
		ptr := cfDataGetBytePtr(p)
		if n <= 0 || ptr == 0 {
			return []byte{}
		}
		out := make([]byte, n)
		copy(out, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
		return out
	case cfArrayGetTypeID():
		n := cfArrayGetCount(p)
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, Convert(Ref(cfArrayGetValueAtIndex(p, i))))
		}
		return out
	case cfDictionaryGetTypeID():
		n := cfDictionaryGetCount(p)
		out := make(Dict, n)
		if n == 0 {
			return out
		}
		keys := make([]uintptr, n)
		values := make([]uintptr, n)
		cfDictionaryGetKeysAndValues(p, unsafe.Pointer(&keys[0]), unsafe.Pointer(&values[0]))
		for i := range keys {
			if cfGetTypeID(keys[i]) != cfStringGetTypeID() {
				continue
			}
			out[GoString(Ref(keys[i]))] = Convert(Ref(values[i]))
		}
		return out
	}
	return nil
}
