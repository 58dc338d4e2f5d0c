// Package cf converts CoreFoundation property lists into Go values.
//
// CFString, CFNumber, CFBoolean, CFData, CFArray and CFDictionary map to
// string, int64 or float64, bool, []byte, []any and Dict. Everything else
// converts to nil. The conversion itself only exists on darwin; Dict and its
// accessors are portable so decoders built on them can be tested anywhere.
package cf

import (
	"github.com/spf13/cast"
)

// Dict is a converted CFDictionary with string keys.
type Dict map[string]any

// Has reports whether key is present.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the value for key as a string. Byte values are treated
// as NUL-terminated C strings, which is how IOKit publishes several model
// and serial properties.
func (d Dict) String(key string) string {
	v, ok := d[key]
	if !ok {
		return ""
	}
	if b, ok := v.([]byte); ok {
		for i, c := range b {
			if c == 0 {
				return string(b[:i])
			}
		}
		return string(b)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// Int returns the value for key as an int64, or 0.
func (d Dict) Int(key string) int64 {
	v, ok := d[key]
	if !ok {
		return 0
	}
	if b, ok := v.([]byte); ok {
		return int64(leUint(b))
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return n
}

// Uint returns the value for key as a uint64. Negative numbers become 0.
func (d Dict) Uint(key string) uint64 {
	if u, ok := d[key].(uint64); ok {
		return u
	}
	n := d.Int(key)
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// Float returns the value for key as a float64, or 0.
func (d Dict) Float(key string) float64 {
	v, ok := d[key]
	if !ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// Bool returns the value for key as a bool. Numbers are true when nonzero;
// "Yes"/"No" strings (some IOKit drivers) are understood.
func (d Dict) Bool(key string) bool {
	v, ok := d[key]
	if !ok {
		return false
	}
	if s, ok := v.(string); ok {
		switch s {
		case "Yes", "YES", "yes":
			return true
		case "No", "NO", "no":
			return false
		}
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// Bytes returns a CFData value.
func (d Dict) Bytes(key string) []byte {
	b, _ := d[key].([]byte)
	return b
}

// Dict returns a nested dictionary, or an empty one.
func (d Dict) Dict(key string) Dict {
	switch v := d[key].(type) {
	case Dict:
		return v
	case map[string]any:
		return Dict(v)
	}
	return Dict{}
}

// Array returns a nested array.
func (d Dict) Array(key string) []any {
	a, _ := d[key].([]any)
	return a
}

// IntOr returns the value for key, or def when the key is absent.
func (d Dict) IntOr(key string, def int64) int64 {
	if !d.Has(key) {
		return def
	}
	return d.Int(key)
}

// leUint decodes up to eight little-endian bytes; IOKit publishes some
// integer properties (gpu-core-count, vendor-id) as raw CFData.
func leUint(b []byte) uint64 {
	if len(b) > 8 {
		b = b[:8]
	}
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
