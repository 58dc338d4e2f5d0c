package util

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
)

// CString returns the bytes of b up to the first NUL as a string.
func CString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// TrimCString is CString with surrounding whitespace removed. Firmware
// strings (model, serial) are space padded.
func TrimCString(b []byte) string {
	return strings.TrimSpace(CString(b))
}

// FourCC packs a four-character code into a big-endian uint32.
// Shorter codes are padded with spaces.
func FourCC(s string) uint32 {
	var b [4]byte
	for i := range b {
		if i < len(s) {
			b[i] = s[i]
		} else {
			b[i] = ' '
		}
	}
	return binary.BigEndian.Uint32(b[:])
}

// FourCCString unpacks a big-endian four-character code.
func FourCCString(v uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return string(b[:])
}

// ParseUint64 parses a string to uint64, returning 0 on error.
func ParseUint64(s string) uint64 {
	v, _ := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	return v
}

// ParseInt parses a string to int, returning 0 on error.
func ParseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// Uint128LE decodes a 16-byte little-endian counter, saturating at the
// uint64 maximum when the high half is nonzero.
func Uint128LE(b []byte) uint64 {
	if len(b) < 16 {
		return 0
	}
	if binary.LittleEndian.Uint64(b[8:16]) != 0 {
		return ^uint64(0)
	}
	return binary.LittleEndian.Uint64(b[0:8])
}

// Uint48LE decodes a 6-byte little-endian value.
func Uint48LE(b []byte) uint64 {
	if len(b) < 6 {
		return 0
	}
	var v uint64
	for i := 5; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
