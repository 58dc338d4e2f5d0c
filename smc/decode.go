package smc

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decode converts a raw value to a number according to its data type.
//
// Supported types: "flt " (little-endian float32, Apple Silicon), "ui8 ",
// "ui16", "ui32", "ui64", "si8 ", "si16", "si32", "si64" (big-endian
// integers), "flag", and the fixed point families "fpXY" (unsigned) and
// "spXY" (signed), where X and Y are hex digits giving integer and
// fraction bit counts of a big-endian 16-bit word.
func Decode(v Value) (float64, error) {
	b := v.Bytes
	t := v.DataType
	need := func(n int) error {
		if len(b) < n {
			return fmt.Errorf("smc: %s type %q needs %d bytes, got %d", v.Key, t, n, len(b))
		}
		return nil
	}
	switch t {
	case "flt ":
		if err := need(4); err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	case "ui8 ", "flag":
		if err := need(1); err != nil {
			return 0, err
		}
		return float64(b[0]), nil
	case "ui16":
		if err := need(2); err != nil {
			return 0, err
		}
		return float64(binary.BigEndian.Uint16(b)), nil
	case "ui32":
		if err := need(4); err != nil {
			return 0, err
		}
		return float64(binary.BigEndian.Uint32(b)), nil
	case "ui64":
		if err := need(8); err != nil {
			return 0, err
		}
		return float64(binary.BigEndian.Uint64(b)), nil
	case "si8 ":
		if err := need(1); err != nil {
			return 0, err
		}
		return float64(int8(b[0])), nil
	case "si16":
		if err := need(2); err != nil {
			return 0, err
		}
		return float64(int16(binary.BigEndian.Uint16(b))), nil
	case "si32":
		if err := need(4); err != nil {
			return 0, err
		}
		return float64(int32(binary.BigEndian.Uint32(b))), nil
	case "si64":
		if err := need(8); err != nil {
			return 0, err
		}
		return float64(int64(binary.BigEndian.Uint64(b))), nil
	}

	if signed, frac, ok := fixedPoint(t); ok {
		if err := need(2); err != nil {
			return 0, err
		}
		raw := binary.BigEndian.Uint16(b)
		scale := float64(uint32(1) << frac)
		if signed {
			return float64(int16(raw)) / scale, nil
		}
		return float64(raw) / scale, nil
	}
	return 0, fmt.Errorf("smc: %s has unsupported data type %q", v.Key, t)
}

// fixedPoint parses "fpXY"/"spXY" into signedness and fraction bits.
// Integer plus fraction bits (plus sign) must fit in 16.
func fixedPoint(t string) (signed bool, frac uint, ok bool) {
	if len(t) != 4 {
		return false, 0, false
	}
	switch t[:2] {
	case "fp":
	case "sp":
		signed = true
	default:
		return false, 0, false
	}
	ib, err1 := strconv.ParseUint(strings.ToLower(t[2:3]), 16, 8)
	fb, err2 := strconv.ParseUint(strings.ToLower(t[3:4]), 16, 8)
	if err1 != nil || err2 != nil {
		return false, 0, false
	}
	bits := ib + fb
	if signed {
		bits++
	}
	if bits != 16 {
		return false, 0, false
	}
	return signed, uint(fb), true
}

// DecodeString returns character-typed values ("ch8*") as text.
func DecodeString(v Value) string {
	end := len(v.Bytes)
	for i, c := range v.Bytes {
		if c == 0 {
			end = i
			break
		}
	}
	return strings.TrimSpace(string(v.Bytes[:end]))
}
