// Package smc talks to the System Management Controller through the
// AppleSMC user client and decodes its typed key values.
package smc

import (
	"errors"
	"fmt"

	"github.com/ftahirops/macsense/util"
)

// ErrKeyNotFound is returned when the SMC does not know a key.
var ErrKeyNotFound = errors.New("smc: key not found")

// User client selectors and commands.
const (
	kernelIndexSMC uint32 = 2

	cmdReadBytes   uint8 = 5
	cmdReadIndex   uint8 = 8
	cmdReadKeyInfo uint8 = 9

	// result byte reported for unknown keys
	resultKeyNotFound uint8 = 0x84
)

type keyDataVers struct {
	Major    uint8
	Minor    uint8
	Build    uint8
	Reserved uint8
	Release  uint16
}

type keyDataPLimit struct {
	Version   uint16
	Length    uint16
	CPUPLimit uint32
	GPUPLimit uint32
	MemPLimit uint32
}

type keyInfo struct {
	DataSize       uint32
	DataType       uint32
	DataAttributes uint8
}

// keyData mirrors SMCKeyData_t, the 80-byte structure exchanged with
// the user client in both directions.
type keyData struct {
	Key     uint32
	Vers    keyDataVers
	PLimit  keyDataPLimit
	KeyInfo keyInfo
	Result  uint8
	Status  uint8
	Data8   uint8
	Data32  uint32
	Bytes   [32]byte
}

// Value is a raw key value with its declared type.
type Value struct {
	Key      string
	DataType string
	Bytes    []byte
}

// Reader reads SMC keys. The darwin implementation is Conn.
type Reader interface {
	// KeyCount returns the number of keys the SMC exposes.
	KeyCount() (int, error)
	// KeyAt returns the key at index.
	KeyAt(index int) (string, error)
	// Read returns the value of key.
	Read(key string) (Value, error)
	Close() error
}

func checkKey(key string) error {
	if len(key) != 4 {
		return fmt.Errorf("smc: key %q must be four characters", key)
	}
	return nil
}

func encodeKey(key string) uint32 { return util.FourCC(key) }

func decodeKey(v uint32) string { return util.FourCCString(v) }
