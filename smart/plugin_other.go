//go:build !darwin

package smart

import "github.com/ftahirops/macsense/util"

// NativeOpener finds no devices outside macOS.
type NativeOpener struct{}

// NewNativeOpener returns an opener with no devices.
func NewNativeOpener() Opener { return NativeOpener{} }

func (NativeOpener) Devices() ([]Device, error) { return nil, nil }

func (NativeOpener) Open(Device) (Interface, error) { return nil, util.ErrUnsupported }
