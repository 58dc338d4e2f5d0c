//go:build !darwin

package mach

import "github.com/ftahirops/macsense/util"

// HostVMInfo64 is only available on darwin.
func HostVMInfo64() (VMStatistics64, error) {
	return VMStatistics64{}, util.ErrUnsupported
}

// CPULoadInfo is only available on darwin.
func CPULoadInfo() ([]CPULoad, error) {
	return nil, util.ErrUnsupported
}
