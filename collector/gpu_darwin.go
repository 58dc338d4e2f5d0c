//go:build darwin

package collector

import (
	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/cf"
	"github.com/ftahirops/macsense/native/iokit"
)

func readGPUs() ([]model.GPUInfo, error) {
	var gpus []model.GPUInfo
	err := iokit.EachService("IOAccelerator", func(accel iokit.Object) error {
		props, err := accel.Properties()
		if err != nil {
			return nil
		}
		pciProps := cf.Dict{}
		if pci, err := accel.FindAncestor(iokit.PlaneService, "IOPCIDevice"); err == nil {
			pciProps, _ = pci.Properties()
			pci.Release()
		}
		gpus = append(gpus, gpuFromProps(props, pciProps))
		return nil
	})
	return gpus, err
}
