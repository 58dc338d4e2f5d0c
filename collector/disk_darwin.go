//go:build darwin

package collector

import (
	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/iokit"
)

const (
	storageDriverClass = "IOBlockStorageDriver"
	mediaClass         = "IOMedia"
)

func readDisks() ([]model.DiskDevice, error) {
	var disks []model.DiskDevice
	err := iokit.EachService(storageDriverClass, func(drv iokit.Object) error {
		driverProps, err := drv.Properties()
		if err != nil {
			return nil
		}
		media, ok := wholeMedia(drv)
		if !ok {
			return nil
		}
		defer media.Release()
		mediaProps, err := media.Properties()
		if err != nil {
			return nil
		}

		parent, err := drv.Parent(iokit.PlaneService)
		if err != nil {
			return nil
		}
		defer parent.Release()
		deviceProps, _ := parent.Properties()

		disks = append(disks, diskFromProps(mediaProps, driverProps, deviceProps))
		return nil
	})
	return disks, err
}

// wholeMedia returns the driver's whole-disk IOMedia child.
func wholeMedia(drv iokit.Object) (iokit.Object, bool) {
	children, err := drv.Children(iokit.PlaneService)
	if err != nil {
		return 0, false
	}
	var found iokit.Object
	for _, c := range children {
		if found == 0 && c.ConformsTo(mediaClass) {
			if whole, _ := c.Property("Whole").(bool); whole {
				found = c
				continue
			}
		}
		c.Release()
	}
	return found, found != 0
}
