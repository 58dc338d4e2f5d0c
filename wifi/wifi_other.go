//go:build !darwin

package wifi

import (
	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/util"
)

// Read reports Wi-Fi as unsupported outside macOS.
func Read(bool) (model.WiFiInfo, error) {
	return model.WiFiInfo{}, util.ErrUnsupported
}
