//go:build darwin

package collector

import (
	"fmt"
	"syscall"

	"golang.org/x/net/route"

	"github.com/ftahirops/macsense/model"
)

// netRtIfList2 is NET_RT_IFLIST2, which reports 64-bit counters.
const netRtIfList2 route.RIBType = 6

func readInterfaces() ([]model.NetInterface, error) {
	rib, err := route.FetchRIB(syscall.AF_UNSPEC, netRtIfList2, 0)
	if err != nil {
		return nil, fmt.Errorf("sysctl NET_RT_IFLIST2: %w", err)
	}
	return parseIfList2(rib)
}
