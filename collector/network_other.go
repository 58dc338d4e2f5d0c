//go:build !darwin

package collector

import (
	"github.com/shirou/gopsutil/v4/net"

	"github.com/ftahirops/macsense/model"
)

func readInterfaces() ([]model.NetInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	counters, err := net.IOCounters(true)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]net.IOCountersStat, len(counters))
	for _, c := range counters {
		byName[c.Name] = c
	}
	out := make([]model.NetInterface, 0, len(ifaces))
	for _, i := range ifaces {
		c := byName[i.Name]
		out = append(out, model.NetInterface{
			Name:         i.Name,
			Index:        i.Index,
			Flags:        model.ParseFlagNames(i.Flags),
			MTU:          uint32(i.MTU),
			HardwareAddr: i.HardwareAddr,
			Counters: model.NetCounters{
				RxBytes:   c.BytesRecv,
				TxBytes:   c.BytesSent,
				RxPackets: c.PacketsRecv,
				TxPackets: c.PacketsSent,
				RxErrors:  c.Errin,
				TxErrors:  c.Errout,
				RxDrops:   c.Dropin,
				TxDrops:   c.Dropout,
			},
		})
	}
	return out, nil
}
