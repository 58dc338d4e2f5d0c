package collector

import (
	"encoding/binary"
	"fmt"
	"net"
	"sort"

	"github.com/ftahirops/macsense/model"
)

// NetworkCollector reads per-interface flags and 64-bit counters.
type NetworkCollector struct{}

func (n *NetworkCollector) Name() string { return "network" }

func (n *NetworkCollector) Collect(snap *model.Snapshot) error {
	ifaces, err := readInterfaces()
	if err != nil {
		return err
	}
	sort.Slice(ifaces, func(i, j int) bool { return ifaces[i].Index < ifaces[j].Index })
	snap.Network = ifaces
	return nil
}

// Routing socket message layout for NET_RT_IFLIST2 (<net/if.h>).
const (
	rtmIfInfo2 = 0x12
	rtmVersion = 5

	ifMsghdr2Len = 32 // header before struct if_data64
	ifData64Len  = 128
	afLink       = 18
)

// parseIfList2 walks a NET_RT_IFLIST2 dump. Only RTM_IFINFO2 messages are
// decoded; address messages are skipped.
func parseIfList2(b []byte) ([]model.NetInterface, error) {
	var out []model.NetInterface
	for len(b) >= 4 {
		msgLen := int(binary.LittleEndian.Uint16(b[0:2]))
		if msgLen < 4 || msgLen > len(b) {
			return out, fmt.Errorf("routing message length %d with %d bytes left", msgLen, len(b))
		}
		msg := b[:msgLen]
		b = b[msgLen:]
		if msg[2] != rtmVersion || msg[3] != rtmIfInfo2 {
			continue
		}
		ifc, err := parseIfMsghdr2(msg)
		if err != nil {
			return out, err
		}
		out = append(out, ifc)
	}
	return out, nil
}

// parseIfMsghdr2 decodes struct if_msghdr2, its if_data64 and the
// sockaddr_dl that follows.
func parseIfMsghdr2(msg []byte) (model.NetInterface, error) {
	if len(msg) < ifMsghdr2Len+ifData64Len {
		return model.NetInterface{}, fmt.Errorf("if_msghdr2: %d bytes", len(msg))
	}
	le := binary.LittleEndian
	d := msg[ifMsghdr2Len:]
	ifc := model.NetInterface{
		Flags:    le.Uint32(msg[8:12]),
		Index:    int(le.Uint16(msg[12:14])),
		Type:     d[0],
		MTU:      le.Uint32(d[8:12]),
		BaudRate: le.Uint64(d[16:24]),
		Counters: model.NetCounters{
			RxPackets:  le.Uint64(d[24:32]),
			RxErrors:   le.Uint64(d[32:40]),
			TxPackets:  le.Uint64(d[40:48]),
			TxErrors:   le.Uint64(d[48:56]),
			Collisions: le.Uint64(d[56:64]),
			RxBytes:    le.Uint64(d[64:72]),
			TxBytes:    le.Uint64(d[72:80]),
			RxMcast:    le.Uint64(d[80:88]),
			TxMcast:    le.Uint64(d[88:96]),
			RxDrops:    le.Uint64(d[96:104]),
			NoProto:    le.Uint64(d[104:112]),
		},
	}
	// Output queue drops are reported in the header, not if_data64.
	ifc.Counters.TxDrops = uint64(le.Uint32(msg[24:28]))

	name, hw := parseSockaddrDL(msg[ifMsghdr2Len+ifData64Len:])
	ifc.Name = name
	ifc.HardwareAddr = hw
	if ifc.Name == "" {
		ifc.Name = fmt.Sprintf("if%d", ifc.Index)
	}
	return ifc, nil
}

// parseSockaddrDL returns the interface name and link-layer address of a
// struct sockaddr_dl.
func parseSockaddrDL(b []byte) (name, hwaddr string) {
	if len(b) < 8 || b[1] != afLink {
		return "", ""
	}
	saLen := int(b[0])
	if saLen > len(b) {
		saLen = len(b)
	}
	nlen, alen := int(b[5]), int(b[6])
	data := b[8:saLen]
	if nlen > len(data) {
		return "", ""
	}
	name = string(data[:nlen])
	if alen > 0 && nlen+alen <= len(data) {
		hwaddr = net.HardwareAddr(data[nlen : nlen+alen]).String()
	}
	return name, hwaddr
}
