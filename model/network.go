package model

import "strings"

// Interface flag bits from <net/if.h>.
const (
	IFFUp           uint32 = 0x1
	IFFBroadcast    uint32 = 0x2
	IFFDebug        uint32 = 0x4
	IFFLoopback     uint32 = 0x8
	IFFPointToPoint uint32 = 0x10
	IFFRunning      uint32 = 0x40
	IFFNoARP        uint32 = 0x80
	IFFPromisc      uint32 = 0x100
	IFFAllMulti     uint32 = 0x200
	IFFMulticast    uint32 = 0x8000
)

var flagNames = []struct {
	bit  uint32
	name string
}{
	{IFFUp, "up"},
	{IFFBroadcast, "broadcast"},
	{IFFDebug, "debug"},
	{IFFLoopback, "loopback"},
	{IFFPointToPoint, "pointtopoint"},
	{IFFRunning, "running"},
	{IFFNoARP, "noarp"},
	{IFFPromisc, "promisc"},
	{IFFAllMulti, "allmulti"},
	{IFFMulticast, "multicast"},
}

// LinkState summarizes an interface's administrative and carrier state.
type LinkState string

const (
	LinkDown        LinkState = "down"
	LinkNoCarrier   LinkState = "no-carrier"
	LinkOperational LinkState = "operational"
)

// ClassifyFlags derives the link state from an IFF_* bitmask: not up is
// down, up without running is no-carrier, up and running is operational.
func ClassifyFlags(flags uint32) LinkState {
	switch {
	case flags&IFFUp == 0:
		return LinkDown
	case flags&IFFRunning == 0:
		return LinkNoCarrier
	default:
		return LinkOperational
	}
}

// FlagNames renders an IFF_* bitmask as names ("up,broadcast,running").
func FlagNames(flags uint32) string {
	var names []string
	for _, f := range flagNames {
		if flags&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseFlagNames converts flag names back to a bitmask. Unknown names are
// ignored.
func ParseFlagNames(names []string) uint32 {
	var flags uint32
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		for _, f := range flagNames {
			if f.name == n {
				flags |= f.bit
			}
		}
	}
	return flags
}

// NetCounters holds cumulative interface counters (if_data64).
type NetCounters struct {
	RxBytes    uint64 `json:"rx_bytes"`
	TxBytes    uint64 `json:"tx_bytes"`
	RxPackets  uint64 `json:"rx_packets"`
	TxPackets  uint64 `json:"tx_packets"`
	RxErrors   uint64 `json:"rx_errors"`
	TxErrors   uint64 `json:"tx_errors"`
	RxDrops    uint64 `json:"rx_drops"`
	TxDrops    uint64 `json:"tx_drops"`
	RxMcast    uint64 `json:"rx_mcast"`
	TxMcast    uint64 `json:"tx_mcast"`
	Collisions uint64 `json:"collisions"`
	NoProto    uint64 `json:"no_proto"`
}

// NetInterface is one network interface.
type NetInterface struct {
	Name         string      `json:"name"`
	Index        int         `json:"index"`
	Flags        uint32      `json:"flags"`
	MTU          uint32      `json:"mtu"`
	Type         uint8       `json:"type"` // IFT_* value
	BaudRate     uint64      `json:"baud_rate"`
	HardwareAddr string      `json:"hardware_addr,omitempty"`
	Counters     NetCounters `json:"counters"`
}

// LinkState classifies the interface from its flags.
func (n NetInterface) LinkState() LinkState {
	return ClassifyFlags(n.Flags)
}

// IsLoopback reports whether IFF_LOOPBACK is set.
func (n NetInterface) IsLoopback() bool {
	return n.Flags&IFFLoopback != 0
}

// TypeName names common IFT_* interface types.
func (n NetInterface) TypeName() string {
	switch n.Type {
	case 0x06:
		return "ethernet"
	case 0x18:
		return "loopback"
	case 0x17:
		return "ppp"
	case 0x37:
		return "gif"
	case 0x39:
		return "stf"
	case 0xd1:
		return "bridge"
	case 0xff:
		return "cellular"
	case 0:
		return ""
	}
	if strings.HasPrefix(n.Name, "utun") {
		return "tunnel"
	}
	return "other"
}
