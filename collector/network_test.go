package collector

import (
	"encoding/binary"
	"testing"

	"github.com/ftahirops/macsense/model"
)

// ifInfo2 builds an RTM_IFINFO2 message followed by a sockaddr_dl.
func ifInfo2(index uint16, flags uint32, name string, mac []byte, rx, tx uint64) []byte {
	sdl := make([]byte, 20)
	sdl[0] = 20
	sdl[1] = afLink
	binary.LittleEndian.PutUint16(sdl[2:], index)
	sdl[4] = 0x06
	sdl[5] = byte(len(name))
	sdl[6] = byte(len(mac))
	copy(sdl[8:], name)
	copy(sdl[8+len(name):], mac)

	msg := make([]byte, ifMsghdr2Len+ifData64Len+len(sdl))
	le := binary.LittleEndian
	le.PutUint16(msg[0:], uint16(len(msg)))
	msg[2] = rtmVersion
	msg[3] = rtmIfInfo2
	le.PutUint32(msg[8:], flags)
	le.PutUint16(msg[12:], index)
	le.PutUint32(msg[24:], 3) // snd_drops

	d := msg[ifMsghdr2Len:]
	d[0] = 0x06
	le.PutUint32(d[8:], 1500)
	le.PutUint64(d[16:], 1_000_000_000)
	le.PutUint64(d[24:], 10) // ipackets
	le.PutUint64(d[32:], 1)  // ierrors
	le.PutUint64(d[40:], 20) // opackets
	le.PutUint64(d[64:], rx)
	le.PutUint64(d[72:], tx)
	le.PutUint64(d[96:], 2) // iqdrops
	copy(msg[ifMsghdr2Len+ifData64Len:], sdl)
	return msg
}

func TestParseIfList2(t *testing.T) {
	en0 := ifInfo2(6, model.IFFUp|model.IFFBroadcast|model.IFFRunning|model.IFFMulticast, "en0",
		[]byte{0xa4, 0x83, 0xe7, 0x01, 0x02, 0x03}, 5<<32, 1234)
	lo0 := ifInfo2(1, model.IFFUp|model.IFFLoopback|model.IFFRunning, "lo0", nil, 99, 99)

	// An RTM_NEWADDR message in between must be skipped.
	addr := make([]byte, 20)
	binary.LittleEndian.PutUint16(addr, 20)
	addr[2] = rtmVersion
	addr[3] = 0x0c

	var rib []byte
	rib = append(rib, lo0...)
	rib = append(rib, addr...)
	rib = append(rib, en0...)

	ifaces, err := parseIfList2(rib)
	if err != nil {
		t.Fatal(err)
	}
	if len(ifaces) != 2 {
		t.Fatalf("interfaces = %d, want 2", len(ifaces))
	}
	lo, en := ifaces[0], ifaces[1]
	if lo.Name != "lo0" || !lo.IsLoopback() || lo.HardwareAddr != "" {
		t.Errorf("lo0 = %+v", lo)
	}
	if en.Name != "en0" || en.Index != 6 || en.MTU != 1500 || en.BaudRate != 1_000_000_000 {
		t.Errorf("en0 = %+v", en)
	}
	if en.HardwareAddr != "a4:83:e7:01:02:03" {
		t.Errorf("mac = %q", en.HardwareAddr)
	}
	// Counters above 32 bits survive.
	if en.Counters.RxBytes != 5<<32 || en.Counters.TxBytes != 1234 {
		t.Errorf("bytes = %d/%d", en.Counters.RxBytes, en.Counters.TxBytes)
	}
	if en.Counters.RxPackets != 10 || en.Counters.TxPackets != 20 || en.Counters.RxErrors != 1 {
		t.Errorf("packets = %+v", en.Counters)
	}
	if en.Counters.RxDrops != 2 || en.Counters.TxDrops != 3 {
		t.Errorf("drops = %d/%d", en.Counters.RxDrops, en.Counters.TxDrops)
	}
	if en.LinkState() != model.LinkOperational {
		t.Errorf("state = %s", en.LinkState())
	}
	if en.TypeName() != "ethernet" {
		t.Errorf("type = %s", en.TypeName())
	}
}

func TestParseIfList2Truncated(t *testing.T) {
	msg := ifInfo2(2, model.IFFUp, "en1", nil, 0, 0)
	if _, err := parseIfList2(msg[:len(msg)-30]); err == nil {
		t.Error("truncated dump accepted")
	}
}

func TestParseSockaddrDL(t *testing.T) {
	if name, hw := parseSockaddrDL([]byte{20, 2, 0, 0}); name != "" || hw != "" {
		t.Errorf("non-link sockaddr decoded as %q %q", name, hw)
	}
}
