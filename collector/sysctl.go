package collector

import (
	"encoding/binary"
	"fmt"

	"github.com/ftahirops/macsense/model"
)

// sysctlNumber decodes an integer sysctl value. The kernel returns 4 or 8
// bytes depending on the node type.
func sysctlNumber(b []byte) (uint64, error) {
	switch len(b) {
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	}
	return 0, fmt.Errorf("sysctl integer of %d bytes", len(b))
}

// decodeLoadAvg decodes struct loadavg: fixpt_t ldavg[3] followed by a
// long fscale at offset 16.
func decodeLoadAvg(b []byte) (model.LoadAvg, error) {
	if len(b) < 24 {
		return model.LoadAvg{}, fmt.Errorf("loadavg: %d bytes, want 24", len(b))
	}
	scale := float64(binary.LittleEndian.Uint64(b[16:24]))
	if scale == 0 {
		return model.LoadAvg{}, fmt.Errorf("loadavg: zero fscale")
	}
	ld := func(i int) float64 {
		return float64(binary.LittleEndian.Uint32(b[4*i:])) / scale
	}
	return model.LoadAvg{Load1: ld(0), Load5: ld(1), Load15: ld(2)}, nil
}

// swapUsage is struct xsw_usage.
type swapUsage struct {
	Total     uint64
	Avail     uint64
	Used      uint64
	PageSize  uint32
	Encrypted bool
}

func decodeSwapUsage(b []byte) (swapUsage, error) {
	if len(b) < 32 {
		return swapUsage{}, fmt.Errorf("vm.swapusage: %d bytes, want 32", len(b))
	}
	return swapUsage{
		Total:     binary.LittleEndian.Uint64(b[0:8]),
		Avail:     binary.LittleEndian.Uint64(b[8:16]),
		Used:      binary.LittleEndian.Uint64(b[16:24]),
		PageSize:  binary.LittleEndian.Uint32(b[24:28]),
		Encrypted: binary.LittleEndian.Uint32(b[28:32]) != 0,
	}, nil
}
