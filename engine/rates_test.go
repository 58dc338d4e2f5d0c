package engine

import (
	"math"
	"testing"
	"time"

	"github.com/ftahirops/macsense/model"
)

func snapAt(sec int64) *model.Snapshot {
	return &model.Snapshot{Timestamp: time.Unix(sec, 0)}
}

func TestComputeRatesCPU(t *testing.T) {
	prev := snapAt(100)
	prev.CPU.Total = model.CPUTicks{User: 100, System: 50, Idle: 800, Nice: 50}
	prev.CPU.PerCore = []model.CPUTicks{{User: 10, Idle: 90}, {User: 50, Idle: 50}}

	curr := snapAt(102)
	curr.CPU.Total = model.CPUTicks{User: 150, System: 70, Idle: 920, Nice: 60}
	curr.CPU.PerCore = []model.CPUTicks{{User: 60, Idle: 140}, {User: 50, Idle: 150}}

	r := ComputeRates(prev, curr)
	if r.DeltaSec != 2 {
		t.Errorf("DeltaSec = %v, want 2", r.DeltaSec)
	}
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"user", r.CPUUserPct, 25},
		{"system", r.CPUSystemPct, 10},
		{"nice", r.CPUNicePct, 5},
		{"idle", r.CPUIdlePct, 60},
		{"busy", r.CPUBusyPct, 40},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if len(r.PerCoreBusy) != 2 || r.PerCoreBusy[0] != 50 || r.PerCoreBusy[1] != 0 {
		t.Errorf("PerCoreBusy = %v, want [50 0]", r.PerCoreBusy)
	}
}

func TestComputeRatesCoreCountChange(t *testing.T) {
	prev := snapAt(1)
	prev.CPU.PerCore = make([]model.CPUTicks, 4)
	curr := snapAt(2)
	curr.CPU.PerCore = make([]model.CPUTicks, 8)
	if r := ComputeRates(prev, curr); r.PerCoreBusy != nil {
		t.Errorf("PerCoreBusy = %v, want nil", r.PerCoreBusy)
	}
}

func TestComputeRatesMemory(t *testing.T) {
	prev := snapAt(10)
	prev.Memory = model.MemoryInfo{Pageins: 100, Pageouts: 10, Swapins: 5, Swapouts: 5, Compressions: 1000}
	curr := snapAt(15)
	curr.Memory = model.MemoryInfo{Pageins: 600, Pageouts: 10, Swapins: 15, Swapouts: 30, Compressions: 6000}

	r := ComputeRates(prev, curr)
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"pagein", r.PageInRate, 100},
		{"pageout", r.PageOutRate, 0},
		{"swapin", r.SwapInRate, 2},
		{"swapout", r.SwapOutRate, 5},
		{"compression", r.CompressionRate, 1000},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestComputeRatesDisk(t *testing.T) {
	prev := snapAt(0)
	prev.Disks = []model.DiskDevice{
		{BSDName: "disk0", IO: model.DiskIO{BytesRead: 1 << 20, Reads: 100, ReadTimeNs: 1e9}},
		{BSDName: "disk4", IO: model.DiskIO{BytesRead: 500}},
	}
	curr := snapAt(1)
	curr.Disks = []model.DiskDevice{
		{BSDName: "disk0", IO: model.DiskIO{
			BytesRead: 3 << 20, BytesWritten: 4096,
			Reads: 150, Writes: 50,
			ReadTimeNs: 1e9 + 150e6, WriteTimeNs: 50e6,
		}},
		{BSDName: "disk6", IO: model.DiskIO{BytesRead: 1 << 30}},
	}

	r := ComputeRates(prev, curr)
	if len(r.DiskRates) != 1 {
		t.Fatalf("DiskRates = %+v, want only disk0", r.DiskRates)
	}
	d := r.DiskRates[0]
	if d.Name != "disk0" || d.ReadBps != 2<<20 || d.WriteBps != 4096 {
		t.Errorf("throughput = %+v", d)
	}
	if d.ReadIOPS != 50 || d.WriteIOPS != 50 {
		t.Errorf("IOPS = %v/%v, want 50/50", d.ReadIOPS, d.WriteIOPS)
	}
	// 200ms of service time over 100 operations.
	if math.Abs(d.AvgAwaitMs-2) > 1e-9 {
		t.Errorf("AvgAwaitMs = %v, want 2", d.AvgAwaitMs)
	}
}

func TestComputeRatesNetwork(t *testing.T) {
	prev := snapAt(0)
	prev.Network = []model.NetInterface{{
		Name:     "en0",
		Counters: model.NetCounters{RxBytes: 1000, TxBytes: 2000, RxPackets: 10, TxPackets: 20, RxErrors: 1, RxDrops: 2},
	}}
	curr := snapAt(2)
	curr.Network = []model.NetInterface{{
		Name:     "en0",
		Flags:    model.IFFUp,
		Counters: model.NetCounters{RxBytes: 5000, TxBytes: 2000, RxPackets: 30, TxPackets: 20, RxErrors: 3, TxErrors: 2, RxDrops: 2, TxDrops: 4},
	}}

	r := ComputeRates(prev, curr)
	if len(r.NetRates) != 1 {
		t.Fatalf("NetRates = %+v", r.NetRates)
	}
	n := r.NetRates[0]
	want := model.NetRate{
		Name:     "en0",
		RxBps:    2000,
		RxPPS:    10,
		ErrorsPS: 2,
		DropsPS:  2,
		State:    model.LinkNoCarrier,
	}
	if n != want {
		t.Errorf("NetRate = %+v, want %+v", n, want)
	}
}

func TestComputeRatesCounterReset(t *testing.T) {
	prev := snapAt(0)
	prev.CPU.Total = model.CPUTicks{User: 1000, Idle: 1000}
	prev.Memory.Pageins = 1 << 40
	prev.Disks = []model.DiskDevice{{BSDName: "disk0", IO: model.DiskIO{BytesRead: 1 << 40, Reads: 1 << 20}}}
	prev.Network = []model.NetInterface{{Name: "en0", Counters: model.NetCounters{RxBytes: 1 << 40}}}

	curr := snapAt(1)
	curr.CPU.Total = model.CPUTicks{User: 10, Idle: 10}
	curr.Disks = []model.DiskDevice{{BSDName: "disk0", IO: model.DiskIO{BytesRead: 10, Reads: 1}}}
	curr.Network = []model.NetInterface{{Name: "en0", Counters: model.NetCounters{RxBytes: 10}}}

	r := ComputeRates(prev, curr)
	if r.CPUBusyPct != 0 || r.PageInRate != 0 {
		t.Errorf("cpu/mem after reset: %+v", r)
	}
	for _, d := range r.DiskRates {
		if d.ReadBps < 0 || d.ReadIOPS < 0 || d.AvgAwaitMs < 0 {
			t.Errorf("negative disk rate %+v", d)
		}
	}
	for _, n := range r.NetRates {
		if n.RxBps != 0 {
			t.Errorf("RxBps after reset = %v, want 0", n.RxBps)
		}
	}
}

func TestComputeRatesNonPositiveInterval(t *testing.T) {
	prev := snapAt(5)
	prev.Memory.Pageins = 10
	curr := snapAt(5)
	curr.Memory.Pageins = 20
	r := ComputeRates(prev, curr)
	if r.DeltaSec != 1 {
		t.Errorf("DeltaSec = %v, want 1", r.DeltaSec)
	}
	if r.PageInRate != 10 {
		t.Errorf("PageInRate = %v, want 10", r.PageInRate)
	}
}
