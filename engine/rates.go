package engine

import (
	"time"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/util"
)

// ComputeRates computes all rates between two snapshots. Counters that
// went backwards (wrap, reset, device swap) contribute 0, so every rate is
// non-negative.
func ComputeRates(prev, curr *model.Snapshot) model.RateSnapshot {
	dt := curr.Timestamp.Sub(prev.Timestamp)
	if dt <= 0 {
		dt = time.Second
	}
	r := model.RateSnapshot{DeltaSec: dt.Seconds()}

	computeCPURates(prev, curr, &r)
	computeMemRates(prev, curr, dt, &r)
	computeDiskRates(prev, curr, dt, &r)
	computeNetRates(prev, curr, dt, &r)
	return r
}

func computeCPURates(prev, curr *model.Snapshot, r *model.RateSnapshot) {
	pt := prev.CPU.Total
	ct := curr.CPU.Total
	dtotal := util.Delta(pt.Total(), ct.Total())
	if dtotal == 0 {
		return
	}
	pct := func(pv, cv uint64) float64 {
		return util.Pct(float64(util.Delta(pv, cv)), float64(dtotal))
	}
	r.CPUUserPct = pct(pt.User, ct.User)
	r.CPUSystemPct = pct(pt.System, ct.System)
	r.CPUNicePct = pct(pt.Nice, ct.Nice)
	r.CPUIdlePct = pct(pt.Idle, ct.Idle)
	r.CPUBusyPct = util.CPUPct(pt.Busy(), ct.Busy(), pt.Total(), ct.Total())

	if len(prev.CPU.PerCore) == len(curr.CPU.PerCore) {
		r.PerCoreBusy = make([]float64, len(curr.CPU.PerCore))
		for i, c := range curr.CPU.PerCore {
			p := prev.CPU.PerCore[i]
			r.PerCoreBusy[i] = util.CPUPct(p.Busy(), c.Busy(), p.Total(), c.Total())
		}
	}
}

func computeMemRates(prev, curr *model.Snapshot, dt time.Duration, r *model.RateSnapshot) {
	pm := prev.Memory
	cm := curr.Memory
	r.PageInRate = util.Rate(pm.Pageins, cm.Pageins, dt)
	r.PageOutRate = util.Rate(pm.Pageouts, cm.Pageouts, dt)
	r.SwapInRate = util.Rate(pm.Swapins, cm.Swapins, dt)
	r.SwapOutRate = util.Rate(pm.Swapouts, cm.Swapouts, dt)
	r.CompressionRate = util.Rate(pm.Compressions, cm.Compressions, dt)
}

func computeDiskRates(prev, curr *model.Snapshot, dt time.Duration, r *model.RateSnapshot) {
	prevMap := make(map[string]model.DiskIO)
	for _, d := range prev.Disks {
		prevMap[d.BSDName] = d.IO
	}
	for _, d := range curr.Disks {
		pd, ok := prevMap[d.BSDName]
		if !ok {
			continue
		}
		cd := d.IO
		ops := util.Delta(pd.Reads, cd.Reads) + util.Delta(pd.Writes, cd.Writes)
		waitNs := util.Delta(pd.ReadTimeNs, cd.ReadTimeNs) + util.Delta(pd.WriteTimeNs, cd.WriteTimeNs)

		var awaitMs float64
		if ops > 0 {
			awaitMs = float64(waitNs) / float64(ops) / 1e6
		}
		r.DiskRates = append(r.DiskRates, model.DiskRate{
			Name:       d.BSDName,
			ReadBps:    util.Rate(pd.BytesRead, cd.BytesRead, dt),
			WriteBps:   util.Rate(pd.BytesWritten, cd.BytesWritten, dt),
			ReadIOPS:   util.Rate(pd.Reads, cd.Reads, dt),
			WriteIOPS:  util.Rate(pd.Writes, cd.Writes, dt),
			AvgAwaitMs: awaitMs,
		})
	}
}

func computeNetRates(prev, curr *model.Snapshot, dt time.Duration, r *model.RateSnapshot) {
	prevMap := make(map[string]model.NetCounters)
	for _, n := range prev.Network {
		prevMap[n.Name] = n.Counters
	}
	for _, n := range curr.Network {
		pc, ok := prevMap[n.Name]
		if !ok {
			continue
		}
		cc := n.Counters
		r.NetRates = append(r.NetRates, model.NetRate{
			Name:     n.Name,
			RxBps:    util.Rate(pc.RxBytes, cc.RxBytes, dt),
			TxBps:    util.Rate(pc.TxBytes, cc.TxBytes, dt),
			RxPPS:    util.Rate(pc.RxPackets, cc.RxPackets, dt),
			TxPPS:    util.Rate(pc.TxPackets, cc.TxPackets, dt),
			ErrorsPS: util.Rate(pc.RxErrors, cc.RxErrors, dt) + util.Rate(pc.TxErrors, cc.TxErrors, dt),
			DropsPS:  util.Rate(pc.RxDrops, cc.RxDrops, dt) + util.Rate(pc.TxDrops, cc.TxDrops, dt),
			State:    n.LinkState(),
		})
	}
}
