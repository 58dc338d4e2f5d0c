package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/util"
)

// Options controls section rendering.
type Options struct {
	Width    int    // terminal width; 0 uses the minimum box width
	TempUnit string // "C" (default) or "F"
	All      bool   // include down interfaces without traffic
	Now      func() time.Time
}

func (o Options) innerW() int { return pageInnerW(o.Width) }

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) temp(c float64) string {
	if strings.EqualFold(o.TempUnit, "F") {
		return fmt.Sprintf("%.1f °F", c*9/5+32)
	}
	return util.FormatCelsius(c)
}

// sectionTitles maps section names to box titles.
var sectionTitles = map[string]string{
	"host":    "HOST",
	"cpu":     "CPU",
	"memory":  "MEMORY",
	"volumes": "VOLUMES",
	"disks":   "DISKS",
	"network": "NETWORK",
	"gpu":     "GPU",
	"battery": "BATTERY",
	"smc":     "SENSORS",
	"wifi":    "WI-FI",
	"smart":   "SMART",
}

// SectionTitle returns the display title of a section.
func SectionTitle(name string) string {
	if t, ok := sectionTitles[name]; ok {
		return t
	}
	return strings.ToUpper(name)
}

// RenderSection renders one named section. Rates may be nil (first
// sample). Unknown names render as empty.
func RenderSection(name string, snap *model.Snapshot, rates *model.RateSnapshot, opts Options) string {
	if snap == nil {
		return ""
	}
	var lines []string
	switch name {
	case "host":
		lines = hostLines(snap.Host, opts)
	case "cpu":
		lines = cpuLines(snap.CPU, rates)
	case "memory":
		lines = memoryLines(snap.Memory, rates)
	case "volumes":
		lines = volumeLines(snap.Volumes)
	case "disks":
		lines = diskLines(snap.Disks, rates)
	case "network":
		lines = networkLines(snap.Network, rates, opts)
	case "gpu":
		lines = gpuLines(snap.GPUs)
	case "battery":
		lines = batteryLines(snap.Battery, opts)
	case "smc":
		lines = sensorLines(snap.Sensors, opts)
	case "wifi":
		lines = wifiLines(snap.WiFi)
	case "smart":
		lines = smartLines(snap.SMART, opts)
	default:
		return ""
	}
	return boxSection(SectionTitle(name), lines, opts.innerW())
}

// Render renders the given sections in order, followed by any collection
// errors.
func Render(sections []string, snap *model.Snapshot, rates *model.RateSnapshot, opts Options) string {
	var sb strings.Builder
	for _, name := range sections {
		sb.WriteString(RenderSection(name, snap, rates, opts))
	}
	if snap != nil && len(snap.Errors) > 0 {
		sb.WriteString(RenderErrors(snap.Errors, opts))
	}
	return sb.String()
}

// RenderErrors renders collector failures.
func RenderErrors(errs []string, opts Options) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = warnStyle.Render(truncate(e, opts.innerW()))
	}
	return boxSection("ERRORS", lines, opts.innerW())
}

func hostLines(h model.HostInfo, opts Options) []string {
	arch := h.Arch
	switch {
	case h.AppleSilicon && h.Translated:
		arch += " (Apple Silicon, Rosetta)"
	case h.AppleSilicon:
		arch += " (Apple Silicon)"
	}
	details := []kv{
		{"Hostname", h.Hostname},
		{"OS", strings.TrimSpace(h.OSName + " " + h.OSVersion)},
		{"Kernel", h.KernelRelease},
		{"Model", h.HardwareModel},
		{"Arch", arch},
	}
	if !h.BootTime.IsZero() {
		up := h.Uptime(opts.now())
		details = append(details,
			kv{"Booted", h.BootTime.Local().Format("2006-01-02 15:04:05")},
			kv{"Uptime", formatUptime(up)})
	}
	return kvLines(details)
}

func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %02dm", days, hours, mins)
	}
	return fmt.Sprintf("%dh %02dm", hours, mins)
}

func cpuLines(c model.CPUInfo, rates *model.RateSnapshot) []string {
	cores := fmt.Sprintf("%d physical, %d logical", c.PhysicalCores, c.LogicalCores)
	if c.Heterogeneous() {
		cores += fmt.Sprintf(" (%dP + %dE)", c.PerfCores, c.EfficiencyCores)
	}
	details := []kv{
		{"Brand", c.Brand},
		{"Cores", cores},
	}
	if c.FrequencySupported {
		details = append(details, kv{"Frequency", humanize.SIWithDigits(float64(c.FrequencyHz), 2, "Hz")})
	}
	if c.L2CacheBytes > 0 {
		details = append(details, kv{"L2 cache", util.FormatBytes(c.L2CacheBytes)})
	}
	if c.L3CacheBytes > 0 {
		details = append(details, kv{"L3 cache", util.FormatBytes(c.L3CacheBytes)})
	}
	details = append(details, kv{"Load", fmt.Sprintf("%.2f %.2f %.2f", c.Load.Load1, c.Load.Load5, c.Load.Load15)})
	lines := kvLines(details)

	if rates == nil {
		lines = append(lines, kvLine("Idle since boot", valueStyle.Render(util.FormatPct(c.IdlePctSinceBoot()))))
		return lines
	}
	lines = append(lines,
		kvLine("Busy", pctBar(rates.CPUBusyPct)),
		kvLine("Split", valueStyle.Render(fmt.Sprintf("user %s  sys %s  nice %s  idle %s",
			util.FormatPct(rates.CPUUserPct), util.FormatPct(rates.CPUSystemPct),
			util.FormatPct(rates.CPUNicePct), util.FormatPct(rates.CPUIdlePct)))))
	lines = append(lines, coreGrid(rates.PerCoreBusy, c)...)
	return lines
}

// coreGrid renders per-core busy bars, two cores per line. On Apple
// Silicon the performance cores come first.
func coreGrid(busy []float64, c model.CPUInfo) []string {
	var lines []string
	var row []string
	for i, pct := range busy {
		label := fmt.Sprintf("cpu%d", i)
		if c.Heterogeneous() {
			if i < c.PerfCores {
				label = fmt.Sprintf("P%d", i)
			} else {
				label = fmt.Sprintf("E%d", i-c.PerfCores)
			}
		}
		row = append(row, fmt.Sprintf("%s %s %s", padRight(label, 5), bar(pct, 14), padLeft(fmt.Sprintf("%.0f%%", pct), 4)))
		if len(row) == 2 {
			lines = append(lines, strings.Join(row, "   "))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		lines = append(lines, strings.Join(row, "   "))
	}
	return lines
}

func memoryLines(m model.MemoryInfo, rates *model.RateSnapshot) []string {
	lines := []string{
		kvLine("Used", fmt.Sprintf("%s  %s / %s", pctBar(m.UsedPercent()),
			util.FormatBytes(m.UsedBytes()), util.FormatBytes(m.TotalBytes))),
	}
	lines = append(lines, kvLines([]kv{
		{"App", util.FormatBytes(m.AppBytes())},
		{"Wired", util.FormatBytes(m.WiredBytes())},
		{"Compressed", util.FormatBytes(m.CompressedBytes())},
		{"Cached", util.FormatBytes(m.CachedBytes())},
		{"Free", util.FormatBytes(m.FreeBytes())},
		{"Available", util.FormatBytes(m.AvailableBytes())},
	})...)
	swap := "none"
	if m.SwapTotalBytes > 0 {
		swap = fmt.Sprintf("%s / %s", util.FormatBytes(m.SwapUsedBytes), util.FormatBytes(m.SwapTotalBytes))
		if m.SwapEncrypted {
			swap += " (encrypted)"
		}
	}
	lines = append(lines, kvLine("Swap", valueStyle.Render(swap)))
	if rates != nil {
		lines = append(lines, kvLine("Paging", valueStyle.Render(fmt.Sprintf(
			"in %.0f/s  out %.0f/s  swap in %.0f/s  out %.0f/s  compress %.0f/s",
			rates.PageInRate, rates.PageOutRate, rates.SwapInRate, rates.SwapOutRate, rates.CompressionRate))))
	}
	return lines
}

func volumeLines(vols []model.Volume) []string {
	if len(vols) == 0 {
		return []string{dimStyle.Render("no volumes")}
	}
	lines := []string{dimStyle.Render(fmt.Sprintf("%-24s %-7s %12s %12s %12s  %s",
		"MOUNT", "FS", "SIZE", "USED", "FREE", "USE"))}
	for _, v := range vols {
		lines = append(lines, fmt.Sprintf("%s %s %12s %12s %12s  %s",
			padRight(v.MountPoint, 24), padRight(v.FSType, 7),
			util.FormatBytes(v.TotalBytes), util.FormatBytes(v.UsedBytes()), util.FormatBytes(v.FreeBytes),
			pctBar(v.UsedPercent())))
	}
	return lines
}

func diskLines(disks []model.DiskDevice, rates *model.RateSnapshot) []string {
	if len(disks) == 0 {
		return []string{dimStyle.Render("no disks")}
	}
	byName := make(map[string]model.DiskRate)
	if rates != nil {
		for _, r := range rates.DiskRates {
			byName[r.Name] = r
		}
	}
	var lines []string
	for _, d := range disks {
		where := "external"
		if d.Internal {
			where = "internal"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s %s %s",
			titleStyle.Render(padRight(d.BSDName, 7)), padRight(d.Model, 28),
			padRight(d.Protocol, 6), padRight(d.Medium, 12), padLeft(util.FormatBytes(d.SizeBytes), 11),
			dimStyle.Render(where)))
		if r, ok := byName[d.BSDName]; ok {
			lines = append(lines, fmt.Sprintf("        read %s  write %s  iops %.0f/%.0f  await %.2f ms",
				padLeft(util.FormatRate(r.ReadBps), 13), padLeft(util.FormatRate(r.WriteBps), 13),
				r.ReadIOPS, r.WriteIOPS, r.AvgAwaitMs))
		} else {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("        read %s  written %s  errors %d",
				util.FormatBytes(d.IO.BytesRead), util.FormatBytes(d.IO.BytesWritten),
				d.IO.ReadErrors+d.IO.WriteErrors)))
		}
	}
	return lines
}

func linkStyle(s model.LinkState) string {
	switch s {
	case model.LinkOperational:
		return okStyle.Render(string(s))
	case model.LinkNoCarrier:
		return warnStyle.Render(string(s))
	}
	return dimStyle.Render(string(s))
}

func networkLines(ifaces []model.NetInterface, rates *model.RateSnapshot, opts Options) []string {
	byName := make(map[string]model.NetRate)
	if rates != nil {
		for _, r := range rates.NetRates {
			byName[r.Name] = r
		}
	}
	lines := []string{dimStyle.Render(fmt.Sprintf("%-10s %-12s %-10s %13s %13s  %s",
		"IFACE", "STATE", "TYPE", "RX", "TX", "ADDRESS"))}
	for _, n := range ifaces {
		idle := n.Counters.RxBytes == 0 && n.Counters.TxBytes == 0
		if !opts.All && n.LinkState() == model.LinkDown && idle {
			continue
		}
		rx, tx := util.FormatBytes(n.Counters.RxBytes), util.FormatBytes(n.Counters.TxBytes)
		if r, ok := byName[n.Name]; ok {
			rx, tx = util.FormatRate(r.RxBps), util.FormatRate(r.TxBps)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %13s %13s  %s",
			padRight(n.Name, 10), styledPad(linkStyle(n.LinkState()), 12), padRight(n.TypeName(), 10),
			rx, tx, dimStyle.Render(n.HardwareAddr)))
		if r, ok := byName[n.Name]; ok && (r.ErrorsPS > 0 || r.DropsPS > 0) {
			lines = append(lines, warnStyle.Render(fmt.Sprintf("           errors %.1f/s  drops %.1f/s", r.ErrorsPS, r.DropsPS)))
		}
	}
	if len(lines) == 1 {
		return []string{dimStyle.Render("no interfaces")}
	}
	return lines
}

func gpuLines(gpus []model.GPUInfo) []string {
	if len(gpus) == 0 {
		return []string{dimStyle.Render("no GPU found")}
	}
	var lines []string
	for i, g := range gpus {
		if i > 0 {
			lines = append(lines, "")
		}
		name := g.Model
		if g.CoreCount > 0 {
			name += fmt.Sprintf(" (%d cores)", g.CoreCount)
		}
		lines = append(lines, titleStyle.Render(name))
		lines = append(lines, kvLines([]kv{{"Vendor", g.Vendor}, {"Driver", g.IOClass}})...)
		if g.UtilizationSupported {
			lines = append(lines,
				kvLine("Device", pctBar(g.DeviceUtilization)),
				kvLine("Renderer", pctBar(g.RendererUtilization)),
				kvLine("Tiler", pctBar(g.TilerUtilization)))
		} else {
			lines = append(lines, kvLine("Utilization", dimStyle.Render("not reported")))
		}
		if g.InUseMemoryBytes > 0 || g.AllocMemoryBytes > 0 {
			lines = append(lines, kvLine("Memory", valueStyle.Render(fmt.Sprintf("%s in use, %s allocated",
				util.FormatBytes(g.InUseMemoryBytes), util.FormatBytes(g.AllocMemoryBytes)))))
		}
		if g.VRAMTotalBytes > 0 {
			lines = append(lines, kvLine("VRAM", fmt.Sprintf("%s  %s", pctBar(g.VRAMUsedPercent()),
				util.FormatBytes(g.VRAMTotalBytes))))
		}
	}
	return lines
}

func batteryLines(b model.BatteryInfo, opts Options) []string {
	if !b.Present {
		return []string{dimStyle.Render("no battery")}
	}
	charge := b.ChargePercent()
	state := "discharging"
	switch {
	case b.FullyCharged:
		state = "fully charged"
	case b.IsCharging:
		state = "charging"
	case b.ExternalConnected:
		state = "on AC, not charging"
	}
	remaining := "-"
	switch {
	case b.IsCharging && b.TimeToFullMin >= 0:
		remaining = util.FormatMinutes(b.TimeToFullMin) + " to full"
	case !b.ExternalConnected && b.TimeToEmptyMin >= 0:
		remaining = util.FormatMinutes(b.TimeToEmptyMin) + " to empty"
	}
	health := b.HealthPercent()
	lines := []string{
		kvLine("Charge", fmt.Sprintf("%s %s", barStyled(charge, barWidth, remainingColor(charge)),
			remainingColor(charge).Render(util.FormatPct(charge)))),
		kvLine("Health", remainingColor(health).Render(fmt.Sprintf("%s (%d / %d mAh)",
			util.FormatPct(health), b.RawMaxCapacity, b.DesignCapacity))),
	}
	lines = append(lines, kvLines([]kv{
		{"State", state},
		{"Remaining", remaining},
		{"Cycles", fmt.Sprintf("%d / %d", b.CycleCount, b.DesignCycleCount)},
		{"Voltage", util.FormatVolts(b.VoltageVolts())},
		{"Current", util.FormatAmps(b.CurrentAmps())},
		{"Power", util.FormatWatts(b.PowerWatts())},
	})...)
	if b.TemperatureCenti != 0 {
		t := b.TemperatureCelsius()
		lines = append(lines, kvLine("Temperature", tempColor(t).Render(opts.temp(t))))
	}
	if b.DeviceName != "" || b.Serial != "" {
		lines = append(lines, kvLine("Pack", dimStyle.Render(strings.TrimSpace(b.Manufacturer+" "+b.DeviceName+" "+b.Serial))))
	}
	return lines
}

func sensorValue(s model.SMCSensor, opts Options) string {
	switch s.Kind {
	case model.SensorTemperature:
		return tempColor(s.Value).Render(opts.temp(s.Value))
	case model.SensorVoltage:
		return valueStyle.Render(util.FormatVolts(s.Value))
	case model.SensorCurrent:
		return valueStyle.Render(util.FormatAmps(s.Value))
	case model.SensorPower:
		return valueStyle.Render(util.FormatWatts(s.Value))
	case model.SensorFan:
		return valueStyle.Render(fmt.Sprintf("%.0f rpm", s.Value))
	}
	return valueStyle.Render(fmt.Sprintf("%.2f", s.Value))
}

func sensorLines(s model.SensorReadings, opts Options) []string {
	if !s.Supported {
		return []string{dimStyle.Render("SMC not available")}
	}
	var lines []string
	if hot, ok := s.MaxTemperature(); ok {
		lines = append(lines, kvLine("Hottest", fmt.Sprintf("%s %s", sensorValue(hot, opts), dimStyle.Render(hot.Key))))
	}
	for _, f := range s.Fans {
		mode := "auto"
		if f.Forced {
			mode = "forced"
		}
		lines = append(lines, kvLine(fmt.Sprintf("Fan %d", f.Index), fmt.Sprintf("%s %s %s",
			bar(f.Percent(), 14), valueStyle.Render(fmt.Sprintf("%.0f rpm", f.ActualRPM)),
			dimStyle.Render(fmt.Sprintf("(%.0f-%.0f, %s)", f.MinRPM, f.MaxRPM, mode)))))
	}
	for _, kind := range []model.SensorKind{
		model.SensorTemperature, model.SensorVoltage, model.SensorCurrent,
		model.SensorPower, model.SensorFan, model.SensorOther,
	} {
		group := s.ByKind(kind)
		if len(group) == 0 {
			continue
		}
		lines = append(lines, "", headerStyle.Render(strings.ToUpper(string(kind))))
		for _, sn := range group {
			lines = append(lines, fmt.Sprintf("%s %s %s",
				titleStyle.Render(padRight(sn.Key, 5)), padRight(sn.Description, 30), sensorValue(sn, opts)))
		}
	}
	if len(lines) == 0 {
		return []string{dimStyle.Render("no sensors")}
	}
	return lines
}

func wifiLines(w model.WiFiInfo) []string {
	if !w.Supported {
		return []string{dimStyle.Render("Wi-Fi not available")}
	}
	i := w.Interface
	if !i.PowerOn {
		return kvLines([]kv{{"Interface", i.Name}, {"Power", "off"}})
	}
	lines := kvLines([]kv{{"Interface", i.Name}, {"Power", "on"}})
	if !i.Associated() {
		lines = append(lines, kvLine("Network", dimStyle.Render("not associated")))
	} else {
		q := i.Quality()
		lines = append(lines, kvLines([]kv{
			{"SSID", i.SSID},
			{"BSSID", i.BSSID},
		})...)
		lines = append(lines,
			kvLine("Signal", fmt.Sprintf("%s %s", barStyled(q, barWidth, remainingColor(q)),
				valueStyle.Render(fmt.Sprintf("%d dBm, noise %d dBm, SNR %d dB", i.RSSI, i.Noise, i.SNR())))))
		lines = append(lines, kvLines([]kv{
			{"Channel", fmt.Sprintf("%d (%s, %d MHz)", i.Channel, i.Band, i.WidthMHz)},
			{"Tx rate", fmt.Sprintf("%.0f Mbps", i.TxRateMbps)},
			{"Security", i.Security},
			{"PHY mode", i.PHYMode},
			{"Country", i.CountryCode},
		})...)
	}
	if len(w.Networks) == 0 {
		return lines
	}
	lines = append(lines, "", dimStyle.Render(fmt.Sprintf("%-28s %-17s %5s %4s %-7s %5s  %s",
		"SSID", "BSSID", "RSSI", "CH", "BAND", "WIDTH", "SECURITY")))
	for _, n := range w.Networks {
		ssid := n.SSID
		if ssid == "" {
			ssid = "(hidden)"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %4d %s %5d  %s",
			padRight(ssid, 28), padRight(n.BSSID, 17),
			remainingColor(n.Quality()).Render(fmt.Sprintf("%5d", n.RSSI)),
			n.Channel, padRight(n.Band, 7), n.WidthMHz, strings.Join(n.Security, ",")))
	}
	return lines
}

func smartLines(logs []model.SMARTLog, opts Options) []string {
	if len(logs) == 0 {
		return []string{dimStyle.Render("no SMART capable disks")}
	}
	var lines []string
	for i, l := range logs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s  %s",
			titleStyle.Render(l.Device), dimStyle.Render(strings.ToUpper(string(l.Kind))),
			healthBadge(l.Healthy()), dimStyle.Render("read "+humanize.RelTime(l.CapturedAt, opts.now(), "ago", "from now"))))
		switch {
		case l.NVMe != nil:
			lines = append(lines, nvmeLines(*l.NVMe, opts)...)
		case l.ATA != nil:
			lines = append(lines, ataLines(*l.ATA, opts)...)
		}
	}
	return lines
}

func nvmeLines(h model.NVMeHealth, opts Options) []string {
	t := h.TemperatureCelsius()
	life := float64(h.LifeRemainingPct())
	lines := []string{
		kvLine("Temperature", tempColor(t).Render(opts.temp(t))),
		kvLine("Life left", fmt.Sprintf("%s %s", barStyled(life, barWidth, remainingColor(life)),
			remainingColor(life).Render(fmt.Sprintf("%d%% (%d%% used)", h.LifeRemainingPct(), h.PercentageUsed)))),
	}
	lines = append(lines, kvLines([]kv{
		{"Spare", fmt.Sprintf("%d%% (threshold %d%%)", h.AvailableSparePct, h.SpareThresholdPct)},
		{"Data read", util.FormatBytes(h.BytesRead())},
		{"Data written", util.FormatBytes(h.BytesWritten())},
		{"Power on", humanize.Comma(int64(h.PowerOnHours)) + " h"},
		{"Power cycles", humanize.Comma(int64(h.PowerCycles))},
		{"Unsafe shutdown", humanize.Comma(int64(h.UnsafeShutdowns))},
		{"Media errors", humanize.Comma(int64(h.MediaErrors))},
		{"Error log", humanize.Comma(int64(h.ErrorLogEntries))},
	})...)
	if w := h.Warnings(); len(w) > 0 {
		lines = append(lines, kvLine("Warnings", critStyle.Render(strings.Join(w, ", "))))
	}
	return lines
}

func ataLines(h model.ATAHealth, opts Options) []string {
	t := float64(h.TemperatureCelsius())
	lines := []string{}
	if t > 0 {
		lines = append(lines, kvLine("Temperature", tempColor(t).Render(opts.temp(t))))
	}
	lines = append(lines, kvLines([]kv{
		{"Power on", humanize.Comma(int64(h.PowerOnHours())) + " h"},
		{"Reallocated", humanize.Comma(int64(h.ReallocatedSectors()))},
		{"Pending", humanize.Comma(int64(h.PendingSectors()))},
	})...)
	if !h.ChecksumValid {
		lines = append(lines, kvLine("Checksum", warnStyle.Render("mismatch")))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%3s %-28s %3s %3s %3s %14s", "ID", "ATTRIBUTE", "CUR", "WST", "THR", "RAW")))
	for _, a := range h.Attributes {
		thr := "  -"
		if h.ThresholdsKnown {
			thr = fmt.Sprintf("%3d", a.Threshold)
		}
		row := fmt.Sprintf("%3d %s %3d %3d %s %14d", a.ID, padRight(a.Name, 28), a.Current, a.Worst, thr, a.Raw)
		switch {
		case a.Failing():
			row = critStyle.Render(row + "  FAILING")
		case a.Prefailure():
			row = valueStyle.Render(row)
		default:
			row = dimStyle.Render(row)
		}
		lines = append(lines, row)
	}
	return lines
}
