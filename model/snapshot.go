package model

import "time"

// Snapshot holds a point-in-time view of the machine. Sections that were
// not collected (disabled or unsupported) are left at their zero value.
type Snapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	Host      HostInfo       `json:"host"`
	CPU       CPUInfo        `json:"cpu"`
	Memory    MemoryInfo     `json:"memory"`
	Volumes   []Volume       `json:"volumes,omitempty"`
	Disks     []DiskDevice   `json:"disks,omitempty"`
	Network   []NetInterface `json:"network,omitempty"`
	GPUs      []GPUInfo      `json:"gpus,omitempty"`
	Battery   BatteryInfo    `json:"battery"`
	Sensors   SensorReadings `json:"sensors"`
	WiFi      WiFiInfo       `json:"wifi"`
	SMART     []SMARTLog     `json:"smart,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
}

// HostInfo identifies the machine and OS.
type HostInfo struct {
	Hostname      string    `json:"hostname"`
	OSName        string    `json:"os_name"`
	OSVersion     string    `json:"os_version"`
	KernelRelease string    `json:"kernel_release"`
	HardwareModel string    `json:"hardware_model"`
	Arch          string    `json:"arch"`
	AppleSilicon  bool      `json:"apple_silicon"`
	Translated    bool      `json:"translated"` // process runs under Rosetta
	BootTime      time.Time `json:"boot_time"`
}

// Uptime returns the time elapsed since boot relative to now.
func (h HostInfo) Uptime(now time.Time) time.Duration {
	if h.BootTime.IsZero() || now.Before(h.BootTime) {
		return 0
	}
	return now.Sub(h.BootTime)
}

// DiskRate holds computed per-device rates.
type DiskRate struct {
	Name       string  `json:"name"`
	ReadBps    float64 `json:"read_bps"`
	WriteBps   float64 `json:"write_bps"`
	ReadIOPS   float64 `json:"read_iops"`
	WriteIOPS  float64 `json:"write_iops"`
	AvgAwaitMs float64 `json:"avg_await_ms"`
}

// NetRate holds computed per-interface rates.
type NetRate struct {
	Name     string    `json:"name"`
	RxBps    float64   `json:"rx_bps"`
	TxBps    float64   `json:"tx_bps"`
	RxPPS    float64   `json:"rx_pps"`
	TxPPS    float64   `json:"tx_pps"`
	ErrorsPS float64   `json:"errors_ps"`
	DropsPS  float64   `json:"drops_ps"`
	State    LinkState `json:"state"`
}

// RateSnapshot holds all computed rates between two snapshots.
type RateSnapshot struct {
	DeltaSec float64 `json:"delta_sec"`

	CPUBusyPct   float64   `json:"cpu_busy_pct"`
	CPUUserPct   float64   `json:"cpu_user_pct"`
	CPUSystemPct float64   `json:"cpu_system_pct"`
	CPUNicePct   float64   `json:"cpu_nice_pct"`
	CPUIdlePct   float64   `json:"cpu_idle_pct"`
	PerCoreBusy  []float64 `json:"per_core_busy,omitempty"`

	// pages/s
	PageInRate      float64 `json:"page_in_rate"`
	PageOutRate     float64 `json:"page_out_rate"`
	SwapInRate      float64 `json:"swap_in_rate"`
	SwapOutRate     float64 `json:"swap_out_rate"`
	CompressionRate float64 `json:"compression_rate"`

	DiskRates []DiskRate `json:"disk_rates,omitempty"`
	NetRates  []NetRate  `json:"net_rates,omitempty"`
}
