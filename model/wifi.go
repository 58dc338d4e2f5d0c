package model

import "github.com/ftahirops/macsense/util"

// WiFiInterface is the state of the local Wi-Fi interface.
type WiFiInterface struct {
	Name        string  `json:"name"`
	PowerOn     bool    `json:"power_on"`
	SSID        string  `json:"ssid,omitempty"`
	BSSID       string  `json:"bssid,omitempty"`
	RSSI        int     `json:"rssi"`  // dBm
	Noise       int     `json:"noise"` // dBm
	TxRateMbps  float64 `json:"tx_rate_mbps"`
	Channel     int     `json:"channel"`
	Band        string  `json:"band,omitempty"`
	WidthMHz    int     `json:"width_mhz"`
	Security    string  `json:"security,omitempty"`
	PHYMode     string  `json:"phy_mode,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
}

// Associated reports whether the interface is joined to a network.
func (w WiFiInterface) Associated() bool {
	return w.PowerOn && w.RSSI != 0
}

// SNR returns the signal-to-noise ratio in dB.
func (w WiFiInterface) SNR() int { return snr(w.RSSI, w.Noise) }

// Quality maps RSSI to a 0..100 score.
func (w WiFiInterface) Quality() float64 { return SignalQuality(w.RSSI) }

// WiFiNetwork is one scan result.
type WiFiNetwork struct {
	SSID           string   `json:"ssid"`
	BSSID          string   `json:"bssid,omitempty"`
	RSSI           int      `json:"rssi"`
	Noise          int      `json:"noise"`
	Channel        int      `json:"channel"`
	Band           string   `json:"band,omitempty"`
	WidthMHz       int      `json:"width_mhz"`
	BeaconInterval int      `json:"beacon_interval"`
	Security       []string `json:"security,omitempty"`
	IBSS           bool     `json:"ibss"`
	CountryCode    string   `json:"country_code,omitempty"`
}

// SNR returns the signal-to-noise ratio in dB.
func (n WiFiNetwork) SNR() int { return snr(n.RSSI, n.Noise) }

// Quality maps RSSI to a 0..100 score.
func (n WiFiNetwork) Quality() float64 { return SignalQuality(n.RSSI) }

// WiFiInfo is the Wi-Fi section of a snapshot.
type WiFiInfo struct {
	Supported bool          `json:"supported"`
	Interface WiFiInterface `json:"interface"`
	Networks  []WiFiNetwork `json:"networks,omitempty"`
}

func snr(rssi, noise int) int {
	if rssi == 0 || noise == 0 {
		return 0
	}
	return rssi - noise
}

// SignalQuality maps RSSI linearly from -100 dBm (0) to -50 dBm (100).
func SignalQuality(rssi int) float64 {
	if rssi == 0 {
		return 0
	}
	return util.ClampPct(2 * float64(rssi+100))
}
