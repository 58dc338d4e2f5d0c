// Package wifi reads the Wi-Fi interface state and scan results from
// CoreWLAN.
package wifi

import (
	"sort"

	"github.com/ftahirops/macsense/model"
)

// Band values of CWChannelBand.
const (
	bandUnknown = 0
	band2GHz    = 1
	band5GHz    = 2
	band6GHz    = 3
)

// BandName names a CWChannelBand value.
func BandName(b int) string {
	switch b {
	case band2GHz:
		return "2.4GHz"
	case band5GHz:
		return "5GHz"
	case band6GHz:
		return "6GHz"
	}
	return ""
}

// WidthMHz converts a CWChannelWidth value.
func WidthMHz(w int) int {
	switch w {
	case 1:
		return 20
	case 2:
		return 40
	case 3:
		return 80
	case 4:
		return 160
	}
	return 0
}

// securityNames is indexed by CWSecurity.
var securityNames = map[int]string{
	0:  "None",
	1:  "WEP",
	2:  "WPA Personal",
	3:  "WPA/WPA2 Personal",
	4:  "WPA2 Personal",
	5:  "Personal",
	6:  "Dynamic WEP",
	7:  "WPA Enterprise",
	8:  "WPA/WPA2 Enterprise",
	9:  "WPA2 Enterprise",
	10: "Enterprise",
	11: "WPA3 Personal",
	12: "WPA3 Enterprise",
	13: "WPA3 Transition",
	14: "OWE",
	15: "OWE Transition",
}

// SecurityName names a CWSecurity value; unknown values yield "".
func SecurityName(s int) string {
	return securityNames[s]
}

// securityProbe is the order scan results are tested with supportsSecurity:.
var securityProbe = []int{0, 1, 2, 3, 4, 6, 7, 8, 9, 11, 12, 13, 14, 15}

// PHYModeName names a CWPHYMode value.
func PHYModeName(m int) string {
	switch m {
	case 1:
		return "802.11a"
	case 2:
		return "802.11b"
	case 3:
		return "802.11g"
	case 4:
		return "802.11n"
	case 5:
		return "802.11ac"
	case 6:
		return "802.11ax"
	case 7:
		return "802.11be"
	}
	return ""
}

// BandForChannel guesses the band from the channel number when CoreWLAN
// reports it as unknown.
func BandForChannel(ch int) string {
	switch {
	case ch >= 1 && ch <= 14:
		return BandName(band2GHz)
	case ch >= 32 && ch <= 177:
		return BandName(band5GHz)
	}
	return ""
}

// SortNetworks orders scan results strongest first, then by SSID, and
// drops duplicate BSSIDs.
func SortNetworks(nets []model.WiFiNetwork) []model.WiFiNetwork {
	seen := make(map[string]bool, len(nets))
	out := nets[:0]
	for _, n := range nets {
		if n.BSSID != "" {
			if seen[n.BSSID] {
				continue
			}
			seen[n.BSSID] = true
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RSSI != out[j].RSSI {
			return out[i].RSSI > out[j].RSSI
		}
		return out[i].SSID < out[j].SSID
	})
	return out
}
