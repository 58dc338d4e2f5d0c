//go:build darwin

package wifi

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/native/cf"
)

const frameworkPath = "/System/Library/Frameworks/CoreWLAN.framework/CoreWLAN"

type selectors struct {
	alloc, init, drain                    objc.SEL
	sharedWiFiClient, iface               objc.SEL
	interfaceName, powerOn                objc.SEL
	ssid, bssid, rssiValue, noise         objc.SEL
	transmitRate, wlanChannel             objc.SEL
	channelNumber, channelBand, chanWidth objc.SEL
	security, activePHYMode, countryCode  objc.SEL
	scan, allObjects, count, objectAt     objc.SEL
	beaconInterval, ibss, supportsSec     objc.SEL
}

var (
	loadOnce sync.Once
	loadErr  error
	sel      selectors

	clientClass objc.Class
	poolClass   objc.Class
)

// load opens CoreWLAN and builds the selector table. The table is not
// modified afterwards.
func load() error {
	loadOnce.Do(func() {
		if loadErr = cf.Load(); loadErr != nil {
			return
		}
		if _, err := purego.Dlopen(frameworkPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
			loadErr = fmt.Errorf("dlopen CoreWLAN: %w", err)
			return
		}
		clientClass = objc.GetClass("CWWiFiClient")
		poolClass = objc.GetClass("NSAutoreleasePool")
		if clientClass == 0 || poolClass == 0 {
			loadErr = fmt.Errorf("CoreWLAN classes unavailable")
			return
		}
		sel = selectors{
			alloc:            objc.RegisterName("alloc"),
			init:             objc.RegisterName("init"),
			drain:            objc.RegisterName("drain"),
			sharedWiFiClient: objc.RegisterName("sharedWiFiClient"),
			iface:            objc.RegisterName("interface"),
			interfaceName:    objc.RegisterName("interfaceName"),
			powerOn:          objc.RegisterName("powerOn"),
			ssid:             objc.RegisterName("ssid"),
			bssid:            objc.RegisterName("bssid"),
			rssiValue:        objc.RegisterName("rssiValue"),
			noise:            objc.RegisterName("noiseMeasurement"),
			transmitRate:     objc.RegisterName("transmitRate"),
			wlanChannel:      objc.RegisterName("wlanChannel"),
			channelNumber:    objc.RegisterName("channelNumber"),
			channelBand:      objc.RegisterName("channelBand"),
			chanWidth:        objc.RegisterName("channelWidth"),
			security:         objc.RegisterName("security"),
			activePHYMode:    objc.RegisterName("activePHYMode"),
			countryCode:      objc.RegisterName("countryCode"),
			scan:             objc.RegisterName("scanForNetworksWithName:error:"),
			allObjects:       objc.RegisterName("allObjects"),
			count:            objc.RegisterName("count"),
			objectAt:         objc.RegisterName("objectAtIndex:"),
			beaconInterval:   objc.RegisterName("beaconInterval"),
			ibss:             objc.RegisterName("ibss"),
			supportsSec:      objc.RegisterName("supportsSecurity:"),
		}
	})
	return loadErr
}

// Read returns the interface state and, when scan is set, nearby
// networks. Objects created during the call are released by a local
// autorelease pool.
func Read(scan bool) (model.WiFiInfo, error) {
	if err := load(); err != nil {
		return model.WiFiInfo{}, err
	}
	pool := objc.ID(poolClass).Send(sel.alloc).Send(sel.init)
	defer pool.Send(sel.drain)

	client := objc.ID(clientClass).Send(sel.sharedWiFiClient)
	if client == 0 {
		return model.WiFiInfo{}, fmt.Errorf("CWWiFiClient unavailable")
	}
	iface := client.Send(sel.iface)
	if iface == 0 {
		// No Wi-Fi hardware.
		return model.WiFiInfo{}, nil
	}

	info := model.WiFiInfo{Supported: true, Interface: readInterface(iface)}
	if scan && info.Interface.PowerOn {
		nets, err := scanNetworks(iface)
		if err != nil {
			return info, err
		}
		info.Networks = SortNetworks(nets)
	}
	return info, nil
}

func readInterface(iface objc.ID) model.WiFiInterface {
	w := model.WiFiInterface{
		Name:        nsString(iface.Send(sel.interfaceName)),
		PowerOn:     objc.Send[bool](iface, sel.powerOn),
		SSID:        nsString(iface.Send(sel.ssid)),
		BSSID:       nsString(iface.Send(sel.bssid)),
		RSSI:        int(objc.Send[int64](iface, sel.rssiValue)),
		Noise:       int(objc.Send[int64](iface, sel.noise)),
		TxRateMbps:  objc.Send[float64](iface, sel.transmitRate),
		Security:    SecurityName(int(objc.Send[int64](iface, sel.security))),
		PHYMode:     PHYModeName(int(objc.Send[int64](iface, sel.activePHYMode))),
		CountryCode: nsString(iface.Send(sel.countryCode)),
	}
	w.Channel, w.Band, w.WidthMHz = readChannel(iface.Send(sel.wlanChannel))
	return w
}

func readChannel(ch objc.ID) (number int, band string, width int) {
	if ch == 0 {
		return 0, "", 0
	}
	number = int(objc.Send[int64](ch, sel.channelNumber))
	band = BandName(int(objc.Send[int64](ch, sel.channelBand)))
	if band == "" {
		band = BandForChannel(number)
	}
	width = WidthMHz(int(objc.Send[int64](ch, sel.chanWidth)))
	return number, band, width
}

func scanNetworks(iface objc.ID) ([]model.WiFiNetwork, error) {
	var nsErr objc.ID
	set := iface.Send(sel.scan, objc.ID(0), unsafe.Pointer(&nsErr))
	if set == 0 {
		return nil, fmt.Errorf("scanForNetworksWithName failed")
	}
	arr := set.Send(sel.allObjects)
	n := int(objc.Send[uint64](arr, sel.count))
	nets := make([]model.WiFiNetwork, 0, n)
	for i := 0; i < n; i++ {
		nw := arr.Send(sel.objectAt, uint64(i))
		if nw == 0 {
			continue
		}
		net := model.WiFiNetwork{
			SSID:           nsString(nw.Send(sel.ssid)),
			BSSID:          nsString(nw.Send(sel.bssid)),
			RSSI:           int(objc.Send[int64](nw, sel.rssiValue)),
			Noise:          int(objc.Send[int64](nw, sel.noise)),
			BeaconInterval: int(objc.Send[int64](nw, sel.beaconInterval)),
			IBSS:           objc.Send[bool](nw, sel.ibss),
			CountryCode:    nsString(nw.Send(sel.countryCode)),
		}
		net.Channel, net.Band, net.WidthMHz = readChannel(nw.Send(sel.wlanChannel))
		for _, s := range securityProbe {
			if objc.Send[bool](nw, sel.supportsSec, int64(s)) {
				net.Security = append(net.Security, SecurityName(s))
			}
		}
		nets = append(nets, net)
	}
	return nets, nil
}

// nsString copies an NSString; nil yields "". NSString is toll-free
// bridged to CFString.
func nsString(s objc.ID) string {
	return cf.GoString(cf.Ref(s))
}
