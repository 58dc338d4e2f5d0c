package smart

import (
	"encoding/binary"
	"fmt"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/util"
)

// LogSize is the size of both the NVMe health log page and the ATA SMART
// data structure.
const LogSize = 512

// DecodeNVMe decodes an NVMe SMART / Health Information log page (log
// identifier 02h). Offsets follow the NVMe base specification.
func DecodeNVMe(b []byte) (*model.NVMeHealth, error) {
	if len(b) < LogSize {
		return nil, fmt.Errorf("nvme smart log: %d bytes, want %d", len(b), LogSize)
	}
	h := &model.NVMeHealth{
		CriticalWarning:     b[0],
		CompositeTempKelvin: binary.LittleEndian.Uint16(b[1:3]),
		AvailableSparePct:   b[3],
		SpareThresholdPct:   b[4],
		PercentageUsed:      b[5],
		DataUnitsRead:       util.Uint128LE(b[32:48]),
		DataUnitsWritten:    util.Uint128LE(b[48:64]),
		HostReadCommands:    util.Uint128LE(b[64:80]),
		HostWriteCommands:   util.Uint128LE(b[80:96]),
		ControllerBusyMin:   util.Uint128LE(b[96:112]),
		PowerCycles:         util.Uint128LE(b[112:128]),
		PowerOnHours:        util.Uint128LE(b[128:144]),
		UnsafeShutdowns:     util.Uint128LE(b[144:160]),
		MediaErrors:         util.Uint128LE(b[160:176]),
		ErrorLogEntries:     util.Uint128LE(b[176:192]),
		WarningTempMinutes:  binary.LittleEndian.Uint32(b[192:196]),
		CriticalTempMinutes: binary.LittleEndian.Uint32(b[196:200]),
	}
	for i := range h.SensorKelvin {
		off := 200 + 2*i
		h.SensorKelvin[i] = binary.LittleEndian.Uint16(b[off : off+2])
	}
	return h, nil
}

const (
	ataAttrCount     = 30
	ataAttrSize      = 12
	ataAttrOffset    = 2
	ataOfflineStatus = 362
	ataSelfTest      = 363
)

var ataAttrNames = map[uint8]string{
	1:   "Raw_Read_Error_Rate",
	3:   "Spin_Up_Time",
	4:   "Start_Stop_Count",
	5:   "Reallocated_Sector_Ct",
	7:   "Seek_Error_Rate",
	9:   "Power_On_Hours",
	10:  "Spin_Retry_Count",
	12:  "Power_Cycle_Count",
	169: "Remaining_Lifetime_Perc",
	171: "Program_Fail_Count",
	172: "Erase_Fail_Count",
	173: "Wear_Leveling_Count",
	174: "Unexpect_Power_Loss_Ct",
	177: "Wear_Leveling_Count",
	181: "Program_Fail_Cnt_Total",
	183: "Runtime_Bad_Block",
	184: "End-to-End_Error",
	187: "Reported_Uncorrect",
	188: "Command_Timeout",
	190: "Airflow_Temperature_Cel",
	192: "Power-Off_Retract_Count",
	193: "Load_Cycle_Count",
	194: "Temperature_Celsius",
	195: "Hardware_ECC_Recovered",
	196: "Reallocated_Event_Count",
	197: "Current_Pending_Sector",
	198: "Offline_Uncorrectable",
	199: "UDMA_CRC_Error_Count",
	231: "SSD_Life_Left",
	233: "Media_Wearout_Indicator",
	241: "Total_LBAs_Written",
	242: "Total_LBAs_Read",
}

// AttributeName returns the conventional name of an ATA attribute id.
func AttributeName(id uint8) string {
	if n, ok := ataAttrNames[id]; ok {
		return n
	}
	return fmt.Sprintf("Unknown_Attribute_%d", id)
}

// DecodeATA decodes the ATA SMART data structure. thresholds may be nil;
// when present it is the SMART thresholds sector with the same entry
// layout (id, threshold).
func DecodeATA(data, thresholds []byte) (*model.ATAHealth, error) {
	if len(data) < LogSize {
		return nil, fmt.Errorf("ata smart data: %d bytes, want %d", len(data), LogSize)
	}
	h := &model.ATAHealth{
		Revision:       binary.LittleEndian.Uint16(data[0:2]),
		OfflineStatus:  data[ataOfflineStatus],
		SelfTestStatus: data[ataSelfTest],
		ChecksumValid:  checksumOK(data[:LogSize]),
	}

	limits := make(map[uint8]uint8)
	if len(thresholds) >= LogSize {
		h.ThresholdsKnown = true
		for i := 0; i < ataAttrCount; i++ {
			e := thresholds[ataAttrOffset+i*ataAttrSize:]
			if e[0] != 0 {
				limits[e[0]] = e[1]
			}
		}
	}

	for i := 0; i < ataAttrCount; i++ {
		e := data[ataAttrOffset+i*ataAttrSize : ataAttrOffset+(i+1)*ataAttrSize]
		id := e[0]
		if id == 0 {
			continue
		}
		h.Attributes = append(h.Attributes, model.ATAAttribute{
			ID:        id,
			Name:      AttributeName(id),
			Flags:     binary.LittleEndian.Uint16(e[1:3]),
			Current:   e[3],
			Worst:     e[4],
			Threshold: limits[id],
			Raw:       util.Uint48LE(e[5:11]),
		})
	}
	return h, nil
}

// checksumOK verifies the two's complement checksum in byte 511: the sum
// of all 512 bytes is zero modulo 256.
func checksumOK(b []byte) bool {
	var sum uint8
	for _, c := range b {
		sum += c
	}
	return sum == 0
}
