package smc

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/ftahirops/macsense/model"
)

type fakeReader struct {
	keys   []string
	values map[string]Value
}

func (f *fakeReader) KeyCount() (int, error) { return len(f.keys), nil }

func (f *fakeReader) KeyAt(i int) (string, error) { return f.keys[i], nil }

func (f *fakeReader) Read(key string) (Value, error) {
	v, ok := f.values[key]
	if !ok {
		return Value{}, ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeReader) Close() error { return nil }

func fltValue(key string, v float32) Value {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return Value{Key: key, DataType: "flt ", Bytes: b}
}

func newFake() *fakeReader {
	f := &fakeReader{values: map[string]Value{}}
	add := func(v Value) {
		f.keys = append(f.keys, v.Key)
		f.values[v.Key] = v
	}
	add(Value{Key: "#KEY", DataType: "ui32", Bytes: []byte{0, 0, 0, 9}})
	add(fltValue("Tp09", 55.25))
	add(Value{Key: "TC0P", DataType: "sp78", Bytes: []byte{0x30, 0x00}})
	add(fltValue("TA0P", -127)) // absent sensor
	add(fltValue("PSTR", 12.5))
	add(fltValue("VD0R", 20.1))
	add(Value{Key: "FNum", DataType: "ui8 ", Bytes: []byte{1}})
	add(fltValue("F0Ac", 2400))
	add(fltValue("F0Mn", 1200))
	add(fltValue("F0Mx", 6000))
	return f
}

func TestClassify(t *testing.T) {
	tests := map[string]model.SensorKind{
		"TC0P": model.SensorTemperature,
		"VD0R": model.SensorVoltage,
		"ID0R": model.SensorCurrent,
		"PSTR": model.SensorPower,
		"F0Ac": model.SensorFan,
		"FNum": model.SensorOther,
		"#KEY": model.SensorOther,
		"TC0":  model.SensorOther,
	}
	for key, want := range tests {
		if got := Classify(key); got != want {
			t.Errorf("Classify(%q) = %s; want %s", key, got, want)
		}
	}
}

func TestReadSensors(t *testing.T) {
	got, err := ReadSensors(newFake(), nil)
	if err != nil {
		t.Fatalf("ReadSensors: %v", err)
	}
	if !got.Supported {
		t.Error("Supported should be set")
	}
	temps := got.ByKind(model.SensorTemperature)
	if len(temps) != 2 {
		t.Fatalf("got %d temperatures (%+v); want 2, implausible TA0P dropped", len(temps), temps)
	}
	if temps[0].Key != "TC0P" || temps[0].Value != 48 {
		t.Errorf("first temperature = %+v; want TC0P 48", temps[0])
	}
	if temps[0].Description != "CPU proximity" {
		t.Errorf("TC0P description = %q", temps[0].Description)
	}
	hot, ok := got.MaxTemperature()
	if !ok || hot.Key != "Tp09" {
		t.Errorf("MaxTemperature = %+v, %v; want Tp09", hot, ok)
	}
	if len(got.Fans) != 1 {
		t.Fatalf("got %d fans; want 1", len(got.Fans))
	}
	if pct := got.Fans[0].Percent(); pct != 25 {
		t.Errorf("fan percent = %v; want 25", pct)
	}
}

func TestReadSensorsPrefixFilter(t *testing.T) {
	got, err := ReadSensors(newFake(), []string{"P"})
	if err != nil {
		t.Fatalf("ReadSensors: %v", err)
	}
	if len(got.Sensors) != 1 || got.Sensors[0].Key != "PSTR" {
		t.Errorf("prefix P kept %+v; want only PSTR", got.Sensors)
	}
}

func TestReadSensorsWithoutFans(t *testing.T) {
	f := newFake()
	delete(f.values, "FNum")
	got, err := ReadSensors(f, nil)
	if err != nil {
		t.Fatalf("fanless machine should not fail: %v", err)
	}
	if len(got.Fans) != 0 {
		t.Errorf("got fans %+v; want none", got.Fans)
	}
}
