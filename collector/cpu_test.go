package collector

import (
	"testing"

	"github.com/ftahirops/macsense/native/mach"
)

func TestTicksFromLoads(t *testing.T) {
	loads := []mach.CPULoad{
		{100, 50, 800, 10},
		{200, 20, 700, 0},
	}
	total, per := ticksFromLoads(loads)
	if len(per) != 2 {
		t.Fatalf("per-core = %d, want 2", len(per))
	}
	if per[0].User != 100 || per[0].System != 50 || per[0].Idle != 800 || per[0].Nice != 10 {
		t.Errorf("core 0 = %+v", per[0])
	}
	if total.User != 300 || total.System != 70 || total.Idle != 1500 || total.Nice != 10 {
		t.Errorf("total = %+v", total)
	}
	if total.Total() != per[0].Total()+per[1].Total() {
		t.Error("total ticks should equal the per-core sum")
	}
}

func TestTicksFromNoLoads(t *testing.T) {
	total, per := ticksFromLoads(nil)
	if total.Total() != 0 || len(per) != 0 {
		t.Errorf("got %+v %v", total, per)
	}
}
