//go:build darwin

package mach

import "testing"

func TestHostPortTakenOnce(t *testing.T) {
	if err := load(); err != nil {
		t.Skipf("libSystem unavailable: %v", err)
	}
	port := hostPort
	if port == 0 {
		t.Fatal("host port not set after load")
	}

	orig := machHostSelf
	calls := 0
	machHostSelf = func() uint32 {
		calls++
		return orig()
	}
	defer func() { machHostSelf = orig }()

	for i := 0; i < 3; i++ {
		if _, err := HostVMInfo64(); err != nil {
			t.Fatalf("HostVMInfo64: %v", err)
		}
		if _, err := CPULoadInfo(); err != nil {
			t.Fatalf("CPULoadInfo: %v", err)
		}
	}
	if calls != 0 {
		t.Errorf("mach_host_self called %d times after load; each call leaks a send right", calls)
	}
	if hostPort != port {
		t.Errorf("host port changed from %d to %d", port, hostPort)
	}
}
