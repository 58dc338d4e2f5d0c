package iokit

import (
	"errors"
	"strings"
	"testing"
)

func TestKernErrorNames(t *testing.T) {
	tests := []struct {
		code int32
		want string
	}{
		{int32(-536870207), "kIOReturnNotPrivileged"}, // 0xe00002c1
		{5, "KERN_FAILURE"},
		{0x1234, "kern_return 0x00001234"},
	}
	for _, tt := range tests {
		got := KernError(tt.code).Error()
		if !strings.Contains(got, tt.want) {
			t.Errorf("KernError(%#x).Error() = %q; want it to contain %q", uint32(tt.code), got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	if err := Check("op", 0); err != nil {
		t.Fatalf("Check(0) = %v; want nil", err)
	}
	err := Check("IOServiceOpen", int32(-536870174)) // 0xe00002e2
	var ke KernError
	if !errors.As(err, &ke) {
		t.Fatalf("Check returned %v; want a KernError", err)
	}
	if !ke.NotPrivileged() {
		t.Errorf("kIOReturnNotPermitted should count as not privileged")
	}
	if !strings.HasPrefix(err.Error(), "IOServiceOpen: ") {
		t.Errorf("error %q should carry the operation name", err)
	}
}
