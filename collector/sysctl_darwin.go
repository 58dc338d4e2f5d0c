//go:build darwin

package collector

import "golang.org/x/sys/unix"

func sysctlUint(name string) (uint64, error) {
	b, err := unix.SysctlRaw(name)
	if err != nil {
		return 0, err
	}
	return sysctlNumber(b)
}

// sysctlInt reads an integer node, 0 when absent.
func sysctlInt(name string) int {
	v, _ := sysctlUint(name)
	return int(v)
}

func sysctlString(name string) string {
	s, _ := unix.Sysctl(name)
	return s
}
