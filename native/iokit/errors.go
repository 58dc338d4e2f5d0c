// Package iokit wraps the IOKit calls the readers need: service matching,
// registry traversal, property extraction, user-client connections and
// CFPlugIn interfaces. Every object handed out must be released by the
// caller; Object.Release and Connection.Close tolerate zero values.
package iokit

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no registry entry matches.
var ErrNotFound = errors.New("iokit: no matching service")

// KernError is a kern_return_t / IOReturn value.
type KernError int32

var kernNames = map[uint32]string{
	0x3:        "KERN_NO_SPACE",
	0x4:        "KERN_INVALID_ARGUMENT",
	0x5:        "KERN_FAILURE",
	0xe00002bc: "kIOReturnError",
	0xe00002bd: "kIOReturnNoMemory",
	0xe00002be: "kIOReturnNoResources",
	0xe00002c1: "kIOReturnNotPrivileged",
	0xe00002c2: "kIOReturnBadArgument",
	0xe00002c5: "kIOReturnExclusiveAccess",
	0xe00002c7: "kIOReturnUnsupported",
	0xe00002ca: "kIOReturnIOError",
	0xe00002cd: "kIOReturnNotOpen",
	0xe00002d5: "kIOReturnBusy",
	0xe00002d6: "kIOReturnTimeout",
	0xe00002d8: "kIOReturnNotReady",
	0xe00002e2: "kIOReturnNotPermitted",
	0xe00002f0: "kIOReturnNotFound",
}

func (e KernError) Error() string {
	code := uint32(e)
	if name, ok := kernNames[code]; ok {
		return fmt.Sprintf("%s (0x%08x)", name, code)
	}
	return fmt.Sprintf("kern_return 0x%08x", code)
}

// NotPrivileged reports whether the call failed for lack of privileges,
// which callers treat as "no data" rather than a fault.
func (e KernError) NotPrivileged() bool {
	switch uint32(e) {
	case 0xe00002c1, 0xe00002e2:
		return true
	}
	return false
}

// Check converts a return code into an error, nil on success.
func Check(op string, code int32) error {
	if code == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w", op, KernError(code))
}
