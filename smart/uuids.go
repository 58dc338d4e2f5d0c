package smart

import (
	"encoding/binary"
	"strings"

	"github.com/google/uuid"
)

// CFPlugIn type and interface identifiers from IOKit's
// NVMeSMARTLibExternal.h and ATASMARTLib.h.
var (
	nvmeUserClientTypeID = uuid.MustParse("AA0FA6F9-C2D6-457F-B10B-59A13253292F")
	nvmeInterfaceID      = uuid.MustParse("CCD1DB19-FD9A-4DAF-BF95-12454B230AB6")
	ataUserClientTypeID  = uuid.MustParse("24514B7A-2804-11D6-8A02-003065704866")
	ataInterfaceID       = uuid.MustParse("08ABE21C-20D4-11D6-8DF6-0003935A76B2")
	cfPlugInInterfaceID  = uuid.MustParse("C244E858-109C-11D4-91D4-0050E4C6426F")
)

// iidWords splits a CFUUIDBytes value into the two machine words it
// occupies when passed by value (REFIID) on arm64 and amd64.
func iidWords(id uuid.UUID) (lo, hi uintptr) {
	return uintptr(binary.LittleEndian.Uint64(id[0:8])), uintptr(binary.LittleEndian.Uint64(id[8:16]))
}

// cfString renders an identifier in the upper-case form used by the SDK headers.
func cfString(id uuid.UUID) string {
	return strings.ToUpper(id.String())
}
