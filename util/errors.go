package util

import "errors"

// ErrUnsupported is returned by native readers on platforms or hardware
// that do not provide the requested data.
var ErrUnsupported = errors.New("not supported on this platform")
