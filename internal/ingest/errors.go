package ingest

import "errors"

// ErrUnsafeName is returned when client-supplied fields derive a path outside
// the data directory.
var ErrUnsafeName = errors.New("derived path escapes data directory")
