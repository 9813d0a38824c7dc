package model

import "errors"

// ErrPermissionDenied is the one failure the pipelines surface to callers.
// Storage and playback failures are logged and degraded to empty results or
// no-ops instead.
var ErrPermissionDenied = errors.New("media library permission required")
