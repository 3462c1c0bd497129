package journal

import "errors"

// ErrMisconfiguredListener indicates a listener with invalid bound state
// (nil listener, malformed path, nil destination). Surfaced at registration
// time; the router never tolerates it at dispatch time.
var ErrMisconfiguredListener = errors.New("misconfigured listener")
