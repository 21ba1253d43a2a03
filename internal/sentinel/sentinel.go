package sentinel

import "errors"

// Sentinel dependency errors. Dependencies should return these (optionally wrapped)
// so callers can translate them into user-facing behavior exactly once.
var (
	ErrNoSession = errors.New("no session")
	ErrCorrupt   = errors.New("corrupt data")
)
