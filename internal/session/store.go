// Package session persists the single authenticated session that the
// gateway carries across restarts: the bearer token and the serialized
// user record, written and cleared together as one unit, plus a mirrored
// verified flag for quick checks.
package session

// Record is the persisted session pair. Token and User are only ever
// stored together; a record with one but not the other never exists.
type Record struct {
	Token         string `json:"token"`
	User          []byte `json:"user"`
	EmailVerified bool   `json:"email_verified"`
	Device        string `json:"device,omitempty"`
}

// Error Contract:
// All store methods follow this pattern:
//   - Read returns sentinel.ErrNoSession (wrapped) when no session is stored
//   - Read returns sentinel.ErrCorrupt (wrapped) after clearing an
//     undecodable record; callers treat this the same as absence
//   - Clear is idempotent and never fails on an already-empty store
type Store interface {
	// Write stores the token/user pair atomically.
	Write(rec Record) error
	// Read returns the stored pair, or signals absence.
	Read() (Record, error)
	// Clear removes the pair unconditionally.
	Clear() error
}
