package catalog

import "sync"

// Snapshot is a consistent read of a collection's state.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Err     string
}

// Collection holds the shared list state behind a controller. Every
// operation takes a sequence number when it starts; a result only
// applies if no newer operation started in the meantime, so overlapping
// fetches settle on the last one issued rather than the last one to
// return.
type Collection[T any] struct {
	mu      sync.Mutex
	seq     uint64
	items   []T
	loading bool
	err     string
}

// Begin marks the collection busy and returns the operation's sequence
// number. Starting an operation clears any previous error.
func (c *Collection[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.loading = true
	c.err = ""
	return c.seq
}

// Finish applies an operation's outcome. Stale outcomes, superseded by
// a newer begin, are dropped whole. clearOnErr controls whether a
// failure also empties the items (list fetches do, detail fetches keep
// whatever was on screen).
func (c *Collection[T]) Finish(seq uint64, items []T, errMsg string, clearOnErr bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return false
	}
	c.loading = false
	c.err = errMsg
	if errMsg == "" {
		if items != nil {
			c.items = items
		}
	} else if clearOnErr {
		c.items = nil
	}
	return true
}

func (c *Collection[T]) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = ""
}

func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{Items: items, Loading: c.loading, Err: c.err}
}
