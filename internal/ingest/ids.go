package ingest

import "sync/atomic"

// IDAllocator hands out frame ids from one server-wide counter shared by all
// connections. The counter advances once per frame, even when the client
// supplies its own id.
type IDAllocator struct {
	next atomic.Int64
}

// Assign returns the client id when present, otherwise the next counter value.
func (a *IDAllocator) Assign(clientID *int64) int64 {
	n := a.next.Add(1) - 1
	if clientID != nil {
		return *clientID
	}
	return n
}

// Peek returns the id the next frame without a client id would get.
func (a *IDAllocator) Peek() int64 { return a.next.Load() }
