package hub

import "time"

// Registry tracks live connections. It is owned by the hub loop goroutine
// and is not safe for concurrent use.
type Registry struct {
	conns map[string]*conn
}

func NewRegistry() *Registry { return &Registry{conns: make(map[string]*conn)} }

// Add inserts c and marks it active at now.
func (r *Registry) Add(c *conn, now time.Time) {
	c.lastActive = now
	r.conns[c.id] = c
}

// Remove deletes the connection and reports whether it was present.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.conns[id]; !ok {
		return false
	}
	delete(r.conns, id)
	return true
}

func (r *Registry) Get(id string) (*conn, bool) {
	c, ok := r.conns[id]
	return c, ok
}

// Touch records activity for id.
func (r *Registry) Touch(id string, now time.Time) {
	if c, ok := r.conns[id]; ok {
		c.lastActive = now
	}
}

func (r *Registry) Len() int { return len(r.conns) }

// Each calls fn for every connection. fn must not mutate the registry.
func (r *Registry) Each(fn func(*conn)) {
	for _, c := range r.conns {
		fn(c)
	}
}

// Idle returns connections whose last activity is older than timeout.
func (r *Registry) Idle(now time.Time, timeout time.Duration) []*conn {
	var out []*conn
	for _, c := range r.conns {
		if now.Sub(c.lastActive) > timeout {
			out = append(out, c)
		}
	}
	return out
}
