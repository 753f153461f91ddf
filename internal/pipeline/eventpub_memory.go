package pipeline

import "sync"

// MemoryPublisher stores events in-memory for tests and /status debugging.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
}

func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Transitions returns the from->to pairs of recorded state events, in order.
func (p *MemoryPublisher) Transitions() [][2]State {
	var out [][2]State
	for _, e := range p.Events() {
		if e.Name != "state" {
			continue
		}
		from, _ := e.Fields["from"].(State)
		to, _ := e.Fields["to"].(State)
		out = append(out, [2]State{from, to})
	}
	return out
}
