package pipeline

import "ocrstream/pkg/types"

// Status fills the pool-owned fields of a /status response.
// Connection and uptime fields are left for the caller.
func (p *Pool) Status() types.StatusResponse {
	p.mu.RLock()
	state, s := p.state, p.settings
	p.mu.RUnlock()
	return types.StatusResponse{
		State:          string(state),
		Workers:        p.LiveWorkers(),
		QueueLen:       p.queue.Len(),
		QueueCapacity:  p.queue.Cap(),
		PendingResults: p.results.Len(),
		Restarts:       p.restarts.Load(),
		Generation:     p.generation.Load(),
		Settings:       s.Wire(),
	}
}
