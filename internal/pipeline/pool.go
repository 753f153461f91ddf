package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pool owns the frame queue, the result queue and a generation of workers.
// Lifecycle calls (Start, Drain, Restart, Shutdown) are serialized; accessors
// are safe from any goroutine.
type Pool struct {
	opMu sync.Mutex // serializes lifecycle operations

	mu       sync.RWMutex
	state    State
	settings Settings
	workers  []*worker

	generation atomic.Uint64
	restarts   atomic.Uint64
	live       atomic.Int64

	queue         *FrameQueue
	results       *ResultQueue
	newRecognizer RecognizerFactory
	drainTimeout  time.Duration
	publisher     EventPublisher
	log           zerolog.Logger
}

// DrainReport summarizes one drain.
type DrainReport struct {
	Workers int
	Exited  int
	// Leaked workers did not observe their sentinel in time. They retire
	// after their current frame.
	Leaked   int
	Duration time.Duration
}

// Start spawns s.Workers workers (default 16) bound to a new generation.
func (p *Pool) Start(s Settings) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()
	return p.start(s)
}

func (p *Pool) start(s Settings) error {
	s = s.Normalized()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateStopped {
		return fmt.Errorf("start: pool is %s", p.state)
	}
	gen := p.generation.Add(1)
	p.settings = s
	p.workers = make([]*worker, 0, s.Workers)
	for i := 0; i < s.Workers; i++ {
		w := &worker{id: i, gen: gen, settings: s, pool: p, done: make(chan struct{})}
		p.workers = append(p.workers, w)
		p.live.Add(1)
		workersGauge.Inc()
		go w.run()
	}
	p.setStateLocked(StateRunning)
	p.publisher.Publish(Event{Name: "pool_start", Fields: map[string]any{"workers": s.Workers, "generation": gen, "lang": s.Language}})
	p.log.Info().Int("workers", s.Workers).Uint64("generation", gen).Str("lang", s.Language).Msg("worker pool started")
	return nil
}

// Drain queues exactly one sentinel per worker, blocking while the frame queue
// is full, then waits up to the drain timeout for each to exit. Frames queued
// ahead of the sentinels are still processed.
// Draining a pool that is not running is a no-op.
func (p *Pool) Drain() DrainReport {
	p.opMu.Lock()
	defer p.opMu.Unlock()
	return p.drain()
}

func (p *Pool) drain() DrainReport {
	p.mu.Lock()
	if p.state != StateRunning {
		p.mu.Unlock()
		return DrainReport{}
	}
	p.setStateLocked(StateDraining)
	workers := p.workers
	p.workers = nil
	gen := p.generation.Load()
	p.mu.Unlock()

	rep := DrainReport{Workers: len(workers)}
	p.publisher.Publish(Event{Name: "drain_start", Fields: map[string]any{"workers": len(workers), "generation": gen}})
	start := time.Now()
	for range workers {
		p.queue.putSentinel(gen)
	}
	queueDepth.Set(float64(p.queue.Len()))
	for _, w := range workers {
		t := time.NewTimer(p.drainTimeout)
		select {
		case <-w.done:
			rep.Exited++
		case <-t.C:
			rep.Leaked++
			p.publisher.Publish(Event{Name: "drain_timeout", Fields: map[string]any{"worker": w.id, "generation": gen}})
			p.log.Warn().Int("worker", w.id).Uint64("generation", gen).Dur("timeout", p.drainTimeout).Msg("worker did not exit in time")
		}
		t.Stop()
	}
	rep.Duration = time.Since(start)

	p.mu.Lock()
	p.setStateLocked(StateStopped)
	p.mu.Unlock()
	p.publisher.Publish(Event{Name: "drain_done", Fields: map[string]any{"exited": rep.Exited, "leaked": rep.Leaked, "generation": gen}})
	p.log.Info().Int("exited", rep.Exited).Int("leaked", rep.Leaked).Dur("took", rep.Duration).Msg("worker pool drained")
	return rep
}

// Restart drains the current generation and starts a new one with s.
func (p *Pool) Restart(s Settings) (DrainReport, error) {
	p.opMu.Lock()
	defer p.opMu.Unlock()
	rep := p.drain()
	p.restarts.Add(1)
	poolRestartsTotal.Inc()
	return rep, p.start(s)
}

// Shutdown drains the pool for process exit.
func (p *Pool) Shutdown() DrainReport { return p.Drain() }

// Submit offers f to the frame queue without blocking. It returns false when
// the queue is full and f was dropped, or when the pool is stopped. Frames
// submitted while draining queue behind the sentinels for the next generation.
func (p *Pool) Submit(f *Frame) bool {
	if p.State() == StateStopped {
		framesDroppedTotal.Inc()
		return false
	}
	if !p.queue.TryEnqueue(f) {
		framesDroppedTotal.Inc()
		p.log.Debug().Int64("frame_id", f.ID).Int("queue_len", p.queue.Len()).Msg("frame queue full, dropping frame")
		return false
	}
	framesEnqueuedTotal.Inc()
	queueDepth.Set(float64(p.queue.Len()))
	return true
}

// Results exposes the result queue for the broadcast tick.
func (p *Pool) Results() *ResultQueue { return p.results }

// QueueLen reports queued items, including pending sentinels.
func (p *Pool) QueueLen() int { return p.queue.Len() }

// QueueCap reports the frame queue capacity.
func (p *Pool) QueueCap() int { return p.queue.Cap() }

// State returns the lifecycle state.
func (p *Pool) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Settings returns the settings of the current generation.
func (p *Pool) Settings() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// LiveWorkers counts worker goroutines that have not exited, leaked ones included.
func (p *Pool) LiveWorkers() int { return int(p.live.Load()) }

// Generation returns the current worker generation; it increases on every Start.
func (p *Pool) Generation() uint64 { return p.generation.Load() }

// Restarts counts completed Restart calls.
func (p *Pool) Restarts() uint64 { return p.restarts.Load() }

// setStateLocked requires p.mu held for writing.
func (p *Pool) setStateLocked(to State) {
	from := p.state
	if from == to {
		return
	}
	p.state = to
	p.publisher.Publish(Event{Name: "state", Fields: map[string]any{"from": from, "to": to}})
}
