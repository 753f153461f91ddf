package pipeline

import "sync"

// queueItem is either a frame or a stop sentinel for one pool generation.
type queueItem struct {
	frame    *Frame
	sentinel bool
	gen      uint64
}

// FrameQueue is the bounded mailbox from the I/O side to the workers.
// A buffered channel keeps Len() <= Cap() without any extra locking.
type FrameQueue struct {
	ch chan queueItem
}

// NewFrameQueue returns a queue holding at most capacity items.
func NewFrameQueue(capacity int) *FrameQueue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	return &FrameQueue{ch: make(chan queueItem, capacity)}
}

// TryEnqueue adds f without blocking. It returns false, dropping f, when the queue is full.
func (q *FrameQueue) TryEnqueue(f *Frame) bool {
	select {
	case q.ch <- queueItem{frame: f}:
		return true
	default:
		return false
	}
}

// Dequeue blocks until an item is available.
func (q *FrameQueue) Dequeue() queueItem {
	return <-q.ch
}

// putSentinel blocks until a stop sentinel for gen is queued. Workers of gen
// keep consuming while a drain waits here, so room always frees up.
func (q *FrameQueue) putSentinel(gen uint64) {
	q.ch <- queueItem{sentinel: true, gen: gen}
}

// Len reports the number of queued items, sentinels included.
func (q *FrameQueue) Len() int { return len(q.ch) }

// Cap reports the fixed capacity.
func (q *FrameQueue) Cap() int { return cap(q.ch) }

// ResultQueue is the unbounded mailbox from the workers back to the I/O side.
type ResultQueue struct {
	mu    sync.Mutex
	items []Result
}

func NewResultQueue() *ResultQueue { return &ResultQueue{} }

// Push appends r. It never blocks on consumers.
func (q *ResultQueue) Push(r Result) {
	q.mu.Lock()
	q.items = append(q.items, r)
	q.mu.Unlock()
}

// DrainAll removes and returns every result currently queued, oldest first.
func (q *ResultQueue) DrainAll() []Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of pending results.
func (q *ResultQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
