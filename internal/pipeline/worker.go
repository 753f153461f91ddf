package pipeline

import (
	"fmt"
	"time"
)

// worker consumes frames for one pool generation.
type worker struct {
	id       int
	gen      uint64
	settings Settings
	pool     *Pool
	done     chan struct{}
}

// run owns a recognizer for its whole life. It returns on a sentinel of its
// own generation, or once the pool has moved to a newer one. A stale worker
// never runs a frame with its old settings.
func (w *worker) run() {
	p := w.pool
	defer func() {
		p.live.Add(-1)
		workersGauge.Dec()
		close(w.done)
	}()

	rec, recErr := p.newRecognizer(w.settings)
	if recErr != nil {
		ev := p.log.Error()
		if IsDependencyUnavailable(recErr) {
			// Expected in builds without an engine; every frame reports it.
			ev = p.log.Warn()
		}
		ev.Err(recErr).Int("worker", w.id).Uint64("generation", w.gen).Msg("recognizer init failed")
	} else {
		defer func() {
			if err := rec.Close(); err != nil {
				p.log.Warn().Err(err).Int("worker", w.id).Msg("recognizer close")
			}
		}()
	}

	for {
		it := p.queue.Dequeue()
		queueDepth.Set(float64(p.queue.Len()))
		if it.sentinel {
			switch {
			case it.gen == w.gen:
				p.publisher.Publish(Event{Name: "worker_exit", Fields: map[string]any{"worker": w.id, "generation": w.gen}})
				return
			case it.gen > w.gen:
				// Belongs to a newer generation; hand it back before retiring.
				p.queue.putSentinel(it.gen)
				return
			default:
				continue
			}
		}
		if p.generation.Load() != w.gen {
			// The newer generation takes the frame.
			if !p.queue.TryEnqueue(it.frame) {
				framesDroppedTotal.Inc()
				p.log.Debug().Int64("frame_id", it.frame.ID).Msg("frame queue full, dropping frame handed back by stale worker")
			}
			p.log.Debug().Int("worker", w.id).Uint64("generation", w.gen).Msg("retiring stale worker")
			return
		}
		res := w.process(rec, recErr, it.frame)
		resultsTotal.WithLabelValues(outcomeLabel(res)).Inc()
		p.results.Push(res)
		if p.generation.Load() != w.gen {
			p.log.Debug().Int("worker", w.id).Uint64("generation", w.gen).Msg("retiring stale worker")
			return
		}
	}
}

// process always yields a Result; recognizer failures and panics become Err.
func (w *worker) process(rec Recognizer, recErr error, f *Frame) (res Result) {
	res = Result{FrameID: f.ID, Meta: f.Meta, Detections: []Detection{}}
	if recErr != nil {
		res.Err = frameError(recErr, f)
		return res
	}
	if f.Image == nil || f.Image.Bounds().Empty() {
		res.Err = frameError(errInvalidImage, f)
		return res
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Detections = []Detection{}
			res.InferenceTime = time.Since(start)
			res.Err = frameError(fmt.Errorf("recognizer panic: %v", r), f)
			w.pool.log.Error().Int64("frame_id", f.ID).Interface("panic", r).Msg("recognizer panic")
		}
	}()
	dets, err := rec.Recognize(f.Image)
	res.InferenceTime = time.Since(start)
	inferenceDuration.Observe(res.InferenceTime.Seconds())
	if err != nil {
		res.Err = frameError(&RecognitionError{FrameID: f.ID, Err: err}, f)
		return res
	}
	for i := range dets {
		dets[i].Confidence = clampConfidence(dets[i].Confidence)
	}
	translateROI(dets, f.Meta)
	if dets == nil {
		dets = []Detection{}
	}
	res.Detections = dets
	return res
}

func frameError(err error, f *Frame) string {
	if f.Image == nil {
		return fmt.Sprintf("OCR worker error: %v. Frame shape: none", err)
	}
	b := f.Image.Bounds()
	return fmt.Sprintf("OCR worker error: %v. Frame shape: %dx%d", err, b.Dx(), b.Dy())
}
