// Package pipeline runs text recognition off the I/O path. It is structured
// into small files by concern:
//
//   - pool.go: Pool lifecycle (Start, Drain, Restart, Shutdown) and accessors.
//   - config.go: PoolConfig and package defaults; NewPool applies defaults.
//   - types.go: Settings, Frame, Detection, Result and State.
//   - queue.go: bounded FrameQueue and unbounded ResultQueue.
//   - worker.go: the per-worker loop, panic recovery and ROI translation.
//   - errors.go: error types and helpers (IsRecognitionError, IsDependencyUnavailable).
//   - events.go, eventpub_memory.go: lifecycle events and an in-memory recorder.
//   - sanity.go: dependency checks for /sanity and the CLI.
//   - metrics.go: Prometheus collectors.
//
// Build tags:
//
//   - `-tags=tesseract` compiles recognizer_tesseract.go (gosseract, CGO).
//     Without it recognizer_stub.go is used and every frame yields an error
//     result, so the transport and queueing still run in CGO-free builds.
//
// Drain uses generation-tagged sentinels: a worker exits only on a sentinel of
// its own generation. Sentinel delivery blocks on a full queue, so every worker
// gets one. A worker still inside the recognizer when the drain timeout expires
// is abandoned and retires after that frame; a frame it dequeues after a
// restart is handed back to the queue for the new generation.
package pipeline
