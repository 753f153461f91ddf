package pipeline

import (
	"image"
	"time"

	"ocrstream/pkg/types"
)

// State represents lifecycle state of the worker pool.
type State string

const (
	StateRunning  State = "running"
	StateDraining State = "draining"
	StateStopped  State = "stopped"
)

// Settings is the recognition configuration a worker captures when it is spawned.
// Workers never observe later changes; a change is applied by restarting the pool.
type Settings struct {
	Language    string
	UseGPU      bool
	DetModelDir string
	RecModelDir string
	Workers     int
}

// CriticalEqual reports whether s and o would build identical worker pools.
func (s Settings) CriticalEqual(o Settings) bool {
	return s.Language == o.Language &&
		s.UseGPU == o.UseGPU &&
		s.DetModelDir == o.DetModelDir &&
		s.RecModelDir == o.RecModelDir &&
		s.Workers == o.Workers
}

// Wire returns the settings as sent to clients.
func (s Settings) Wire() types.OCRSettings {
	return types.OCRSettings{
		Lang:        s.Language,
		UseGPU:      s.UseGPU,
		DetModelDir: s.DetModelDir,
		RecModelDir: s.RecModelDir,
	}
}

// Frame is one decoded image submitted for recognition. Immutable once built.
type Frame struct {
	ID    int64
	Image image.Image
	Meta  types.FrameMeta
}

// Point is a polygon vertex in image coordinates.
type Point struct {
	X, Y float64
}

// Detection is one recognized text region.
type Detection struct {
	Polygon    []Point
	Text       string
	Confidence float64
}

// Result is produced exactly once for every frame a worker dequeues.
type Result struct {
	FrameID       int64
	Detections    []Detection
	InferenceTime time.Duration
	Meta          types.FrameMeta
	Err           string
}

// Wire converts r into the ocr_result payload.
func (r Result) Wire() types.OCRResult {
	items := make([]types.OCRItem, 0, len(r.Detections))
	for _, d := range r.Detections {
		box := make([][2]float64, len(d.Polygon))
		for i, p := range d.Polygon {
			box[i] = [2]float64{p.X, p.Y}
		}
		items = append(items, types.OCRItem{Box: box, Text: d.Text, Confidence: d.Confidence})
	}
	return types.OCRResult{
		FrameID:       r.FrameID,
		Results:       items,
		InferenceTime: r.InferenceTime.Seconds(),
		MetaData:      r.Meta,
		Error:         r.Err,
	}
}
