package pipeline

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"ocrstream/pkg/types"
)

// fakeRecognizer returns one fixed detection at (5,5)-(10,10).
func fakeRecognizer(Settings) (Recognizer, error) {
	return RecognizeFunc(func(img image.Image) ([]Detection, error) {
		return []Detection{{
			Polygon:    rectPolygon(image.Rect(5, 5, 10, 10)),
			Text:       "hello",
			Confidence: 0.9,
		}}, nil
	}), nil
}

// gate blocks recognizers until released and reports when one is entered.
type gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}, 64), release: make(chan struct{})}
}

func (g *gate) open() { g.once.Do(func() { close(g.release) }) }

func (g *gate) factory(Settings) (Recognizer, error) {
	return RecognizeFunc(func(img image.Image) ([]Detection, error) {
		g.entered <- struct{}{}
		<-g.release
		return nil, nil
	}), nil
}

// langFactory reports the worker's language as detection text. Recognizers for
// "eng" block on the gate.
func (g *gate) langFactory(s Settings) (Recognizer, error) {
	return RecognizeFunc(func(img image.Image) ([]Detection, error) {
		if s.Language == "eng" {
			g.entered <- struct{}{}
			<-g.release
		}
		return []Detection{{Polygon: rectPolygon(image.Rect(0, 0, 1, 1)), Text: s.Language, Confidence: 1}}, nil
	}), nil
}

func (g *gate) waitEntered(t *testing.T) {
	t.Helper()
	select {
	case <-g.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("recognizer was never entered")
	}
}

func failingFactory(Settings) (Recognizer, error) {
	return nil, errors.New("no models")
}

func testFrame(id int64, w, h int) *Frame {
	return &Frame{ID: id, Image: image.NewGray(image.Rect(0, 0, w, h))}
}

func roiFrame(id int64, x, y float64) *Frame {
	f := testFrame(id, 32, 32)
	f.Meta = types.FrameMeta{IsROI: true, ROICoords: &types.Rect{X: x, Y: y, W: 32, H: 32}}
	return f
}

// waitResults collects results until n have arrived or the deadline passes.
func waitResults(t *testing.T, p *Pool, n int) []Result {
	t.Helper()
	var out []Result
	deadline := time.Now().Add(2 * time.Second)
	for len(out) < n {
		out = append(out, p.Results().DrainAll()...)
		if time.Now().After(deadline) {
			t.Fatalf("expected %d results, got %d", n, len(out))
		}
		time.Sleep(5 * time.Millisecond)
	}
	return out
}

// textFor returns the first detection text of frame id's result.
func textFor(t *testing.T, res []Result, id int64) string {
	t.Helper()
	for _, r := range res {
		if r.FrameID == id {
			if len(r.Detections) == 0 {
				t.Fatalf("frame %d: no detections (err=%q)", id, r.Err)
			}
			return r.Detections[0].Text
		}
	}
	t.Fatalf("no result for frame %d", id)
	return ""
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
