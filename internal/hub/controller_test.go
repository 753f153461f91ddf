package hub

import (
	"testing"

	"ocrstream/internal/ingest"
	"ocrstream/internal/pipeline"
	"ocrstream/pkg/types"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }
func boolp(b bool) *bool    { return &b }

func TestMergeSettings(t *testing.T) {
	cur := pipeline.Settings{Language: "eng", Workers: 4}
	if got := mergeSettings(cur, nil); got != cur {
		t.Fatalf("nil update changed settings: %+v", got)
	}
	got := mergeSettings(cur, &types.OCRUpdate{
		Lang:        strp("deu"),
		UseGPU:      boolp(true),
		DetModelDir: strp("/det"),
		RecModelDir: strp("/rec"),
		NumWorkers:  intp(-3),
	})
	want := pipeline.Settings{Language: "deu", UseGPU: true, DetModelDir: "/det", RecModelDir: "/rec", Workers: 1}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestController_Apply(t *testing.T) {
	pub := pipeline.NewMemoryPublisher()
	pool := pipeline.NewPool(pipeline.PoolConfig{Recognizers: fixedRecognizer, Publisher: pub})
	if err := pool.Start(pipeline.Settings{Language: "eng", Workers: 2}); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer pool.Shutdown()
	c := NewController(pool, nil, 0.5, nil)

	restarted, err := c.Apply(types.ConfigUpdate{OCR: &types.OCRUpdate{Lang: strp("eng"), NumWorkers: intp(2)}})
	if err != nil || restarted {
		t.Fatalf("unchanged settings must not restart: restarted=%v err=%v", restarted, err)
	}

	restarted, err = c.Apply(types.ConfigUpdate{ROI: []byte(`{"x":3,"y":4,"w":5,"h":6}`)})
	if err != nil || restarted {
		t.Fatalf("roi-only: restarted=%v err=%v", restarted, err)
	}
	if roi := c.ROI(); roi == nil || roi.X != 3 || roi.H != 6 {
		t.Fatalf("roi: %+v", roi)
	}

	restarted, err = c.Apply(types.ConfigUpdate{OCR: &types.OCRUpdate{NumWorkers: intp(3)}})
	if err != nil || !restarted {
		t.Fatalf("worker count change must restart: restarted=%v err=%v", restarted, err)
	}
	p := c.Payload()
	if p.NumWorkers != 3 || p.OCRSettings.Lang != "eng" || p.ROI == nil || p.OCRInterval != 0.5 {
		t.Fatalf("payload: %+v", p)
	}

	_, err = c.Apply(types.ConfigUpdate{ROI: []byte(`"bad"`), OCR: &types.OCRUpdate{Lang: strp("fra")}})
	if !ingest.IsProtocolError(err) {
		t.Fatalf("bad roi should be a protocol error: %v", err)
	}
	if pool.Settings().Language != "eng" {
		t.Fatalf("rejected update must not apply ocr changes")
	}
}

func TestController_ApplyEmptyLangKeepsDefault(t *testing.T) {
	pool := pipeline.NewPool(pipeline.PoolConfig{Recognizers: fixedRecognizer})
	if err := pool.Start(pipeline.Settings{Workers: 1}); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer pool.Shutdown()
	c := NewController(pool, nil, 0.5, nil)
	gen := pool.Generation()

	restarted, err := c.Apply(types.ConfigUpdate{OCR: &types.OCRUpdate{Lang: strp("")}})
	if err != nil || restarted {
		t.Fatalf("empty lang resolves to the current default: restarted=%v err=%v", restarted, err)
	}
	if pool.Restarts() != 0 || pool.Generation() != gen {
		t.Fatalf("pool restarted: restarts=%d generation=%d", pool.Restarts(), pool.Generation())
	}
	if got := c.Payload().OCRSettings.Lang; got != "eng" {
		t.Fatalf("lang=%q", got)
	}
}
