package hub

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ocrstream/internal/pipeline"
)

func startedPool(t *testing.T, s pipeline.Settings) *pipeline.Pool {
	t.Helper()
	p := pipeline.NewPool(pipeline.PoolConfig{Recognizers: fixedRecognizer})
	if err := p.Start(s); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { p.Shutdown() })
	return p
}

func TestLanguages_ScansRecModelDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"eng.traineddata", "deu.traineddata", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	h := New(startedPool(t, pipeline.Settings{Language: "eng", Workers: 1, RecModelDir: dir}), Config{})
	resp, err := h.Languages()
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if resp.Dir != dir || len(resp.Languages) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Languages[0].Code != "deu" || resp.Languages[1].Code != "eng" {
		t.Fatalf("languages not sorted: %+v", resp.Languages)
	}
}

func TestLanguages_Unset(t *testing.T) {
	t.Setenv("TESSDATA_PREFIX", "")
	h := New(startedPool(t, pipeline.Settings{Language: "eng", Workers: 1}), Config{})
	if _, err := h.Languages(); !errors.Is(err, ErrModelDirUnset) {
		t.Fatalf("expected ErrModelDirUnset, got %v", err)
	}
}

func TestLanguages_TessdataPrefixFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fra.traineddata"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TESSDATA_PREFIX", dir)
	h := New(startedPool(t, pipeline.Settings{Language: "eng", Workers: 1}), Config{})
	resp, err := h.Languages()
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if len(resp.Languages) != 1 || resp.Languages[0].Code != "fra" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSanity_MissingRecModelDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	h := New(startedPool(t, pipeline.Settings{Language: "eng", Workers: 1, RecModelDir: missing}), Config{})
	rep := h.Sanity()
	if rep.OK() || rep.RecModelDirFound {
		t.Fatalf("expected failing report: %+v", rep)
	}
}
