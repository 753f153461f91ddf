package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"ocrstream/internal/config"
	"ocrstream/internal/pipeline"
)

func TestApplyFlags_OnlyChanged(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--workers", "3", "--lang", "deu", "--cors-origins", "http://a,http://b"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := config.Defaults()
	cfg.Addr = ":9999"
	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.NumWorkers != 3 || cfg.Lang != "deu" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("unchanged flag overrode addr: %q", cfg.Addr)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b" {
		t.Fatalf("cors origins=%v", cfg.CORSOrigins)
	}
}

func TestResolveConfig_FileEnvFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ocrstream.yaml")
	if err := os.WriteFile(path, []byte("lang: fra\nnum_workers: 2\nqueue_capacity: 4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("OCRSTREAM_QUEUE_CAPACITY", "7")

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--config", path, "--env-file", filepath.Join(dir, "missing.env"), "--workers", "5"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts := &options{configPath: path, envFiles: []string{filepath.Join(dir, "missing.env")}}
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Lang != "fra" || cfg.QueueCapacity != 7 || cfg.NumWorkers != 5 {
		t.Fatalf("unexpected layering: lang=%s queue=%d workers=%d", cfg.Lang, cfg.QueueCapacity, cfg.NumWorkers)
	}
}

func TestResolveConfig_Invalid(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--log-format", "xml"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := resolveConfig(cmd, &options{envFiles: []string{filepath.Join(t.TempDir(), "none.env")}}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestNewLogger_FileAndLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ocrstreamd.log")
	cfg := config.Defaults()
	cfg.LogLevel = "warn"
	cfg.LogFile = logPath
	var stderr bytes.Buffer
	l, closer, err := newLogger(cfg, &stderr)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	l.Info().Msg("hidden")
	l.Warn().Msg("visible")
	_ = closer.Close()

	if strings.Contains(stderr.String(), "hidden") || !strings.Contains(stderr.String(), "visible") {
		t.Fatalf("stderr=%q", stderr.String())
	}
	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"service":"ocrstreamd"`) {
		t.Fatalf("log file=%q", b)
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogLevel = "loud"
	if _, _, err := newLogger(cfg, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestPrintSanity(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	printSanity(&buf, pipeline.SanityReport{
		Engine:        "tesseract",
		Language:      "eng",
		RecModelDir:   "/nope",
		LanguageFound: false,
		Errors:        []string{"rec_model_dir not found: /nope"},
	})
	out := buf.String()
	if !strings.Contains(out, "FAIL engine tesseract") || !strings.Contains(out, "rec_model_dir not found") {
		t.Fatalf("output=%q", out)
	}
}

func TestPrintLanguages(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "eng.traineddata"), []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	if err := printLanguages(&buf, dir); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "eng") || !strings.Contains(buf.String(), "3") {
		t.Fatalf("output=%q", buf.String())
	}
}
