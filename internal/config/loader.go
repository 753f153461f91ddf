package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"ocrstream/pkg/types"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified"; Resolve fills them from Defaults.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
	LogFile   string `json:"log_file" yaml:"log_file" toml:"log_file"`

	Lang        string `json:"lang" yaml:"lang" toml:"lang"`
	UseGPU      bool   `json:"use_gpu" yaml:"use_gpu" toml:"use_gpu"`
	DetModelDir string `json:"det_model_dir" yaml:"det_model_dir" toml:"det_model_dir"`
	RecModelDir string `json:"rec_model_dir" yaml:"rec_model_dir" toml:"rec_model_dir"`
	NumWorkers  int    `json:"num_workers" yaml:"num_workers" toml:"num_workers"`

	QueueCapacity       int       `json:"queue_capacity" yaml:"queue_capacity" toml:"queue_capacity"`
	DrainTimeoutMS      int       `json:"drain_timeout_ms" yaml:"drain_timeout_ms" toml:"drain_timeout_ms"`
	BroadcastIntervalMS int       `json:"broadcast_interval_ms" yaml:"broadcast_interval_ms" toml:"broadcast_interval_ms"`
	LivenessIntervalMS  int       `json:"liveness_interval_ms" yaml:"liveness_interval_ms" toml:"liveness_interval_ms"`
	IdleTimeoutMS       int       `json:"idle_timeout_ms" yaml:"idle_timeout_ms" toml:"idle_timeout_ms"`
	WriteTimeoutMS      int       `json:"write_timeout_ms" yaml:"write_timeout_ms" toml:"write_timeout_ms"`
	MaxMessageBytes     int64     `json:"max_message_bytes" yaml:"max_message_bytes" toml:"max_message_bytes"`
	NotifyDrops         bool      `json:"notify_drops" yaml:"notify_drops" toml:"notify_drops"`
	OCRInterval         float64   `json:"ocr_interval" yaml:"ocr_interval" toml:"ocr_interval"`
	ROI                 []float64 `json:"roi" yaml:"roi" toml:"roi"`
	CORSOrigins         []string  `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:                ":8765",
		LogLevel:            "info",
		LogFormat:           "json",
		Lang:                "eng",
		NumWorkers:          16,
		QueueCapacity:       10,
		DrainTimeoutMS:      2000,
		BroadcastIntervalMS: 10,
		LivenessIntervalMS:  5000,
		IdleTimeoutMS:       30000,
		WriteTimeoutMS:      5000,
		MaxMessageBytes:     32 << 20,
		OCRInterval:         0.5,
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge overlays the non-zero fields of o onto c.
func (c Config) Merge(o Config) Config {
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setStr(&c.Addr, o.Addr)
	setStr(&c.LogLevel, o.LogLevel)
	setStr(&c.LogFormat, o.LogFormat)
	setStr(&c.LogFile, o.LogFile)
	setStr(&c.Lang, o.Lang)
	setStr(&c.DetModelDir, o.DetModelDir)
	setStr(&c.RecModelDir, o.RecModelDir)
	setInt(&c.NumWorkers, o.NumWorkers)
	setInt(&c.QueueCapacity, o.QueueCapacity)
	setInt(&c.DrainTimeoutMS, o.DrainTimeoutMS)
	setInt(&c.BroadcastIntervalMS, o.BroadcastIntervalMS)
	setInt(&c.LivenessIntervalMS, o.LivenessIntervalMS)
	setInt(&c.IdleTimeoutMS, o.IdleTimeoutMS)
	setInt(&c.WriteTimeoutMS, o.WriteTimeoutMS)
	if o.MaxMessageBytes != 0 {
		c.MaxMessageBytes = o.MaxMessageBytes
	}
	if o.UseGPU {
		c.UseGPU = true
	}
	if o.NotifyDrops {
		c.NotifyDrops = true
	}
	if o.OCRInterval != 0 {
		c.OCRInterval = o.OCRInterval
	}
	if len(o.ROI) > 0 {
		c.ROI = o.ROI
	}
	if len(o.CORSOrigins) > 0 {
		c.CORSOrigins = o.CORSOrigins
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must be set")
	}
	if c.NumWorkers < 1 {
		return fmt.Errorf("num_workers must be >= 1, got %d", c.NumWorkers)
	}
	if c.QueueCapacity < 1 {
		return fmt.Errorf("queue_capacity must be >= 1, got %d", c.QueueCapacity)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format must be json or console, got %q", c.LogFormat)
	}
	if n := len(c.ROI); n != 0 && n != 4 {
		return fmt.Errorf("roi must have 4 values [x,y,w,h], got %d", n)
	}
	return nil
}

// InitialROI converts the configured roi into a rectangle, nil when unset.
func (c Config) InitialROI() *types.Rect {
	if len(c.ROI) != 4 {
		return nil
	}
	return &types.Rect{X: c.ROI[0], Y: c.ROI[1], W: c.ROI[2], H: c.ROI[3]}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (c Config) DrainTimeout() time.Duration      { return ms(c.DrainTimeoutMS) }
func (c Config) BroadcastInterval() time.Duration { return ms(c.BroadcastIntervalMS) }
func (c Config) LivenessInterval() time.Duration  { return ms(c.LivenessIntervalMS) }
func (c Config) IdleTimeout() time.Duration       { return ms(c.IdleTimeoutMS) }
func (c Config) WriteTimeout() time.Duration      { return ms(c.WriteTimeoutMS) }
