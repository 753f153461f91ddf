package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OCRSTREAM_"

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays OCRSTREAM_* variables onto c. lookup is usually os.LookupEnv.
func ApplyEnv(c Config, lookup func(string) (string, bool)) (Config, error) {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	str("ADDR", &c.Addr)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("LOG_FILE", &c.LogFile)
	str("LANG", &c.Lang)
	boolean("USE_GPU", &c.UseGPU)
	str("DET_MODEL_DIR", &c.DetModelDir)
	str("REC_MODEL_DIR", &c.RecModelDir)
	integer("NUM_WORKERS", &c.NumWorkers)
	integer("QUEUE_CAPACITY", &c.QueueCapacity)
	integer("DRAIN_TIMEOUT_MS", &c.DrainTimeoutMS)
	integer("BROADCAST_INTERVAL_MS", &c.BroadcastIntervalMS)
	integer("LIVENESS_INTERVAL_MS", &c.LivenessIntervalMS)
	integer("IDLE_TIMEOUT_MS", &c.IdleTimeoutMS)
	integer("WRITE_TIMEOUT_MS", &c.WriteTimeoutMS)
	boolean("NOTIFY_DROPS", &c.NotifyDrops)
	if v, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = SplitCSV(v)
	}
	return c, errors.Join(errs...)
}

// Resolve builds the effective configuration: defaults, then the file at
// path (if any), then the environment.
func Resolve(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	if path != "" {
		fileCfg, err := Load(path)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		cfg = cfg.Merge(fileCfg)
	}
	return ApplyEnv(cfg, lookup)
}

// SplitCSV splits a comma-separated list, trimming blanks.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
