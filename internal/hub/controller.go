package hub

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"ocrstream/internal/ingest"
	"ocrstream/internal/pipeline"
	"ocrstream/pkg/types"
)

// Controller owns the ROI and applies settings changes to the pool. It runs
// on the hub loop goroutine; a critical change blocks it for the whole
// drain and restart.
type Controller struct {
	pool        *pipeline.Pool
	roi         *types.Rect
	ocrInterval float64
	log         zerolog.Logger
}

func NewController(pool *pipeline.Pool, roi *types.Rect, ocrInterval float64, logger *zerolog.Logger) *Controller {
	c := &Controller{pool: pool, roi: roi, ocrInterval: ocrInterval}
	if logger != nil {
		c.log = logger.With().Str("component", "config").Logger()
	} else {
		c.log = zerolog.Nop()
	}
	return c
}

// Payload is the full configuration sent in init and config_updated.
func (c *Controller) Payload() types.ConfigPayload {
	s := c.pool.Settings()
	return types.ConfigPayload{
		ROI:         c.roi,
		OCRInterval: c.ocrInterval,
		OCRSettings: s.Wire(),
		NumWorkers:  s.Workers,
	}
}

// ROI returns the current region of interest, nil when unset.
func (c *Controller) ROI() *types.Rect { return c.roi }

// Apply merges u into the current configuration. ROI changes take effect
// immediately; a change to any critical setting restarts the pool.
// A malformed roi rejects the whole update.
func (c *Controller) Apply(u types.ConfigUpdate) (restarted bool, err error) {
	var roi *types.Rect
	roiSet := len(u.ROI) > 0
	if roiSet {
		if err := json.Unmarshal(u.ROI, &roi); err != nil {
			return false, &ingest.ProtocolError{Message: fmt.Sprintf("Invalid config: roi: %v", err), Err: err}
		}
	}
	cur := c.pool.Settings()
	// An empty lang means the default, not a change.
	next := mergeSettings(cur, u.OCR).Normalized()
	if roiSet {
		c.roi = roi
		c.log.Info().Interface("roi", roi).Msg("roi updated")
	}
	if next.CriticalEqual(cur) {
		return false, nil
	}
	c.log.Info().
		Str("lang", next.Language).Bool("use_gpu", next.UseGPU).Int("workers", next.Workers).
		Msg("critical settings changed, restarting worker pool")
	rep, err := c.pool.Restart(next)
	if rep.Leaked > 0 {
		c.log.Warn().Int("leaked", rep.Leaked).Msg("restart proceeded with leaked workers")
	}
	if err != nil {
		return true, fmt.Errorf("Error applying config: %w", err)
	}
	return true, nil
}

// mergeSettings applies the non-nil fields of u over cur. Workers is clamped to >= 1.
func mergeSettings(cur pipeline.Settings, u *types.OCRUpdate) pipeline.Settings {
	if u == nil {
		return cur
	}
	next := cur
	if u.Lang != nil {
		next.Language = *u.Lang
	}
	if u.UseGPU != nil {
		next.UseGPU = *u.UseGPU
	}
	if u.DetModelDir != nil {
		next.DetModelDir = *u.DetModelDir
	}
	if u.RecModelDir != nil {
		next.RecModelDir = *u.RecModelDir
	}
	if u.NumWorkers != nil {
		next.Workers = max(1, *u.NumWorkers)
	}
	return next
}
