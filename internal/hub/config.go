package hub

import (
	"time"

	"github.com/rs/zerolog"

	"ocrstream/internal/ingest"
	"ocrstream/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultBroadcastInterval = 10 * time.Millisecond
	defaultLivenessInterval  = 5 * time.Second
	defaultIdleTimeout       = 30 * time.Second
	defaultWriteTimeout      = 5 * time.Second
	defaultMaxMessageBytes   = 32 << 20
	defaultOCRInterval       = 0.5
)

// Config encapsulates all tunables for Hub construction.
type Config struct {
	// BroadcastInterval is the result fan-out tick.
	BroadcastInterval time.Duration
	// LivenessInterval is how often idle connections are looked for.
	LivenessInterval time.Duration
	// IdleTimeout evicts connections without a parsed message for this long.
	IdleTimeout time.Duration
	// WriteTimeout bounds every websocket write made by the loop.
	WriteTimeout    time.Duration
	MaxMessageBytes int64
	// NotifyDrops sends frame_dropped after the ack when the queue was full.
	NotifyDrops bool
	// OCRInterval is informational; it is echoed in init and config_updated.
	OCRInterval float64
	// ROI is the initial region of interest reported to clients.
	ROI *types.Rect
	// AllowedOrigins restricts websocket upgrades; empty allows any origin.
	AllowedOrigins []string
	Decoder        ingest.Decoder
	Logger         *zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.BroadcastInterval <= 0 {
		c.BroadcastInterval = defaultBroadcastInterval
	}
	if c.LivenessInterval <= 0 {
		c.LivenessInterval = defaultLivenessInterval
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = defaultIdleTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = defaultMaxMessageBytes
	}
	if c.OCRInterval <= 0 {
		c.OCRInterval = defaultOCRInterval
	}
	return c
}
