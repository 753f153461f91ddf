package pipeline

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding PoolConfig fields are unset.
const (
	defaultQueueCapacity = 10
	defaultWorkers       = 16
	defaultDrainTimeout  = 2 * time.Second
	defaultLanguage      = "eng"
)

// PoolConfig encapsulates all tunables for Pool construction.
type PoolConfig struct {
	// QueueCapacity bounds the frame queue; frames beyond it are dropped.
	QueueCapacity int
	// DrainTimeout bounds the wait for each worker to observe its sentinel.
	DrainTimeout time.Duration
	// Recognizers builds one recognizer per worker. Defaults to NewTesseract.
	Recognizers RecognizerFactory
	Publisher   EventPublisher
	Logger      *zerolog.Logger
}

// NewPool constructs a stopped Pool from PoolConfig. Call Start to spawn workers.
func NewPool(cfg PoolConfig) *Pool {
	p := &Pool{
		state:     StateStopped,
		results:   NewResultQueue(),
		publisher: cfg.Publisher,
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = defaultQueueCapacity
	}
	p.queue = NewFrameQueue(cfg.QueueCapacity)
	if cfg.DrainTimeout <= 0 {
		p.drainTimeout = defaultDrainTimeout
	} else {
		p.drainTimeout = cfg.DrainTimeout
	}
	if cfg.Recognizers == nil {
		p.newRecognizer = NewTesseract
	} else {
		p.newRecognizer = cfg.Recognizers
	}
	if p.publisher == nil {
		p.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		p.log = cfg.Logger.With().Str("component", "pipeline").Logger()
	} else {
		p.log = zerolog.Nop()
	}
	return p
}

// Normalized fills unset settings with package defaults.
func (s Settings) Normalized() Settings {
	if s.Workers < 1 {
		s.Workers = defaultWorkers
	}
	if s.Language == "" {
		s.Language = defaultLanguage
	}
	return s
}
