package ingest

import (
	"fmt"

	"github.com/rs/zerolog"

	"ocrstream/internal/pipeline"
)

// Ingestor turns FrameEvents into pipeline frames: it assigns the frame id,
// then decodes the image.
type Ingestor struct {
	ids     *IDAllocator
	decoder Decoder
	log     zerolog.Logger
}

// NewIngestor builds an Ingestor. A nil decoder selects NewDecoder; a nil
// logger disables logging.
func NewIngestor(dec Decoder, logger *zerolog.Logger) *Ingestor {
	in := &Ingestor{ids: &IDAllocator{}, decoder: dec}
	if in.decoder == nil {
		in.decoder = NewDecoder()
	}
	if logger != nil {
		in.log = logger.With().Str("component", "ingest").Logger()
	} else {
		in.log = zerolog.Nop()
	}
	return in
}

// Frame builds the frame for ev. The id is assigned before decoding, so a
// frame that fails to decode still consumes a counter value; the returned
// *DecodeError carries that id.
func (in *Ingestor) Frame(ev FrameEvent) (*pipeline.Frame, error) {
	id := in.ids.Assign(ev.Header.FrameID)
	payload := ev.Payload
	if ev.Legacy != nil {
		b, err := legacyPayload(ev.Legacy)
		if err != nil {
			return nil, &DecodeError{FrameID: id, Err: err}
		}
		payload = b
	}
	if len(payload) == 0 {
		return nil, &DecodeError{FrameID: id, Err: fmt.Errorf("%w: %w", errFailedDecode, errEmptyPayload)}
	}
	img, err := in.decoder.Decode(payload)
	if err != nil {
		return nil, &DecodeError{FrameID: id, Err: fmt.Errorf("%w: %w", errFailedDecode, err)}
	}
	b := img.Bounds()
	in.log.Debug().Int64("frame_id", id).Int("width", b.Dx()).Int("height", b.Dy()).
		Bool("is_roi", ev.Header.IsROI).Msg("frame received")
	return &pipeline.Frame{ID: id, Image: img, Meta: ev.Header.FrameMeta}, nil
}

// NextID exposes the counter for status reporting.
func (in *Ingestor) NextID() int64 { return in.ids.Peek() }
