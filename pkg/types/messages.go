package types

import (
	"encoding/json"
	"fmt"
)

// Websocket message discriminators.
const (
	MsgFrame         = "frame"
	MsgConfig        = "config"
	MsgPing          = "ping"
	MsgPong          = "pong"
	MsgInit          = "init"
	MsgFrameReceived = "frame_received"
	MsgFrameDropped  = "frame_dropped"
	MsgOCRResult     = "ocr_result"
	MsgConfigUpdated = "config_updated"
	MsgError         = "error"
)

// Rect is an x,y,w,h rectangle. On the wire it is a 4-element array.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{r.X, r.Y, r.W, r.H})
}

func (r *Rect) UnmarshalJSON(b []byte) error {
	var arr []float64
	if err := json.Unmarshal(b, &arr); err == nil {
		if len(arr) < 2 {
			return fmt.Errorf("rect needs at least x,y; got %d values", len(arr))
		}
		*r = Rect{X: arr[0], Y: arr[1]}
		if len(arr) > 2 {
			r.W = arr[2]
		}
		if len(arr) > 3 {
			r.H = arr[3]
		}
		return nil
	}
	var obj struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		W float64 `json:"w"`
		H float64 `json:"h"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("rect must be [x,y,w,h]: %w", err)
	}
	*r = Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
	return nil
}

// FrameMeta is the per-frame metadata echoed back in results as meta_data.
type FrameMeta struct {
	IsROI          bool  `json:"is_roi"`
	OriginalWidth  *int  `json:"original_width"`
	OriginalHeight *int  `json:"original_height"`
	ROICoords      *Rect `json:"roi_coords"`
	Width          *int  `json:"width"`
	Height         *int  `json:"height"`
}

// FrameHeader is the JSON metadata that prefixes a binary frame packet.
type FrameHeader struct {
	FrameID *int64 `json:"frame_id,omitempty"`
	FrameMeta
}

// Inbound is any text message received from a client.
type Inbound struct {
	Type string `json:"type"`
	// Frame holds the legacy text frame payload (base64 string).
	Frame json.RawMessage `json:"frame,omitempty"`
	FrameHeader
	Config *ConfigUpdate `json:"config,omitempty"`
}

// ConfigUpdate is the body of a "config" message. ROI is kept raw so that an
// explicit null (clear ROI) can be told apart from an absent key.
type ConfigUpdate struct {
	ROI json.RawMessage `json:"roi,omitempty"`
	OCR *OCRUpdate      `json:"ocr,omitempty"`
}

// OCRUpdate carries the recognition fields a client may change. Nil means unchanged.
type OCRUpdate struct {
	Lang        *string `json:"lang,omitempty"`
	UseGPU      *bool   `json:"use_gpu,omitempty"`
	DetModelDir *string `json:"det_model_dir,omitempty"`
	RecModelDir *string `json:"rec_model_dir,omitempty"`
	NumWorkers  *int    `json:"num_workers,omitempty"`
}

// OCRSettings is the wire view of the recognition settings.
type OCRSettings struct {
	Lang        string `json:"lang"`
	UseGPU      bool   `json:"use_gpu"`
	DetModelDir string `json:"det_model_dir"`
	RecModelDir string `json:"rec_model_dir"`
}

// ConfigPayload is sent in "init" and "config_updated".
type ConfigPayload struct {
	ROI         *Rect       `json:"roi"`
	OCRInterval float64     `json:"ocr_interval"`
	OCRSettings OCRSettings `json:"ocr_settings"`
	NumWorkers  int         `json:"num_workers"`
}

// ConfigMessage is an "init" or "config_updated" message.
type ConfigMessage struct {
	Type   string        `json:"type"`
	Config ConfigPayload `json:"config"`
}

// FrameAck is a "frame_received" or "frame_dropped" message.
type FrameAck struct {
	Type    string `json:"type"`
	FrameID int64  `json:"frame_id"`
}

// OCRItem is one recognized text region.
type OCRItem struct {
	Box        [][2]float64 `json:"box"`
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
}

// OCRResult is the data of an "ocr_result" message.
type OCRResult struct {
	FrameID       int64     `json:"frame_id"`
	Results       []OCRItem `json:"results"`
	InferenceTime float64   `json:"inference_time"`
	MetaData      FrameMeta `json:"meta_data"`
	Error         string    `json:"error,omitempty"`
}

// OCRResultMessage wraps an OCRResult for broadcast.
type OCRResultMessage struct {
	Type string    `json:"type"`
	Data OCRResult `json:"data"`
}

// ErrorMessage reports a protocol or decode failure to the sender.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Pong answers a ping.
type Pong struct {
	Type string `json:"type"`
}
