package ingest

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"strings"
)

// Decoder turns compressed image bytes into pixels.
type Decoder interface {
	Decode(data []byte) (image.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(data []byte) (image.Image, error)

func (f DecoderFunc) Decode(data []byte) (image.Image, error) { return f(data) }

// legacyPayload extracts image bytes from a text frame. The field must be a
// JSON string holding base64 (optionally a data: URL); a string that is not
// base64 is used as raw bytes.
func legacyPayload(raw json.RawMessage) ([]byte, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("Frame data must be a base64 string")
	}
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	if s == "" {
		return nil, errEmptyPayload
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return []byte(s), nil
}
