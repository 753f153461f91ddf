//go:build tesseract

package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// tesseractBuilt indicates this binary was compiled with real tesseract support.
var tesseractBuilt = true

// tesseractRecognizer owns one tesseract client; it is used by a single worker.
type tesseractRecognizer struct {
	client *gosseract.Client
}

// NewTesseract builds a tesseract client for s. RecModelDir is used as the
// tessdata prefix; Language may list several codes joined by '+' or ','.
// Tesseract has no separate detection model and no GPU path, so DetModelDir
// and UseGPU are only validated by SanityCheck.
func NewTesseract(s Settings) (Recognizer, error) {
	c := gosseract.NewClient()
	if s.RecModelDir != "" {
		if err := c.SetTessdataPrefix(s.RecModelDir); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	if langs := splitLanguages(s.Language); len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return &tesseractRecognizer{client: c}, nil
}

func (t *tesseractRecognizer) Recognize(img image.Image) ([]Detection, error) {
	if t.client == nil {
		return nil, errors.New("tesseract client not initialized")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, err
	}
	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, err
	}
	out := make([]Detection, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		out = append(out, Detection{
			Polygon:    rectPolygon(b.Box),
			Text:       text,
			Confidence: b.Confidence / 100,
		})
	}
	return out, nil
}

func (t *tesseractRecognizer) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}
