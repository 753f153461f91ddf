//go:build !gocv

package ingest

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type stdDecoder struct{}

// NewDecoder returns the pure-Go decoder (png, jpeg, gif, bmp, tiff, webp).
// Build with -tags=gocv to decode through OpenCV instead.
func NewDecoder() Decoder { return stdDecoder{} }

func (stdDecoder) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}
