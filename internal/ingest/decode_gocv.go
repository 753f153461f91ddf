//go:build gocv

package ingest

import (
	"image"

	"gocv.io/x/gocv"
)

type gocvDecoder struct{}

// NewDecoder returns an OpenCV-backed decoder. Images are read as 3-channel color.
func NewDecoder() Decoder { return gocvDecoder{} }

func (gocvDecoder) Decode(data []byte) (image.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errFailedDecode
	}
	return mat.ToImage()
}
