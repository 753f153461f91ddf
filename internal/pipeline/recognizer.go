package pipeline

import "image"

// Recognizer abstracts the text recognition capability used by workers.
// Instances are not assumed to be safe for concurrent use: every worker owns one.
type Recognizer interface {
	// Recognize returns the text regions found in img. Polygons are in img's
	// coordinate space; confidences are in [0,1].
	Recognize(img image.Image) ([]Detection, error)
	// Close releases any resources associated with the recognizer.
	Close() error
}

// RecognizerFactory builds a recognizer for the given settings snapshot.
type RecognizerFactory func(Settings) (Recognizer, error)

// RecognizeFunc adapts a plain function to the Recognizer interface.
type RecognizeFunc func(img image.Image) ([]Detection, error)

func (f RecognizeFunc) Recognize(img image.Image) ([]Detection, error) { return f(img) }

func (f RecognizeFunc) Close() error { return nil }

// rectPolygon returns the clockwise corners of an axis-aligned box.
func rectPolygon(r image.Rectangle) []Point {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}
