//go:build !tesseract

package pipeline

// This file provides a no-CGO stub for the tesseract recognizer. It is compiled
// when the 'tesseract' build tag is NOT set, keeping default builds and CI CGO-free.
// The real recognizer lives in recognizer_tesseract.go (tagged 'tesseract').

// tesseractBuilt indicates whether this binary was compiled with tesseract support.
var tesseractBuilt = false

// NewTesseract refuses to build a recognizer without the 'tesseract' build tag.
// Workers surface the error on every frame instead of producing fake text.
func NewTesseract(s Settings) (Recognizer, error) {
	return nil, ErrDependencyUnavailable("tesseract support not built (missing 'tesseract' build tag)")
}
