package types

// Language is a recognition language installed on disk.
type Language struct {
	// Language code as understood by the recognition engine.
	// example: eng
	Code string `json:"code" example:"eng"`
	// Absolute path to the trained data file.
	// example: /usr/share/tesseract-ocr/5/tessdata/eng.traineddata
	Path string `json:"path" example:"/usr/share/tesseract-ocr/5/tessdata/eng.traineddata"`
	// Size of the trained data file in bytes.
	// example: 4113088
	SizeBytes int64 `json:"size_bytes" example:"4113088"`
}
