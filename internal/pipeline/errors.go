package pipeline

import (
	"errors"
	"fmt"
)

// RecognitionError wraps a failure of the recognition capability for one frame.
type RecognitionError struct {
	FrameID int64
	Err     error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition failed for frame %d: %v", e.FrameID, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// IsRecognitionError reports whether err came from the recognition capability.
func IsRecognitionError(err error) bool {
	var re *RecognitionError
	return errors.As(err, &re)
}

// dependencyUnavailableError signals a missing external dependency (e.g., tesseract)
// so callers can report it distinctly from a per-frame failure.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var de dependencyUnavailableError
	return errors.As(err, &de)
}

// errInvalidImage is reported for frames without usable pixels.
var errInvalidImage = errors.New("invalid frame data: empty image")
