package ingest

import (
	"errors"
	"fmt"
)

// ProtocolError reports a malformed inbound message. Its Error text is the
// message sent back to the client; the connection stays open.
type ProtocolError struct {
	Message string
	Err     error
}

func (e *ProtocolError) Error() string { return e.Message }

func (e *ProtocolError) Unwrap() error { return e.Err }

// DecodeError reports image bytes that do not decode to a raster image.
// The frame is not enqueued.
type DecodeError struct {
	FrameID int64
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Error processing frame: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsProtocolError reports whether err is a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsDecodeError reports whether err is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func binaryError(format string, args ...any) *ProtocolError {
	msg := fmt.Sprintf(format, args...)
	return &ProtocolError{Message: "Error processing binary message: " + msg, Err: errors.New(msg)}
}

var (
	errFailedDecode = errors.New("Failed to decode image data")
	errEmptyPayload = errors.New("empty image payload")
)
