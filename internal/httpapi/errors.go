package httpapi

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"ocrstream/internal/pipeline"
	"ocrstream/pkg/types"
)

// HTTPError lets a service error choose its own status code.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a types.ErrorResponse with status.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// statusFor maps service errors to HTTP status codes. A missing model
// directory is a 404; a recognizer that is not built in is a 503.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case pipeline.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
