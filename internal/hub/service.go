package hub

import (
	"net/http"

	"ocrstream/internal/common/fsutil"
	"ocrstream/internal/pipeline"
	"ocrstream/internal/registry"
	"ocrstream/pkg/types"
)

// modelDirError reports that no language directory is configured.
type modelDirError struct{}

func (modelDirError) Error() string   { return "rec_model_dir not configured and TESSDATA_PREFIX unset" }
func (modelDirError) StatusCode() int { return http.StatusNotFound }

// ErrModelDirUnset is returned by Languages when there is nothing to scan.
var ErrModelDirUnset error = modelDirError{}

// Languages lists the languages installed in the active rec_model_dir,
// falling back to TESSDATA_PREFIX.
func (h *Hub) Languages() (types.LanguagesResponse, error) {
	dir := fsutil.LanguageDir(h.pool.Settings().RecModelDir)
	if dir == "" {
		return types.LanguagesResponse{}, ErrModelDirUnset
	}
	langs, err := registry.LoadDir(dir)
	if err != nil {
		return types.LanguagesResponse{}, err
	}
	if langs == nil {
		langs = []types.Language{}
	}
	return types.LanguagesResponse{Dir: dir, Languages: langs}, nil
}

// Sanity checks the recognizer dependencies for the active settings.
func (h *Hub) Sanity() pipeline.SanityReport {
	return pipeline.SanityCheck(h.pool.Settings())
}
