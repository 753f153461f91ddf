package pipeline

import (
	"strings"

	"ocrstream/internal/common/fsutil"
	"ocrstream/internal/registry"
)

// SanityReport describes runtime checks for the recognition dependencies.
type SanityReport struct {
	Engine           string   `json:"engine"`
	EngineBuilt      bool     `json:"engine_built"`
	Language         string   `json:"language"`
	LanguageFound    bool     `json:"language_found"`
	DetModelDir      string   `json:"det_model_dir,omitempty"`
	DetModelDirFound bool     `json:"det_model_dir_found"`
	RecModelDir      string   `json:"rec_model_dir,omitempty"`
	RecModelDirFound bool     `json:"rec_model_dir_found"`
	Errors           []string `json:"errors,omitempty"`
}

// OK reports whether every check passed.
func (r SanityReport) OK() bool { return len(r.Errors) == 0 }

// SanityCheck validates that the recognizer and its model files are available.
// It does not mutate state and is safe to call at any time.
func SanityCheck(s Settings) SanityReport {
	s = s.Normalized()
	r := SanityReport{
		Engine:      "tesseract",
		EngineBuilt: tesseractBuilt,
		Language:    s.Language,
		DetModelDir: s.DetModelDir,
		RecModelDir: s.RecModelDir,
	}
	if !r.EngineBuilt {
		r.Errors = append(r.Errors, "tesseract support not built")
	}
	if s.DetModelDir != "" {
		r.DetModelDirFound = fsutil.DirExists(s.DetModelDir)
		if !r.DetModelDirFound {
			r.Errors = append(r.Errors, "det_model_dir not found: "+s.DetModelDir)
		}
	}
	if s.RecModelDir == "" {
		// Engine default tessdata; nothing to scan.
		r.LanguageFound = true
		return r
	}
	r.RecModelDirFound = fsutil.DirExists(s.RecModelDir)
	if !r.RecModelDirFound {
		r.Errors = append(r.Errors, "rec_model_dir not found: "+s.RecModelDir)
		return r
	}
	langs, err := registry.LoadDir(s.RecModelDir)
	if err != nil {
		r.Errors = append(r.Errors, err.Error())
		return r
	}
	installed := make(map[string]bool, len(langs))
	for _, l := range langs {
		installed[l.Code] = true
	}
	r.LanguageFound = true
	for _, code := range splitLanguages(s.Language) {
		if !installed[code] {
			r.LanguageFound = false
			r.Errors = append(r.Errors, "language not installed: "+code)
		}
	}
	return r
}

// splitLanguages splits "eng+deu" or "eng,deu" into codes.
func splitLanguages(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == ',' || r == ' ' })
}
