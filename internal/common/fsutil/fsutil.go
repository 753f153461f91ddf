// Package fsutil resolves the model and tessdata directories named in settings.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TessdataEnv is the variable tesseract itself reads for its data directory.
const TessdataEnv = "TESSDATA_PREFIX"

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths, including "~user", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// DirExists reports whether path, after home expansion, is a directory.
func DirExists(path string) bool {
	p, err := ExpandHome(path)
	if err != nil || p == "" {
		return false
	}
	fi, err := os.Stat(p)
	return err == nil && fi.IsDir()
}

// LanguageDir picks the directory holding *.traineddata files: the
// configured one, else the engine's own environment default. Empty when neither is set.
func LanguageDir(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(TessdataEnv)
}
