package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ocrstream/internal/common/fsutil"
	"ocrstream/pkg/types"
)

// traineddataExt is the suffix of tesseract language models.
const traineddataExt = ".traineddata"

// Scanner lists the recognition languages installed in a model directory.
type Scanner interface {
	Scan(dir string) ([]types.Language, error)
}

// TraineddataScanner finds tesseract *.traineddata files.
type TraineddataScanner struct{}

func NewTraineddataScanner() TraineddataScanner { return TraineddataScanner{} }

// Scan lists *.traineddata files in dir (non-recursive), sorted by code.
// Code is the filename without extension (e.g. "eng" for eng.traineddata).
func (TraineddataScanner) Scan(dir string) ([]types.Language, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var langs []types.Language
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), traineddataExt) {
			continue
		}
		lang := types.Language{
			Code: name[:len(name)-len(traineddataExt)],
			Path: filepath.Join(abs, name),
		}
		if info, err := e.Info(); err == nil {
			lang.SizeBytes = info.Size()
		}
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Code < langs[j].Code })
	return langs, nil
}

// LoadDir scans dir with the default TraineddataScanner.
func LoadDir(dir string) ([]types.Language, error) {
	return NewTraineddataScanner().Scan(dir)
}
