package whisper

import (
	"os"
	"path/filepath"

	apperrors "meetflow/internal/app/errors"
)

const weightsBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/"

// ModelInfo describes one downloadable whisper.cpp model preset.
type ModelInfo struct {
	Size       string `json:"size"`
	FileName   string `json:"fileName"`
	URL        string `json:"url"`
	SizeLabel  string `json:"sizeLabel,omitempty"`
	Downloaded bool   `json:"downloaded"`
	LocalPath  string `json:"localPath,omitempty"`
}

var catalog = []ModelInfo{
	{Size: "tiny", FileName: "ggml-tiny.bin", URL: weightsBaseURL + "ggml-tiny.bin", SizeLabel: "75 MB"},
	{Size: "tiny.en", FileName: "ggml-tiny.en.bin", URL: weightsBaseURL + "ggml-tiny.en.bin", SizeLabel: "75 MB"},
	{Size: "base", FileName: "ggml-base.bin", URL: weightsBaseURL + "ggml-base.bin", SizeLabel: "142 MB"},
	{Size: "base.en", FileName: "ggml-base.en.bin", URL: weightsBaseURL + "ggml-base.en.bin", SizeLabel: "142 MB"},
	{Size: "small", FileName: "ggml-small.bin", URL: weightsBaseURL + "ggml-small.bin", SizeLabel: "466 MB"},
	{Size: "small.en", FileName: "ggml-small.en.bin", URL: weightsBaseURL + "ggml-small.en.bin", SizeLabel: "466 MB"},
}

// Catalog returns the known model presets.
func Catalog() []ModelInfo {
	out := make([]ModelInfo, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogWithStatus returns the presets with Downloaded and LocalPath set
// for the given weights directory.
func CatalogWithStatus(modelsDir string) []ModelInfo {
	out := Catalog()
	for i := range out {
		path := out[i].localPathIn(modelsDir)
		if _, err := os.Stat(path); err == nil {
			out[i].Downloaded = true
			out[i].LocalPath = path
		}
	}
	return out
}

// LookupModel finds a preset by size name.
func LookupModel(size string) (ModelInfo, error) {
	for _, m := range catalog {
		if m.Size == size {
			return m, nil
		}
	}
	return ModelInfo{}, apperrors.Newf("unknown model size %q (expected one of tiny, base, small)", size)
}

// IsValidSize reports whether size names a known preset.
func IsValidSize(size string) bool {
	_, err := LookupModel(size)
	return err == nil
}

func (m ModelInfo) localPathIn(modelsDir string) string {
	return filepath.Join(modelsDir, m.FileName)
}
