package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"meetflow/internal/app/audio"
	apperrors "meetflow/internal/app/errors"
)

const defaultUploadExt = ".mp3"

// spoolUpload writes the stream to a uniquely named file in the system temp
// directory, preserving the original extension so ffmpeg can sniff the
// container. Uploads without an extension are treated as mp3.
func spoolUpload(fileName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = defaultUploadExt
	}
	if !audio.IsSupportedFormat(ext) {
		return "", apperrors.UnsupportedFormat(ext, audio.SupportedFormats)
	}

	path := filepath.Join(os.TempDir(), "meetflow-"+uuid.NewString()+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.FileAccess(err, path)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", apperrors.FileAccess(err, path)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", apperrors.FileAccess(err, path)
	}
	return path, nil
}
