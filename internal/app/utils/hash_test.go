package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	hash, err := CalculateFileHash(path)
	require.NoError(t, err)
	// sha256("hello world")
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", hash)
}

func TestCalculateFileHashMissingFile(t *testing.T) {
	_, err := CalculateFileHash(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestHashString(t *testing.T) {
	assert.Equal(t,
		"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		HashString("hello world"))
	assert.NotEqual(t, HashString("a"), HashString("b"))
}

func TestGetFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 1234), 0o644))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), size)
}
