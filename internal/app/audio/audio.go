package audio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "meetflow/internal/app/errors"
	"meetflow/internal/app/model"
)

// SupportedFormats are the accepted upload container formats.
var SupportedFormats = []string{"mp3", "wav", "m4a"}

// IsSupportedFormat reports whether the file extension is accepted.
// ext may be passed with or without the leading dot.
func IsSupportedFormat(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, f := range SupportedFormats {
		if ext == f {
			return true
		}
	}
	return false
}

// CheckFormat returns ErrUnsupportedFormat when path has an extension
// outside SupportedFormats.
func CheckFormat(path string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !IsSupportedFormat(ext) {
		return apperrors.UnsupportedFormat(ext, SupportedFormats)
	}
	return nil
}

// GetAudioDuration probes the audio duration via ffprobe.
func GetAudioDuration(filePath string) (time.Duration, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", filePath, err)
	}
	return ParseDuration(string(output))
}

// ParseDuration parses ffprobe's duration output (seconds, possibly
// fractional) into a time.Duration.
func ParseDuration(output string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration %q: %w", strings.TrimSpace(output), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// IsWhisperReadyWav reports whether the file already is 16kHz mono
// pcm_s16le WAV, the only layout the whisper engine consumes directly.
func IsWhisperReadyWav(filePath string) (bool, error) {
	cmd := exec.Command("ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}

	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return false, err
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" &&
			stream.SampleRate == 16000 && stream.Channels == 1 {
			return true, nil
		}
	}

	return false, nil
}

// EnsureWhisperWav returns a path to a 16kHz mono WAV rendition of the
// input, converting with ffmpeg when needed. The second return reports
// whether a new file was produced (callers remove it when done).
func EnsureWhisperWav(inputFilePath string) (string, bool, error) {
	if err := CheckFormat(inputFilePath); err != nil {
		return "", false, err
	}

	if strings.EqualFold(filepath.Ext(inputFilePath), ".wav") {
		ready, err := IsWhisperReadyWav(inputFilePath)
		if err == nil && ready {
			return inputFilePath, false, nil
		}
	}

	outputFilePath := whisperWavPath(inputFilePath)
	if err := convertToWhisperWav(inputFilePath, outputFilePath); err != nil {
		return "", false, err
	}
	return outputFilePath, true, nil
}

// whisperWavPath derives the conversion target next to the input file.
func whisperWavPath(inputFilePath string) string {
	return strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_16khz.wav"
}

func convertToWhisperWav(inputAudioFilePath, outputWavPath string) error {
	if _, err := os.Stat(outputWavPath); !os.IsNotExist(err) {
		slog.Debug("16kHz WAV already exists, skipping conversion", "input", inputAudioFilePath)
		return nil
	}

	slog.Debug("converting to 16kHz mono wav", "input", inputAudioFilePath)

	cmd := exec.Command("ffmpeg", "-i", inputAudioFilePath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputWavPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	return nil
}
