package audio

import (
	"encoding/binary"
	"fmt"
	"os"

	apperrors "meetflow/internal/app/errors"
)

// ReadWavSamples loads a 16-bit PCM WAV file and returns normalized
// float32 samples in [-1, 1), the layout whisper inference expects.
func ReadWavSamples(path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.FileAccess(err, path)
	}

	pcm, err := extractDataChunk(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return SamplesFromPCM16(pcm)
}

// extractDataChunk walks the RIFF chunk list and returns the raw PCM
// payload of the data chunk.
func extractDataChunk(wav []byte) ([]byte, error) {
	if len(wav) < 12 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF WAVE file")
	}

	offset := 12
	for offset+8 <= len(wav) {
		chunkID := string(wav[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[offset+4 : offset+8]))
		body := offset + 8

		if chunkID == "data" {
			end := body + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[body:end], nil
		}

		// Chunks are word-aligned.
		offset = body + chunkSize + chunkSize%2
	}

	return nil, fmt.Errorf("no data chunk found")
}

// SamplesFromPCM16 converts little-endian signed 16-bit PCM bytes to
// normalized float32 samples.
func SamplesFromPCM16(data []byte) ([]float32, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("data length must be even for 16-bit audio")
	}
	floats := make([]float32, len(data)/2)
	for i := range floats {
		sample := int16(data[i*2]) | int16(data[i*2+1])<<8
		floats[i] = float32(sample) / 32768.0
	}
	return floats, nil
}
