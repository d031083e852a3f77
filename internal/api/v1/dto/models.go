package dto

import (
	"github.com/samber/lo"

	"meetflow/internal/app/transcriber/whisper"
)

// WhisperModelResponse represents a whisper model preset in API responses
type WhisperModelResponse struct {
	Size       string `json:"size"`
	FileName   string `json:"file_name"`
	SizeLabel  string `json:"size_label,omitempty"`
	Downloaded bool   `json:"downloaded"`
	Loaded     bool   `json:"loaded"`
	Default    bool   `json:"default"`
}

// ModelListResponse wraps the model catalog
type ModelListResponse struct {
	Models []WhisperModelResponse `json:"models"`
}

// ToModelListResponse converts catalog entries, marking which weights are on
// disk, which are resident in memory, and which size is the default.
func ToModelListResponse(infos []whisper.ModelInfo, loaded []string, defaultSize string) *ModelListResponse {
	return &ModelListResponse{
		Models: lo.Map(infos, func(info whisper.ModelInfo, _ int) WhisperModelResponse {
			return WhisperModelResponse{
				Size:       info.Size,
				FileName:   info.FileName,
				SizeLabel:  info.SizeLabel,
				Downloaded: info.Downloaded,
				Loaded:     lo.Contains(loaded, info.Size),
				Default:    info.Size == defaultSize,
			}
		}),
	}
}
