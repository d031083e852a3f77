package services

import (
	"context"

	"meetflow/internal/api/v1/dto"
	"meetflow/internal/app/transcriber/whisper"
)

// ModelServiceImpl implements the ModelService interface
type ModelServiceImpl struct {
	modelsDir   string
	cache       *whisper.ModelCache
	defaultSize string
}

// NewModelService creates a new model service. cache may be nil when the
// process does not host a transcription engine.
func NewModelService(modelsDir string, cache *whisper.ModelCache, defaultSize string) ModelService {
	return &ModelServiceImpl{
		modelsDir:   modelsDir,
		cache:       cache,
		defaultSize: defaultSize,
	}
}

// ListModels reports the whisper model catalog with download and load state
func (s *ModelServiceImpl) ListModels(ctx context.Context) (*dto.ModelListResponse, error) {
	infos := whisper.CatalogWithStatus(s.modelsDir)

	var loaded []string
	if s.cache != nil {
		loaded = s.cache.Loaded()
	}

	return dto.ToModelListResponse(infos, loaded, s.defaultSize), nil
}
