package whisper

import (
	"fmt"
	"sync"

	gowhisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"golang.org/x/sync/singleflight"

	apperrors "meetflow/internal/app/errors"
)

// Handle is one loaded whisper model. Inference on contexts created from
// the same model must be serialized; Acquire/Release guard that.
type Handle struct {
	Size  string
	Model gowhisper.Model

	// inference is held for the duration of a Process call. whisper.cpp
	// shares backend state between contexts of one model and is not safe
	// for concurrent inference.
	inference sync.Mutex
}

// Acquire takes the inference lock.
func (h *Handle) Acquire() { h.inference.Lock() }

// Release drops the inference lock.
func (h *Handle) Release() { h.inference.Unlock() }

// Close frees the underlying model.
func (h *Handle) Close() error {
	if h.Model == nil {
		return nil
	}
	return h.Model.Close()
}

// LoadFunc loads the weights for one model size.
type LoadFunc func(size string) (*Handle, error)

// ModelCache hands out loaded models, loading each size at most once per
// process. Concurrent first requests for one size share a single load via
// singleflight; a failed load is not cached, later callers retry.
type ModelCache struct {
	mu      sync.RWMutex
	loads   singleflight.Group
	handles map[string]*Handle
	load    LoadFunc
}

// NewModelCache creates a cache backed by the given loader.
func NewModelCache(load LoadFunc) *ModelCache {
	return &ModelCache{
		handles: make(map[string]*Handle),
		load:    load,
	}
}

// Get returns the loaded model for size, loading it on first use. Every
// call for the same size observes the same handle.
func (c *ModelCache) Get(size string) (*Handle, error) {
	if h := c.lookup(size); h != nil {
		return h, nil
	}

	v, err, _ := c.loads.Do(size, func() (interface{}, error) {
		if h := c.lookup(size); h != nil {
			return h, nil
		}
		h, err := c.load(size)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.handles[size] = h
		c.mu.Unlock()
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handle), nil
}

func (c *ModelCache) lookup(size string) *Handle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handles[size]
}

// Loaded returns the sizes currently resident.
func (c *ModelCache) Loaded() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sizes := make([]string, 0, len(c.handles))
	for size := range c.handles {
		sizes = append(sizes, size)
	}
	return sizes
}

// Close releases every loaded model.
func (c *ModelCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for size, h := range c.handles {
		if err := h.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing model %s: %w", size, err)
		}
		delete(c.handles, size)
	}
	return firstErr
}

// DefaultLoader loads ggml weights from modelsDir through the whisper.cpp
// bindings, fetching them on first use. There is no retry; a failed fetch
// surfaces as a model load error and the next request starts over.
func DefaultLoader(modelsDir string) LoadFunc {
	return func(size string) (*Handle, error) {
		path, err := Ensure(modelsDir, size, false)
		if err != nil {
			return nil, apperrors.ModelLoad(err, size)
		}

		m, err := gowhisper.New(path)
		if err != nil {
			return nil, apperrors.ModelLoad(err, size)
		}
		return &Handle{Size: size, Model: m}, nil
	}
}
