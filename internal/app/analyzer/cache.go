package analyzer

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"meetflow/internal/app/model"
	"meetflow/internal/app/utils"
)

// RedisURLEnv configures the analysis result cache; empty disables it.
const RedisURLEnv = "MEETFLOW_REDIS_URL"

// NewRedisClient builds a client from a redis URL. Returns nil for an
// empty URL.
func NewRedisClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// CachedAnalyzer wraps an Analyzer with a redis result cache. Identical
// transcripts resolve from the cache without an LLM round trip. Cache
// failures are invisible to callers; the wrapped analyzer always decides.
type CachedAnalyzer struct {
	inner   Analyzer
	client  *redis.Client
	ttl     time.Duration
	keyBase string
}

// NewCachedAnalyzer wraps inner. With a nil client or non-positive ttl the
// wrapper is a passthrough.
func NewCachedAnalyzer(inner Analyzer, client *redis.Client, ttl time.Duration, backend string, candidates []string) *CachedAnalyzer {
	return &CachedAnalyzer{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		keyBase: backend + "|" + strings.Join(candidates, ","),
	}
}

func (c *CachedAnalyzer) Analyze(ctx context.Context, transcript string) (*model.AnalysisResult, error) {
	key := c.cacheKey(transcript)

	if data, ok := c.get(ctx, key); ok {
		var cached model.AnalysisResult
		if err := json.Unmarshal(data, &cached); err == nil {
			slog.Debug("analysis cache hit", "model", cached.Model)
			return &cached, nil
		}
	}

	result, err := c.inner.Analyze(ctx, transcript)
	if err != nil {
		return nil, err
	}

	// Degraded results are not cached; a later retry may do better.
	if !result.Degraded {
		c.set(ctx, key, result)
	}
	return result, nil
}

func (c *CachedAnalyzer) cacheKey(transcript string) string {
	return "analysis:" + utils.HashString(c.keyBase+"|"+transcript)
}

func (c *CachedAnalyzer) get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *CachedAnalyzer) set(ctx context.Context, key string, result *model.AnalysisResult) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Debug("analysis cache write failed", "error", err)
	}
}
