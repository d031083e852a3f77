package analyzer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetflow/internal/app/model"
)

type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  int
	result model.AnalysisResult
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, transcript string) (*model.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := f.result
	return &result, nil
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newCacheFixture(t *testing.T, inner Analyzer, ttl time.Duration) (*CachedAnalyzer, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cached := NewCachedAnalyzer(inner, client, ttl, "groq", []string{"model-a", "model-b"})
	return cached, mr
}

func TestCachedAnalyzerServesRepeatsFromCache(t *testing.T) {
	inner := &fakeAnalyzer{result: model.AnalysisResult{
		Summary:     "Standup recap.",
		ActionItems: []model.ActionItem{{Task: "Ping infra about the flaky runner", Owner: "Mo"}},
		Model:       "model-a",
	}}
	cached, _ := newCacheFixture(t, inner, time.Minute)

	first, err := cached.Analyze(context.Background(), "standup transcript")
	require.NoError(t, err)

	second, err := cached.Analyze(context.Background(), "standup transcript")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.callCount(), "second identical transcript must not hit the LLM")
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.ActionItems, second.ActionItems)
	assert.Equal(t, first.Model, second.Model)
}

func TestCachedAnalyzerKeyVariesByTranscript(t *testing.T) {
	inner := &fakeAnalyzer{result: model.AnalysisResult{Summary: "s", Model: "model-a"}}
	cached, _ := newCacheFixture(t, inner, time.Minute)

	_, err := cached.Analyze(context.Background(), "first transcript")
	require.NoError(t, err)
	_, err = cached.Analyze(context.Background(), "second transcript")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.callCount())
}

func TestCachedAnalyzerSkipsDegradedResults(t *testing.T) {
	inner := &fakeAnalyzer{result: model.AnalysisResult{
		Summary:  "raw model prose",
		Model:    "model-a",
		Degraded: true,
	}}
	cached, _ := newCacheFixture(t, inner, time.Minute)

	_, err := cached.Analyze(context.Background(), "transcript")
	require.NoError(t, err)
	_, err = cached.Analyze(context.Background(), "transcript")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.callCount(), "degraded results must be recomputed")
}

func TestCachedAnalyzerEntriesExpire(t *testing.T) {
	inner := &fakeAnalyzer{result: model.AnalysisResult{Summary: "s", Model: "model-a"}}
	cached, mr := newCacheFixture(t, inner, time.Minute)

	_, err := cached.Analyze(context.Background(), "transcript")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.Analyze(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.callCount())
}

func TestCachedAnalyzerNilClientPassesThrough(t *testing.T) {
	inner := &fakeAnalyzer{result: model.AnalysisResult{Summary: "s", Model: "model-a"}}
	cached := NewCachedAnalyzer(inner, nil, time.Minute, "groq", nil)

	_, err := cached.Analyze(context.Background(), "transcript")
	require.NoError(t, err)
	_, err = cached.Analyze(context.Background(), "transcript")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.callCount())
}

func TestCachedAnalyzerPropagatesInnerError(t *testing.T) {
	innerErr := errors.New("all candidates exhausted")
	inner := &fakeAnalyzer{err: innerErr}
	cached, _ := newCacheFixture(t, inner, time.Minute)

	_, err := cached.Analyze(context.Background(), "transcript")
	assert.ErrorIs(t, err, innerErr)
	_, err = cached.Analyze(context.Background(), "transcript")
	assert.ErrorIs(t, err, innerErr)

	assert.Equal(t, 2, inner.callCount(), "errors are never cached")
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient("")
	require.NoError(t, err)
	assert.Nil(t, client, "empty URL disables the cache")

	client, err = NewRedisClient("redis://localhost:6379/3")
	require.NoError(t, err)
	require.NotNil(t, client)
	_ = client.Close()

	_, err = NewRedisClient("not a url")
	assert.Error(t, err)
}
