package analyzer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "meetflow/internal/app/errors"
	"meetflow/internal/app/metrics"
	"meetflow/internal/app/model"
	"meetflow/internal/config"
)

// GroqAnalyzer talks to Groq's OpenAI-compatible chat completion endpoint,
// walking an ordered candidate list until one yields a usable response.
type GroqAnalyzer struct {
	client      *openai.Client
	candidates  []string
	temperature float32
	timeout     time.Duration
}

// NewGroqAnalyzer creates the analyzer. An empty apiKey is allowed; Analyze
// then reports ErrAnalysisUnavailable without touching the network.
func NewGroqAnalyzer(apiKey string, settings config.AnalyzerSettings) *GroqAnalyzer {
	a := &GroqAnalyzer{
		candidates:  settings.Candidates,
		temperature: settings.Temperature,
		timeout:     settings.AnalysisTimeout(),
	}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = settings.BaseURL
		a.client = openai.NewClientWithConfig(cfg)
	}
	return a
}

// Analyze runs the candidate fallback loop. The first candidate that
// returns non-empty content wins; later candidates are never invoked.
func (a *GroqAnalyzer) Analyze(ctx context.Context, transcript string) (*model.AnalysisResult, error) {
	if a.client == nil {
		return nil, apperrors.AnalysisUnavailable(apperrors.New("no Groq API key configured"))
	}
	if len(a.candidates) == 0 {
		return nil, apperrors.AnalysisUnavailable(apperrors.New("no candidate models configured"))
	}

	var lastErr error
	tried := 0
	for _, candidate := range a.candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tried++
		content, err := a.complete(ctx, candidate, transcript)
		if err != nil {
			lastErr = err
			slog.Warn("analysis candidate failed", "model", candidate, "error", err)
			continue
		}

		metrics.AnalysisCandidatesTried.Observe(float64(tried))
		result := parseContent(content, candidate)
		if result.Degraded {
			slog.Warn("analysis response outside schema, keeping raw summary", "model", candidate)
		}
		return result, nil
	}

	metrics.AnalysisCandidatesTried.Observe(float64(tried))
	return nil, apperrors.AnalysisUnavailable(lastErr)
}

func (a *GroqAnalyzer) complete(ctx context.Context, candidate, transcript string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: candidate,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage(transcript)},
		},
		Temperature: a.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", apperrors.Wrapf(err, "candidate %s", candidate)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.MalformedResponse(apperrors.New("no choices in completion"), candidate)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", apperrors.MalformedResponse(apperrors.New("empty completion content"), candidate)
	}
	return content, nil
}
