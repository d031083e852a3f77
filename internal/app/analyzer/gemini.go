package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	apperrors "meetflow/internal/app/errors"
	"meetflow/internal/app/metrics"
	"meetflow/internal/app/model"
	"meetflow/internal/config"
)

// defaultGeminiCandidates replaces the Groq model list when the gemini
// backend is selected without an explicit candidate override.
var defaultGeminiCandidates = []string{"gemini-2.5-flash", "gemini-2.0-flash"}

// GeminiAnalyzer is the Gemini-backed analysis backend. It shares the
// prompt, schema and fallback semantics with the Groq analyzer.
type GeminiAnalyzer struct {
	client      *genai.Client
	candidates  []string
	temperature float32
}

// NewGeminiAnalyzer creates the analyzer. An empty apiKey is allowed;
// Analyze then reports ErrAnalysisUnavailable without touching the network.
func NewGeminiAnalyzer(ctx context.Context, apiKey string, settings config.AnalyzerSettings) (*GeminiAnalyzer, error) {
	a := &GeminiAnalyzer{
		candidates:  geminiCandidates(settings),
		temperature: settings.Temperature,
	}
	if apiKey == "" {
		return a, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "creating Gemini client")
	}
	a.client = client
	return a, nil
}

// geminiCandidates keeps an explicit candidate override but swaps the Groq
// defaults for Gemini model names.
func geminiCandidates(settings config.AnalyzerSettings) []string {
	defaults := config.DefaultSettings().Analyzer.Candidates
	if len(settings.Candidates) == len(defaults) {
		same := true
		for i := range defaults {
			if settings.Candidates[i] != defaults[i] {
				same = false
				break
			}
		}
		if same {
			return defaultGeminiCandidates
		}
	}
	if len(settings.Candidates) == 0 {
		return defaultGeminiCandidates
	}
	return settings.Candidates
}

// Analyze runs the candidate fallback loop against the Gemini API.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, transcript string) (*model.AnalysisResult, error) {
	if a.client == nil {
		return nil, apperrors.AnalysisUnavailable(apperrors.New("no Gemini API key configured"))
	}

	var lastErr error
	tried := 0
	for _, candidate := range a.candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tried++
		cfg := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr(a.temperature),
			ResponseMIMEType:  "application/json",
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
		resp, err := a.client.Models.GenerateContent(ctx, candidate, genai.Text(userMessage(transcript)), cfg)
		if err != nil {
			lastErr = apperrors.Wrapf(err, "candidate %s", candidate)
			slog.Warn("analysis candidate failed", "model", candidate, "error", err)
			continue
		}

		content := strings.TrimSpace(resp.Text())
		if content == "" {
			lastErr = apperrors.MalformedResponse(apperrors.New("empty completion content"), candidate)
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
