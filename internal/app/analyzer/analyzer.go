package analyzer

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"meetflow/internal/app/model"
	"meetflow/internal/config"
)

// Analyzer produces a structured summary with action items for a meeting
// transcript.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (*model.AnalysisResult, error)
}

// New builds the analyzer for the configured backend. A missing credential
// is not an error here; the analyzer reports unavailability at call time.
func New(settings config.AnalyzerSettings) (Analyzer, error) {
	switch settings.Backend {
	case "gemini":
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			slog.Warn("no Gemini credential found, analysis will be unavailable")
		} else if err := config.ValidateAPIKey(key, "Gemini"); err != nil {
			slog.Warn("Gemini credential looks malformed", "error", err)
		}
		return NewGeminiAnalyzer(context.Background(), key, settings)
	default:
		key, source, err := config.ResolveGroqKey()
		if err != nil {
			return nil, err
		}
		if key == "" {
			slog.Warn("no Groq credential found, analysis will be unavailable")
		} else {
			if err := config.ValidateAPIKey(key, "Groq"); err != nil {
				slog.Warn("Groq credential looks malformed", "error", err)
			}
			slog.Info("Groq credential resolved", "source", source)
		}
		return NewGroqAnalyzer(key, settings), nil
	}
}
