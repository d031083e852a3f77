package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv points LoadSettings at an explicit settings file.
const ConfigFileEnv = "MEETFLOW_CONFIG"

// GroqBaseURL is the OpenAI-compatible endpoint analysis requests go to.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// Settings is the full meetflow configuration, loadable from YAML with
// ${VAR} references expanded from the environment.
type Settings struct {
	Analyzer AnalyzerSettings `yaml:"analyzer"`
	Whisper  WhisperSettings  `yaml:"whisper"`
	Server   ServerSettings   `yaml:"server"`
}

// AnalyzerSettings configures the hosted-LLM analysis stage.
type AnalyzerSettings struct {
	// Backend selects the SDK: "groq" (OpenAI-compatible) or "gemini".
	Backend string `yaml:"backend"`

	// BaseURL of the OpenAI-compatible endpoint (groq backend only).
	BaseURL string `yaml:"base_url"`

	// Candidates are tried in order; the first usable response wins.
	Candidates []string `yaml:"candidates"`

	Temperature float32 `yaml:"temperature"`
	TimeoutSec  int     `yaml:"timeout_sec"`

	// CacheTTLMin is the redis result cache TTL; 0 disables caching.
	CacheTTLMin int `yaml:"cache_ttl_min"`
}

// WhisperSettings configures local transcription.
type WhisperSettings struct {
	ModelSize string `yaml:"model_size"`
	Threads   int    `yaml:"threads"`
	Language  string `yaml:"language"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Port        string `yaml:"port"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Analyzer: AnalyzerSettings{
			Backend: "groq",
			BaseURL: GroqBaseURL,
			Candidates: []string{
				"llama-3.1-8b-instant",
				"llama-3.3-70b-versatile",
				"mixtral-8x7b-32768",
			},
			Temperature: 0.7,
			TimeoutSec:  60,
			CacheTTLMin: 60,
		},
		Whisper: WhisperSettings{
			ModelSize: "base",
			Threads:   0,
			Language:  "auto",
		},
		Server: ServerSettings{
			Port:        "8080",
			MaxUploadMB: 100,
		},
	}
}

// LoadSettings reads the YAML settings file over the defaults. An empty path
// falls back to MEETFLOW_CONFIG; when neither names a file the defaults are
// returned as-is.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := expandEnvRefs(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &settings); err != nil {
		return settings, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applySettingsDefaults(&settings)

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvRefs substitutes ${VAR} references; unset variables expand to "".
func expandEnvRefs(s string) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[2 : len(ref)-1]
		return os.Getenv(name)
	})
}

func applySettingsDefaults(s *Settings) {
	defaults := DefaultSettings()
	if s.Analyzer.Backend == "" {
		s.Analyzer.Backend = defaults.Analyzer.Backend
	}
	if s.Analyzer.BaseURL == "" {
		s.Analyzer.BaseURL = defaults.Analyzer.BaseURL
	}
	if len(s.Analyzer.Candidates) == 0 {
		s.Analyzer.Candidates = defaults.Analyzer.Candidates
	}
	if s.Analyzer.TimeoutSec == 0 {
		s.Analyzer.TimeoutSec = defaults.Analyzer.TimeoutSec
	}
	if s.Whisper.ModelSize == "" {
		s.Whisper.ModelSize = defaults.Whisper.ModelSize
	}
	if s.Whisper.Language == "" {
		s.Whisper.Language = defaults.Whisper.Language
	}
	if s.Server.Port == "" {
		s.Server.Port = defaults.Server.Port
	}
	if s.Server.MaxUploadMB == 0 {
		s.Server.MaxUploadMB = defaults.Server.MaxUploadMB
	}
}

// Validate checks settings invariants.
func (s Settings) Validate() error {
	switch s.Analyzer.Backend {
	case "groq", "gemini":
	default:
		return fmt.Errorf("analyzer backend must be groq or gemini, got %q", s.Analyzer.Backend)
	}
	if s.Analyzer.Temperature < 0 || s.Analyzer.Temperature > 2 {
		return fmt.Errorf("analyzer temperature out of range: %v", s.Analyzer.Temperature)
	}
	if err := ValidateURL(s.Analyzer.BaseURL, "analyzer base"); err != nil {
		return err
	}
	if err := ValidateTimeout(time.Duration(s.Analyzer.TimeoutSec)*time.Second, "analyzer"); err != nil {
		return err
	}
	// Threads 0 means let whisper pick.
	if s.Whisper.Threads != 0 {
		if err := ValidateConcurrency(s.Whisper.Threads, "whisper threads"); err != nil {
			return err
		}
	}
	if err := ValidatePort(s.Server.Port, "server"); err != nil {
		return err
	}
	if s.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server max_upload_mb must be positive")
	}
	return nil
}

// AnalysisTimeout returns the per-candidate request timeout.
func (a AnalyzerSettings) AnalysisTimeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}

// CacheTTL returns the analysis cache TTL; zero disables the cache.
func (a AnalyzerSettings) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLMin) * time.Minute
}
