package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "groq", s.Analyzer.Backend)
	assert.Equal(t, GroqBaseURL, s.Analyzer.BaseURL)
	assert.Equal(t, []string{
		"llama-3.1-8b-instant",
		"llama-3.3-70b-versatile",
		"mixtral-8x7b-32768",
	}, s.Analyzer.Candidates)
	assert.InDelta(t, 0.7, s.Analyzer.Temperature, 0.001)
	assert.Equal(t, "base", s.Whisper.ModelSize)
	assert.Equal(t, "auto", s.Whisper.Language)
	assert.NoError(t, s.Validate())
}

func TestLoadSettingsNoFile(t *testing.T) {
	original := os.Getenv(ConfigFileEnv)
	defer os.Setenv(ConfigFileEnv, original)
	os.Setenv(ConfigFileEnv, "")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsOverrides(t *testing.T) {
	content := `
analyzer:
  candidates:
    - llama-3.3-70b-versatile
  temperature: 0.2
  cache_ttl_min: 5
whisper:
  model_size: small
  threads: 4
server:
  port: "9090"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"llama-3.3-70b-versatile"}, s.Analyzer.Candidates)
	assert.InDelta(t, 0.2, s.Analyzer.Temperature, 0.001)
	assert.Equal(t, 5, s.Analyzer.CacheTTLMin)
	assert.Equal(t, "small", s.Whisper.ModelSize)
	assert.Equal(t, 4, s.Whisper.Threads)
	assert.Equal(t, "9090", s.Server.Port)

	// Untouched fields keep their defaults.
	assert.Equal(t, "groq", s.Analyzer.Backend)
	assert.Equal(t, GroqBaseURL, s.Analyzer.BaseURL)
	assert.Equal(t, int64(100), s.Server.MaxUploadMB)
}

func TestLoadSettingsExpandsEnvRefs(t *testing.T) {
	original := os.Getenv("MEETFLOW_TEST_BASE_URL")
	defer os.Setenv("MEETFLOW_TEST_BASE_URL", original)
	os.Setenv("MEETFLOW_TEST_BASE_URL", "https://groq.example.test/openai/v1")

	content := "analyzer:\n  base_url: ${MEETFLOW_TEST_BASE_URL}\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "https://groq.example.test/openai/v1", s.Analyzer.BaseURL)
}

func TestLoadSettingsInvalidBackend(t *testing.T) {
	content := "analyzer:\n  backend: anthropic\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend must be groq or gemini")
}

func TestValidateRejectsBadValues(t *testing.T) {
	s := DefaultSettings()
	s.Whisper.Threads = -1
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.Whisper.Threads = 500
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.Analyzer.Temperature = 3
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.Analyzer.BaseURL = "groq.example.test"
	assert.Error(t, s.Validate(), "base URL without scheme must be rejected")
}

func TestValidateAPIKey(t *testing.T) {
	testCases := []struct {
		name          string
		key           string
		keyType       string
		expectError   bool
		errorContains string
	}{
		{name: "valid Groq key", key: "gsk_1234567890abcdef1234", keyType: "Groq"},
		{name: "Groq key wrong prefix", key: "sk-1234567890abcdef1234", keyType: "Groq", expectError: true, errorContains: "must start with 'gsk_'"},
		{name: "Groq key too short", key: "gsk_short", keyType: "Groq", expectError: true, errorContains: "too short"},
		{name: "valid Gemini key", key: "AIzaTest-1234567890abcdef1234567890", keyType: "Gemini"},
		{name: "Gemini key wrong prefix", key: "gsk_1234567890abcdef1234567890", keyType: "Gemini", expectError: true, errorContains: "must start with 'AIza'"},
		{name: "empty key", key: "", keyType: "Groq", expectError: true, errorContains: "required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAPIKey(tc.key, tc.keyType)
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
