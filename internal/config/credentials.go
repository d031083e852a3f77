package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// GroqKeyEnv is the environment variable holding the Groq API key.
const GroqKeyEnv = "GROQ_API_KEY"

// CredentialsFileEnv overrides the default credentials file location.
const CredentialsFileEnv = "MEETFLOW_CREDENTIALS_FILE"

// CredentialResolver looks up one credential source. Resolve returns ""
// when the source holds nothing; an error means the source itself is broken
// (unreadable file), not that the key is absent.
type CredentialResolver interface {
	Name() string
	Resolve(key string) (string, error)
}

// EnvResolver reads the credential straight from the process environment.
type EnvResolver struct{}

func (EnvResolver) Name() string { return "env" }

func (EnvResolver) Resolve(key string) (string, error) {
	return strings.TrimSpace(os.Getenv(key)), nil
}

// FileResolver reads KEY=VALUE lines from a dotenv-style credentials file.
// A missing file resolves to nothing; an unreadable or unparsable one is an
// error.
type FileResolver struct {
	Path string
}

func (FileResolver) Name() string { return "file" }

func (f FileResolver) Resolve(key string) (string, error) {
	path := f.Path
	if path == "" {
		var err error
		path, err = defaultCredentialsPath()
		if err != nil {
			return "", err
		}
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("cannot read credentials file %s: %w", path, err)
	}
	return strings.TrimSpace(values[key]), nil
}

func defaultCredentialsPath() (string, error) {
	if p := os.Getenv(CredentialsFileEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".meetflow", "credentials"), nil
}

// DefaultResolvers is the resolution order for API credentials: process
// environment first, then the credentials file.
func DefaultResolvers() []CredentialResolver {
	return []CredentialResolver{EnvResolver{}, FileResolver{}}
}

// ResolveCredential walks the resolvers in order and returns the first
// non-empty value together with the resolver's name. When no resolver
// yields a value the source is "none" and the key is empty; that is not an
// error, callers degrade at use time.
func ResolveCredential(key string, resolvers ...CredentialResolver) (string, string, error) {
	if len(resolvers) == 0 {
		resolvers = DefaultResolvers()
	}
	for _, r := range resolvers {
		value, err := r.Resolve(key)
		if err != nil {
			return "", r.Name(), err
		}
		if value != "" {
			return value, r.Name(), nil
		}
	}
	return "", "none", nil
}

// ResolveGroqKey resolves the Groq API key through the default chain.
func ResolveGroqKey() (string, string, error) {
	return ResolveCredential(GroqKeyEnv)
}
