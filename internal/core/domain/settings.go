package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Provider identifies an LLM service provider.
type Provider string

// Available providers.
const (
	// ProviderGroq is the Groq cloud API (OpenAI-compatible).
	ProviderGroq Provider = "groq"

	// ProviderOpenAI is the OpenAI cloud API.
	ProviderOpenAI Provider = "openai"

	// ProviderGoogle is the Google Gemini cloud API.
	ProviderGoogle Provider = "google"

	// ProviderOllama is a local Ollama instance.
	ProviderOllama Provider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderGroq, ProviderOpenAI, ProviderGoogle, ProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p Provider) RequiresAPIKey() bool {
	return p != ProviderOllama
}

// IsLocal returns true if this provider runs locally.
func (p Provider) IsLocal() bool {
	return p == ProviderOllama
}

// String returns the string representation.
func (p Provider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p Provider) Description() string {
	switch p {
	case ProviderGroq:
		return "Groq (cloud)"
	case ProviderOpenAI:
		return "OpenAI (cloud)"
	case ProviderGoogle:
		return "Google Gemini (cloud)"
	case ProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// Default configuration values.
const (
	DefaultProvider     = ProviderGroq
	DefaultSeparator    = "\n*********\n"
	DefaultChunkSize    = 1000
	DefaultRequestDelay = time.Second
	DefaultMaxRetries   = 3
	DefaultTemperature  = 0.7
	DefaultMaxTokens    = 4096
)

// Settings is the resolved run configuration. It is assembled once at
// startup (defaults, then config file, then flags) and read-only afterwards;
// components receive it by pointer at construction time.
type Settings struct {
	// Provider is the LLM service provider.
	Provider Provider

	// Model is the model name. Empty selects the adapter default.
	Model string

	// APIKey is the provider credential.
	APIKey string

	// BaseURL overrides the provider API endpoint (Ollama, compatible APIs).
	BaseURL string

	// Temperature controls generation randomness.
	Temperature float64

	// MaxTokens bounds the annotation length per chunk.
	MaxTokens int

	// InputPath is the source document.
	InputPath string

	// OutputPath is the annotated output document.
	OutputPath string

	// SystemMessagePath is the file holding the system instruction.
	// Empty falls back to the built-in instruction.
	SystemMessagePath string

	// Separator delimits poems in the input and annotated entries in the
	// output.
	Separator string

	// ChunkSize bounds chunk length in runes.
	ChunkSize int

	// RequestDelay is the pause enforced between successive provider calls.
	RequestDelay time.Duration

	// MaxRetries is the number of extra attempts after a transient failure.
	MaxRetries int

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultSettings returns Settings populated with code defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Provider:     DefaultProvider,
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultMaxTokens,
		Separator:    DefaultSeparator,
		ChunkSize:    DefaultChunkSize,
		RequestDelay: DefaultRequestDelay,
		MaxRetries:   DefaultMaxRetries,
	}
}

// Validate checks the settings for a run. All violations are configuration
// errors and abort before any work starts.
func (s *Settings) Validate() error {
	if !s.Provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", ErrConfig, s.Provider)
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return fmt.Errorf("%w: provider %s requires an API key", ErrConfig, s.Provider)
	}
	if s.InputPath == "" {
		return fmt.Errorf("%w: input path is required", ErrConfig)
	}
	if s.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", ErrConfig)
	}
	if s.Separator == "" {
		return fmt.Errorf("%w: separator must not be empty", ErrConfig)
	}
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfig, s.ChunkSize)
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must not be negative, got %d", ErrConfig, s.MaxRetries)
	}
	if s.RequestDelay < 0 {
		return fmt.Errorf("%w: request delay must not be negative", ErrConfig)
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be in [0, 2], got %g", ErrConfig, s.Temperature)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive, got %d", ErrConfig, s.MaxTokens)
	}
	return nil
}
