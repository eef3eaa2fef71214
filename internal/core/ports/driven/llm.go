package driven

import "context"

// LLMService generates annotations for chunk text using a language model.
//
// Implementations may include:
//   - Groq (cloud, OpenAI-compatible API)
//   - OpenAI (GPT models)
//   - Google (Gemini)
//   - Ollama (local models)
type LLMService interface {
	// Annotate sends the chunk text as user input and the system
	// instruction as system context, returning the generated annotation.
	//
	// Implementations classify failures with the domain sentinels:
	// domain.ErrAuthFailed and domain.ErrBadRequest are permanent,
	// domain.ErrProviderUnavailable is transient. Retrying is the
	// caller's responsibility; adapters make exactly one call.
	Annotate(ctx context.Context, systemMsg, text string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Used at startup to surface credential problems before the
	// first chunk is processed.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
