package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetFloat retrieves a floating-point configuration value.
	// Returns 0 if key doesn't exist or isn't a number.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Configuration keys recognised in the config file. These mirror the
// run flags; flags override file values, which override code defaults.
const (
	ConfigKeyProvider      = "provider"
	ConfigKeyModel         = "model_name"
	ConfigKeyAPIKey        = "api_key"
	ConfigKeyBaseURL       = "base_url"
	ConfigKeyTemperature   = "temperature"
	ConfigKeyMaxTokens     = "max_tokens"
	ConfigKeyInputPath     = "input_docx_path"
	ConfigKeyOutputPath    = "output_docx_path"
	ConfigKeySystemMessage = "system_message_path"
	ConfigKeySeparator     = "separator"
	ConfigKeyChunkSize     = "chunk_size"
	ConfigKeyRequestDelay  = "delay_between_requests"
	ConfigKeyMaxRetries    = "max_retries"
)
