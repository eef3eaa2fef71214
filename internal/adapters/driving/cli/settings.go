package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, document paths, and pipeline
options. Settings are stored in ~/.kavya/config.toml; run flags override
them for a single invocation.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key.

Available keys:
  provider                groq, openai, google, or ollama
  model_name              model name for the provider
  base_url                override the provider API endpoint
  temperature             generation temperature (0 to 2)
  max_tokens              annotation length bound per chunk
  input_docx_path         input document
  output_docx_path        annotated output document
  system_message_path     file holding the system instruction
  separator               poem separator
  chunk_size              chunk size bound in characters
  delay_between_requests  pause between provider calls, e.g. 1s or 500ms
  max_retries             extra attempts after a transient failure

Use 'kavya settings key' to set the API key without echoing it.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Set the provider API key",
	Long:  `Prompts for the API key without echoing it and stores it in the config file.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings := resolveSettings(cmd)

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  Provider: %s\n", settings.Provider.Description())
	if settings.Model != "" {
		cmd.Printf("  Model: %s\n", settings.Model)
	} else {
		cmd.Printf("  Model: (provider default)\n")
	}
	if settings.Provider.IsLocal() || settings.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.Provider.RequiresAPIKey() {
		if settings.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Temperature: %g\n", settings.Temperature)
	cmd.Printf("  Max Tokens: %d\n", settings.MaxTokens)
	cmd.Println()

	cmd.Println("[Documents]")
	cmd.Printf("  Input: %s\n", orUnset(settings.InputPath))
	cmd.Printf("  Output: %s\n", orUnset(settings.OutputPath))
	cmd.Printf("  System Message: %s\n", orDefault(settings.SystemMessagePath, "(built-in)"))
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Separator: %q\n", settings.Separator)
	cmd.Printf("  Chunk Size: %d\n", settings.ChunkSize)
	cmd.Printf("  Request Delay: %s\n", settings.RequestDelay)
	cmd.Printf("  Max Retries: %d\n", settings.MaxRetries)
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	value, err := parseSettingValue(key, raw)
	if err != nil {
		return err
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("save setting: %w", err)
	}

	if key == driven.ConfigKeyAPIKey {
		cmd.Printf("Set %s to %s\n", key, maskAPIKey(raw))
	} else {
		cmd.Printf("Set %s to %v\n", key, value)
	}
	return nil
}

func runSettingsKey(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("Enter API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key must not be empty")
	}

	if err := configStore.Set(driven.ConfigKeyAPIKey, key); err != nil {
		return fmt.Errorf("save API key: %w", err)
	}
	cmd.Printf("API key saved to %s\n", configStore.Path())
	return nil
}

// parseSettingValue validates a raw value for its key and converts it to
// the type stored in the config file.
func parseSettingValue(key, raw string) (any, error) {
	switch key {
	case driven.ConfigKeyProvider:
		if !domain.Provider(raw).IsValid() {
			return nil, fmt.Errorf("unknown provider %q (expected groq, openai, google, or ollama)", raw)
		}
		return raw, nil

	case driven.ConfigKeyModel, driven.ConfigKeyAPIKey, driven.ConfigKeyBaseURL,
		driven.ConfigKeyInputPath, driven.ConfigKeyOutputPath,
		driven.ConfigKeySystemMessage, driven.ConfigKeySeparator:
		return raw, nil

	case driven.ConfigKeyTemperature:
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil || val < 0 || val > 2 {
			return nil, fmt.Errorf("temperature must be a number in [0, 2], got %q", raw)
		}
		return val, nil

	case driven.ConfigKeyMaxTokens, driven.ConfigKeyChunkSize:
		val, err := strconv.Atoi(raw)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
		}
		return val, nil

	case driven.ConfigKeyMaxRetries:
		val, err := strconv.Atoi(raw)
		if err != nil || val < 0 {
			return nil, fmt.Errorf("max_retries must be a non-negative integer, got %q", raw)
		}
		return val, nil

	case driven.ConfigKeyRequestDelay:
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("delay_between_requests must be a duration like 1s or 500ms, got %q", raw)
		}
		return d.String(), nil

	default:
		return nil, fmt.Errorf("unknown setting %q", key)
	}
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orUnset(s string) string {
	return orDefault(s, "(not set)")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
