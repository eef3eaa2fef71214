// Package cli implements the kavya command-line interface using cobra.
// Commands are thin adapters: they resolve settings, construct the core
// services, and render results. All domain logic lives in the core.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kavya-labs/kavya-cli/internal/adapters/driven/ai"
	"github.com/kavya-labs/kavya-cli/internal/adapters/driven/config/file"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
	"github.com/kavya-labs/kavya-cli/internal/logger"
)

// version is set from main via Execute.
var version = "dev"

// Wiring points. The config store is created lazily on first use; the
// factories build per-run collaborators from resolved settings. Tests
// replace these to avoid touching the home directory or the network.
var (
	configStore driven.ConfigStore

	newPromptStore = func(overridePath string) (driven.PromptStore, error) {
		return file.NewPromptStore("", overridePath)
	}

	newLLMService = ai.CreateAndValidateLLMService
)

var (
	verboseFlag bool
	configPath  string
)

var rootCmd = &cobra.Command{
	Use:   "kavya",
	Short: "Annotate Hindi and Urdu poetry collections with an LLM",
	Long: `Kavya reads a poetry collection, splits it into individual poems,
and asks an LLM provider for a scholarly annotation of each one: a summary,
a glossary of difficult words, and an explanation.

The annotated document interleaves each poem with its annotation, preserving
the original order and separator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return ensureConfigStore()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.kavya/config.toml)")
}

// ensureConfigStore lazily opens the file-backed config store, honouring
// --config when set. Tests assign configStore before Execute to avoid
// touching ~/.kavya.
func ensureConfigStore() error {
	if configStore != nil {
		return nil
	}
	store, err := openConfigStore(configPath)
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	configStore = store
	return nil
}

func openConfigStore(path string) (driven.ConfigStore, error) {
	if path != "" {
		return file.NewConfigStoreFile(path)
	}
	return file.NewConfigStore("")
}

// Execute runs the root command. The context is threaded through to every
// provider call, so cancelling it (e.g. on SIGINT) aborts the run cleanly.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}
