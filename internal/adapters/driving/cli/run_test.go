package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
)

func TestRunCmd_Use(t *testing.T) {
	assert.Equal(t, "run", runCmd.Use)
}

func TestRunCmd_Short(t *testing.T) {
	assert.Equal(t, "Annotate a poetry document", runCmd.Short)
}

func TestRunCmd_HasFlags(t *testing.T) {
	for _, name := range []string{
		"input", "output", "provider", "model", "api-key", "base-url",
		"system-message", "separator", "chunk-size", "delay", "max-retries",
		"temperature", "max-tokens",
	} {
		assert.NotNil(t, runCmd.Flags().Lookup(name), "flag %s should exist", name)
	}

	for name, shorthand := range map[string]string{
		"input":          "i",
		"output":         "o",
		"provider":       "p",
		"model":          "m",
		"api-key":        "k",
		"system-message": "s",
	} {
		flag := runCmd.Flags().Lookup(name)
		require.NotNil(t, flag)
		assert.Equal(t, shorthand, flag.Shorthand, "flag %s", name)
	}
}

func TestRunCmd_RejectsArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run", "unexpected"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestRunCmd_MissingAPIKey(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	tmpDir := t.TempDir()
	input := writeTestInput(t, tmpDir)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	// Default provider is groq, which needs a key.
	rootCmd.SetArgs([]string{"run",
		"--input", input,
		"--output", filepath.Join(tmpDir, "out.txt"),
	})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "API key")
}

func TestRunCmd_AnnotatesDocument(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	tmpDir := t.TempDir()
	input := writeTestInput(t, tmpDir)
	output := filepath.Join(tmpDir, "annotated.txt")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run",
		"--input", input,
		"--output", output,
		"--provider", "ollama",
		"--delay", "1ms",
	})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Annotation complete")
	assert.Contains(t, buf.String(), "Run: ")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first poem line one")
	assert.Contains(t, string(data), "mock annotation")
}

func TestRunCmd_FailedChunksReturnError(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	newLLMService = func(_ context.Context, _ *domain.Settings) (driven.LLMService, error) {
		return &mockLLM{err: domain.ErrBadRequest}, nil
	}

	tmpDir := t.TempDir()
	input := writeTestInput(t, tmpDir)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run",
		"--input", input,
		"--output", filepath.Join(tmpDir, "annotated.txt"),
		"--provider", "ollama",
		"--delay", "1ms",
	})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk(s) failed")
	assert.Contains(t, buf.String(), "Annotation finished with failures")
}

func TestRunCmd_AuthFailureIsFatal(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	llm := &mockLLM{err: domain.ErrAuthFailed}
	newLLMService = func(_ context.Context, _ *domain.Settings) (driven.LLMService, error) {
		return llm, nil
	}

	tmpDir := t.TempDir()
	input := writeTestInput(t, tmpDir)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run",
		"--input", input,
		"--output", filepath.Join(tmpDir, "annotated.txt"),
		"--provider", "ollama",
		"--delay", "1ms",
	})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	// Aborted on the first rejection rather than retrying every chunk.
	assert.Equal(t, 1, llm.calls)
}

func TestResolveSettings_FlagsOverrideConfig(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	require.NoError(t, configStore.Set(driven.ConfigKeyProvider, "openai"))
	require.NoError(t, configStore.Set(driven.ConfigKeyChunkSize, 500))
	require.NoError(t, configStore.Set(driven.ConfigKeyModel, "gpt-4o"))

	tmpDir := t.TempDir()
	input := writeTestInput(t, tmpDir)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run",
		"--input", input,
		"--output", filepath.Join(tmpDir, "annotated.txt"),
		"--provider", "ollama",
		"--delay", "1ms",
	})
	defer rootCmd.SetArgs(nil)

	var seen *domain.Settings
	newLLMService = func(_ context.Context, settings *domain.Settings) (driven.LLMService, error) {
		seen = settings
		return &mockLLM{annotation: "mock annotation"}, nil
	}

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.NotNil(t, seen)
	// Flag wins over config file.
	assert.Equal(t, domain.ProviderOllama, seen.Provider)
	// Config file wins over defaults.
	assert.Equal(t, 500, seen.ChunkSize)
	assert.Equal(t, "gpt-4o", seen.Model)
}

func TestApplyConfigDelay_DurationString(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	require.NoError(t, configStore.Set(driven.ConfigKeyRequestDelay, "250ms"))

	settings := domain.DefaultSettings()
	applyConfig(settings, configStore)

	assert.Equal(t, 250*time.Millisecond, settings.RequestDelay)
}

func TestApplyConfigDelay_BareSeconds(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	require.NoError(t, configStore.Set(driven.ConfigKeyRequestDelay, 2.5))

	settings := domain.DefaultSettings()
	applyConfig(settings, configStore)

	assert.Equal(t, 2500*time.Millisecond, settings.RequestDelay)
}
