package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
	"github.com/kavya-labs/kavya-cli/internal/core/services"
)

func TestNewPromptStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewPromptStore(tmpDir, "")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, tmpDir, store.Dir())
}

func TestPromptStore_LazyInit(t *testing.T) {
	tmpDir := t.TempDir()
	promptDir := filepath.Join(tmpDir, "prompts")

	store, err := NewPromptStore(promptDir, "")
	require.NoError(t, err)

	// Constructor performs no I/O
	_, statErr := os.Stat(promptDir)
	assert.True(t, os.IsNotExist(statErr))

	// First Load creates the directory and default files
	_, err = store.Load(driven.PromptAnnotate)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(promptDir, "annotate.txt"))
	assert.FileExists(t, filepath.Join(promptDir, "README.md"))
}

func TestPromptStore_LoadDefault(t *testing.T) {
	store, err := NewPromptStore(t.TempDir(), "")
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnnotate)

	require.NoError(t, err)
	assert.Equal(t, services.DefaultSystemMessage, prompt)
}

func TestPromptStore_LoadCustomised(t *testing.T) {
	tmpDir := t.TempDir()
	custom := "Explain each couplet in one sentence."
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "annotate.txt"), []byte(custom+"\n"), 0600))

	store, err := NewPromptStore(tmpDir, "")
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnnotate)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir(), "")
	require.NoError(t, err)

	_, err = store.Load("nonexistent")
	assert.Error(t, err)
}

func TestPromptStore_Reload(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewPromptStore(tmpDir, "")
	require.NoError(t, err)

	first, err := store.Load(driven.PromptAnnotate)
	require.NoError(t, err)

	// Edit the file behind the store's back
	edited := "Annotate briefly."
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "annotate.txt"), []byte(edited), 0600))

	// Cached value still served until Reload
	cached, err := store.Load(driven.PromptAnnotate)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()

	fresh, err := store.Load(driven.PromptAnnotate)
	require.NoError(t, err)
	assert.Equal(t, edited, fresh)
}

func TestPromptStore_OverridePath(t *testing.T) {
	tmpDir := t.TempDir()
	overridePath := filepath.Join(tmpDir, "my-instruction.txt")
	override := "You are a careful literary critic."
	require.NoError(t, os.WriteFile(overridePath, []byte(override+"\n"), 0600))

	store, err := NewPromptStore(filepath.Join(tmpDir, "prompts"), overridePath)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnnotate)
	require.NoError(t, err)
	assert.Equal(t, override, prompt)

	// Override bypasses the prompt directory entirely - no lazy init
	_, statErr := os.Stat(filepath.Join(tmpDir, "prompts"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPromptStore_OverridePathMissing(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewPromptStore(tmpDir, filepath.Join(tmpDir, "missing.txt"))
	require.NoError(t, err)

	_, err = store.Load(driven.PromptAnnotate)
	assert.Error(t, err)
}

func TestPromptStore_OverridePathEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	overridePath := filepath.Join(tmpDir, "empty.txt")
	require.NoError(t, os.WriteFile(overridePath, []byte("  \n"), 0600))

	store, err := NewPromptStore(tmpDir, overridePath)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptAnnotate)
	assert.Error(t, err)
}
