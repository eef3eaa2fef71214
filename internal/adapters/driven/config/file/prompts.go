package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
	"github.com/kavya-labs/kavya-cli/internal/core/services"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads system instructions from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded
// defaults, so the tool works out of the box with no setup.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor. This makes testing easier and avoids
// unexpected I/O.
//
// An explicit override path (the system_message_path setting) takes
// precedence over the prompt directory for the annotate prompt.
type PromptStore struct {
	mu           sync.RWMutex
	promptDir    string
	overridePath string
	cache        map[string]string
	initOnce     sync.Once
	initErr      error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content
// for new files.
var defaultPrompts = map[string]string{
	driven.PromptAnnotate: services.DefaultSystemMessage,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.kavya/prompts/.
// overridePath, when non-empty, names a file whose content replaces the
// annotate prompt; a missing override file is an error rather than a
// silent fallback, since the user asked for it explicitly.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir, overridePath string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".kavya", "prompts")
	}

	return &PromptStore{
		promptDir:    promptDir,
		overridePath: overridePath,
		cache:        make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to the embedded default if the file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// An explicit override file bypasses the prompt directory entirely.
	if name == driven.PromptAnnotate && s.overridePath != "" {
		return s.loadOverride()
	}

	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// loadOverride reads the explicit system message file. Unlike the prompt
// directory there is no default fallback: a configured path that cannot
// be read is a configuration problem the user should hear about.
func (s *PromptStore) loadOverride() (string, error) {
	data, err := os.ReadFile(s.overridePath)
	if err != nil {
		return "", fmt.Errorf("read system message file %q: %w", s.overridePath, err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("system message file %q is empty", s.overridePath)
	}
	return content, nil
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Kavya Prompts

This directory contains the customisable system instruction used by Kavya
when annotating poems.

## Files

- ` + "`annotate.txt`" + ` - System instruction sent with every chunk

## Customisation

Edit the file to change how the model annotates your poems. Changes take
effect on the next run.

The ` + "`system_message_path`" + ` setting (or the --system-message flag)
points at an alternative file and takes precedence over this directory.
`
	return os.WriteFile(path, []byte(content), 0600)
}
