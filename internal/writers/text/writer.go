// Package text provides a DocumentSink that writes annotated results to a
// plain text file.
package text

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DocumentSink = (*Writer)(nil)

// Writer persists chunk results to a text file. Results are buffered by
// chunk index and the file is regenerated on every Write, so writes are
// idempotent per index.
type Writer struct {
	mu        sync.Mutex
	path      string
	separator string
	results   map[int]domain.ChunkResult
	finalized bool
}

// New creates a text writer targeting path.
func New(path, separator string) *Writer {
	return &Writer{
		path:      path,
		separator: separator,
		results:   make(map[int]domain.ChunkResult),
	}
}

// Write stores the result and persists the file.
func (w *Writer) Write(result domain.ChunkResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finalized {
		return fmt.Errorf("%w: writer already finalized", domain.ErrOutputWrite)
	}

	w.results[result.ChunkIndex] = result
	return w.persist()
}

// Finalize persists the file one last time and closes the writer.
func (w *Writer) Finalize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finalized {
		return nil
	}
	w.finalized = true

	if len(w.results) == 0 {
		return nil
	}
	return w.persist()
}

// persist regenerates the file atomically (caller must hold lock).
func (w *Writer) persist() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("%w: create output directory: %v", domain.ErrOutputWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), ".kavya-*.txt")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrOutputWrite, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(w.render()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %v", domain.ErrOutputWrite, w.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %v", domain.ErrOutputWrite, err)
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrOutputWrite, w.path, err)
	}
	return nil
}

// render produces the full file content from the buffered results.
func (w *Writer) render() string {
	ordered := make([]domain.ChunkResult, 0, len(w.results))
	for _, r := range w.results {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ChunkIndex < ordered[j].ChunkIndex
	})

	var b strings.Builder
	for i, result := range ordered {
		if i > 0 {
			b.WriteString(w.separator)
		}
		b.WriteString(result.Source)
		if result.Annotation != "" {
			b.WriteString("\n\n")
			b.WriteString(result.Annotation)
		}
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}
