package text

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.DocumentSource = (*Reader)(nil)

// Reader handles plain text documents.
type Reader struct{}

// New creates a new plain text reader.
func New() *Reader {
	return &Reader{}
}

// SupportedExtensions returns the file extensions this reader handles.
func (r *Reader) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

// Read loads the text file at path.
func (r *Reader) Read(_ context.Context, path string) (*domain.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
		}
		// Permission and I/O failures are not a missing input.
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	content := string(data)

	filename := filepath.Base(path)
	title := strings.TrimSuffix(filename, filepath.Ext(filename))

	return &domain.SourceDocument{
		Path:           path,
		Title:          title,
		Content:        content,
		ParagraphCount: strings.Count(content, "\n") + 1,
	}, nil
}
