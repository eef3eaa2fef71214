package driven

import (
	"context"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
)

// DocumentSource reads an input document and extracts its text content.
// Each implementation handles one container format (DOCX, plain text).
type DocumentSource interface {
	// Read opens the document at path and extracts its content.
	// Returns domain.ErrInputNotFound when the path does not resolve and
	// domain.ErrUnsupportedFormat when the file cannot be parsed as the
	// expected container.
	Read(ctx context.Context, path string) (*domain.SourceDocument, error)

	// SupportedExtensions returns the file extensions this source handles,
	// including the leading dot.
	SupportedExtensions() []string
}

// Chunker groups source blocks into bounded-size chunks for single
// provider calls. Chunking must be deterministic: the same blocks and
// configuration always produce the same boundaries.
type Chunker interface {
	// Chunk groups blocks into chunks in document order.
	Chunk(blocks []domain.SourceBlock) []domain.Chunk
}

// DocumentSink persists annotated results to the output document.
//
// Write is idempotent per chunk index: writing a result for an index that
// was already written replaces the previous entry rather than duplicating
// it. The sink keeps results ordered by chunk index regardless of write
// order, and persists the full document on every call so partial progress
// survives interruption.
type DocumentSink interface {
	// Write stores the result and persists the document.
	// Returns domain.ErrOutputWrite on filesystem or container failure.
	Write(result domain.ChunkResult) error

	// Finalize flushes and closes the output document.
	Finalize() error
}
