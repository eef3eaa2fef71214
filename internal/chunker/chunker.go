// Package chunker groups source blocks into bounded-size chunks for
// single provider calls.
package chunker

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
)

// DefaultChunkSize is the default chunk bound in runes.
const DefaultChunkSize = 1000

// Chunker concatenates whole source blocks into chunks up to a size bound.
// Blocks are never split: a poem must stay contiguous, so a single block
// larger than the bound becomes its own oversized chunk.
type Chunker struct {
	chunkSize int
	separator string
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk bound in runes.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithSeparator sets the string joining blocks within a chunk.
func WithSeparator(sep string) Option {
	return func(c *Chunker) {
		c.separator = sep
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		separator: domain.DefaultSeparator,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Chunk groups blocks into chunks in document order. The same blocks and
// the same bound always yield the same boundaries.
func (c *Chunker) Chunk(blocks []domain.SourceBlock) []domain.Chunk {
	if len(blocks) == 0 {
		return nil
	}

	sepLen := utf8.RuneCountInString(c.separator)
	chunks := make([]domain.Chunk, 0, len(blocks))

	var (
		text    string
		indexes []int
		size    int
	)

	flush := func() {
		if len(indexes) == 0 {
			return
		}
		chunks = append(chunks, domain.Chunk{
			ID:           uuid.New().String(),
			Index:        len(chunks),
			Text:         text,
			BlockIndexes: indexes,
		})
		text, indexes, size = "", nil, 0
	}

	for _, block := range blocks {
		blockLen := block.RuneCount()

		if len(indexes) > 0 && size+sepLen+blockLen > c.chunkSize {
			flush()
		}

		if len(indexes) == 0 {
			text = block.Text
			size = blockLen
		} else {
			text += c.separator + block.Text
			size += sepLen + blockLen
		}
		indexes = append(indexes, block.Index)
	}
	flush()

	return chunks
}
