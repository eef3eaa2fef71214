package domain

import (
	"strings"
	"unicode/utf8"
)

// SourceDocument is the extracted content of an input document before
// splitting. It is produced by a reader and owned by the caller.
type SourceDocument struct {
	// Path is the location the document was read from.
	Path string

	// Title is the document title from container metadata, or a
	// filename-derived fallback.
	Title string

	// Content is the full extracted text, one line per paragraph.
	Content string

	// ParagraphCount is the number of paragraphs in the container.
	ParagraphCount int
}

// SourceBlock is one separator-delimited segment of the input document,
// typically a single poem. Blocks are immutable once extracted.
type SourceBlock struct {
	// Index is the zero-based ordinal in document order.
	Index int

	// Text is the block content with surrounding whitespace trimmed.
	Text string
}

// WordCount returns the number of whitespace-separated words in the block.
func (b SourceBlock) WordCount() int {
	return len(strings.Fields(b.Text))
}

// LineCount returns the number of lines in the block.
func (b SourceBlock) LineCount() int {
	if b.Text == "" {
		return 0
	}
	return strings.Count(b.Text, "\n") + 1
}

// RuneCount returns the number of runes in the block. Poem text is
// frequently non-ASCII, so byte length is not a useful measure.
func (b SourceBlock) RuneCount() int {
	return utf8.RuneCountInString(b.Text)
}

// SplitBlocks splits extracted document text into SourceBlocks on the given
// separator. Blank and whitespace-only segments are dropped; surviving
// segments are trimmed and numbered in document order.
func SplitBlocks(content, separator string) []SourceBlock {
	if content == "" {
		return nil
	}

	segments := strings.Split(content, separator)
	blocks := make([]SourceBlock, 0, len(segments))

	for _, segment := range segments {
		text := strings.TrimSpace(segment)
		if text == "" {
			continue
		}
		blocks = append(blocks, SourceBlock{
			Index: len(blocks),
			Text:  text,
		})
	}

	return blocks
}

// Chunk is a bounded-size unit of text sent to the provider in one call.
// It groups whole SourceBlocks; a block is never split across chunks.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Index is the ordinal position in the overall sequence.
	Index int

	// Text is the chunk content: member blocks joined by the separator.
	Text string

	// BlockIndexes are the ordinals of the source blocks in this chunk.
	BlockIndexes []int
}

// ChunkState is the processing state of a chunk.
type ChunkState string

// Chunk processing states. Succeeded and Failed are terminal.
const (
	ChunkPending   ChunkState = "pending"
	ChunkCalling   ChunkState = "calling"
	ChunkRetrying  ChunkState = "retrying"
	ChunkSucceeded ChunkState = "succeeded"
	ChunkFailed    ChunkState = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s ChunkState) Terminal() bool {
	return s == ChunkSucceeded || s == ChunkFailed
}

// ChunkResult pairs a chunk with the provider's annotation or a failure
// reason. Exactly one result is produced per chunk, in chunk order.
type ChunkResult struct {
	// ChunkIndex is the index of the chunk this result belongs to.
	ChunkIndex int

	// Source is the original chunk text.
	Source string

	// Annotation is the provider-generated annotation. Empty on failure.
	Annotation string

	// State is the terminal state of the chunk.
	State ChunkState

	// Attempts is the number of provider calls made for this chunk.
	Attempts int

	// FailureReason describes why the chunk failed, when State is ChunkFailed.
	FailureReason string
}

// Succeeded reports whether the chunk produced an annotation.
func (r ChunkResult) Succeeded() bool {
	return r.State == ChunkSucceeded
}
