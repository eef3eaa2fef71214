package driving

import (
	"context"
	"time"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
)

// Annotator runs the annotation pipeline: read, chunk, call the provider
// per chunk, and persist results incrementally.
type Annotator interface {
	// Run processes every chunk of the configured input document in index
	// order and returns a report. A non-nil report is returned whenever
	// the run reached the processing stage, even if chunks failed; err is
	// non-nil only for fatal conditions (configuration, input, output).
	Run(ctx context.Context) (*RunReport, error)
}

// Inspector reports on an input document without calling any provider.
type Inspector interface {
	// Inspect reads the configured input and returns its statistics.
	Inspect(ctx context.Context) (*DocumentInfo, error)
}

// RunReport summarises a completed pipeline run.
type RunReport struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// TotalChunks is the number of chunks processed.
	TotalChunks int `json:"total_chunks"`

	// Succeeded is the number of chunks that produced an annotation.
	Succeeded int `json:"succeeded"`

	// Failed is the number of chunks that exhausted their retries.
	Failed int `json:"failed"`

	// Failures lists failed chunks with their reasons, in chunk order.
	Failures []ChunkFailure `json:"failures,omitempty"`

	// OutputPath is where the annotated document was written.
	OutputPath string `json:"output_path"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`
}

// Ok reports whether every chunk succeeded.
func (r *RunReport) Ok() bool {
	return r.Failed == 0
}

// ChunkFailure records a chunk that ended in the failed state.
type ChunkFailure struct {
	// ChunkIndex is the index of the failed chunk.
	ChunkIndex int `json:"chunk_index"`

	// Attempts is the number of provider calls made.
	Attempts int `json:"attempts"`

	// Reason is the last underlying failure cause.
	Reason string `json:"reason"`
}

// DocumentInfo holds statistics about an input document.
type DocumentInfo struct {
	// Path is the input document path.
	Path string `json:"path"`

	// Title is the document title.
	Title string `json:"title"`

	// ParagraphCount is the number of paragraphs in the container.
	ParagraphCount int `json:"paragraph_count"`

	// BlockCount is the number of separator-delimited blocks.
	BlockCount int `json:"block_count"`

	// ChunkCount is the number of chunks under the configured chunk size.
	ChunkCount int `json:"chunk_count"`

	// Blocks holds per-block statistics in document order.
	Blocks []BlockInfo `json:"blocks"`
}

// BlockInfo holds statistics for a single source block.
type BlockInfo struct {
	// Index is the block ordinal.
	Index int `json:"index"`

	// Words is the whitespace-separated word count.
	Words int `json:"words"`

	// Lines is the line count.
	Lines int `json:"lines"`

	// Runes is the rune count.
	Runes int `json:"runes"`
}

// BlockInfoFor computes statistics for a source block.
func BlockInfoFor(b domain.SourceBlock) BlockInfo {
	return BlockInfo{
		Index: b.Index,
		Words: b.WordCount(),
		Lines: b.LineCount(),
		Runes: b.RuneCount(),
	}
}
