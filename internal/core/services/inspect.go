package services

import (
	"context"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driving"
)

// Ensure InspectService implements the interface.
var _ driving.Inspector = (*InspectService)(nil)

// InspectService reports on an input document without calling a provider.
// It runs the same read-split-chunk front half of the pipeline and returns
// statistics instead of processing anything.
type InspectService struct {
	settings *domain.Settings
	source   driven.DocumentSource
	chunker  driven.Chunker
}

// NewInspectService creates an inspect service.
func NewInspectService(settings *domain.Settings, source driven.DocumentSource, chunker driven.Chunker) *InspectService {
	return &InspectService{
		settings: settings,
		source:   source,
		chunker:  chunker,
	}
}

// Inspect reads the configured input and returns its statistics.
func (s *InspectService) Inspect(ctx context.Context) (*driving.DocumentInfo, error) {
	doc, err := s.source.Read(ctx, s.settings.InputPath)
	if err != nil {
		return nil, err
	}

	blocks := domain.SplitBlocks(doc.Content, s.settings.Separator)
	chunks := s.chunker.Chunk(blocks)

	info := &driving.DocumentInfo{
		Path:           doc.Path,
		Title:          doc.Title,
		ParagraphCount: doc.ParagraphCount,
		BlockCount:     len(blocks),
		ChunkCount:     len(chunks),
		Blocks:         make([]driving.BlockInfo, 0, len(blocks)),
	}
	for _, block := range blocks {
		info.Blocks = append(info.Blocks, driving.BlockInfoFor(block))
	}
	return info, nil
}
