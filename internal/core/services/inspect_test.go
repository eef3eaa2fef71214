package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavya-labs/kavya-cli/internal/chunker"
	"github.com/kavya-labs/kavya-cli/internal/core/domain"
)

func TestInspectService_Inspect(t *testing.T) {
	settings := testSettings()
	doc := poemsDoc(4)
	doc.Title = "Diwan"
	doc.ParagraphCount = 9

	grouper := chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithSeparator(settings.Separator),
	)
	svc := NewInspectService(settings, &stubSource{doc: doc}, grouper)

	info, err := svc.Inspect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "in.txt", info.Path)
	assert.Equal(t, "Diwan", info.Title)
	assert.Equal(t, 9, info.ParagraphCount)
	assert.Equal(t, 4, info.BlockCount)
	// Chunk size 1 forces one poem per chunk.
	assert.Equal(t, 4, info.ChunkCount)

	require.Len(t, info.Blocks, 4)
	for i, b := range info.Blocks {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, 3, b.Words)
		assert.Equal(t, 1, b.Lines)
		assert.Positive(t, b.Runes)
	}
}

func TestInspectService_Inspect_ReadError(t *testing.T) {
	settings := testSettings()
	grouper := chunker.New()
	svc := NewInspectService(settings, &stubSource{err: domain.ErrInputNotFound}, grouper)

	_, err := svc.Inspect(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}
