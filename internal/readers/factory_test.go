package readers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
)

func TestForPath_DOCX(t *testing.T) {
	source, err := ForPath("/path/to/diwan.docx")

	require.NoError(t, err)
	assert.Contains(t, source.SupportedExtensions(), ".docx")
}

func TestForPath_Text(t *testing.T) {
	source, err := ForPath("poems.txt")

	require.NoError(t, err)
	assert.Contains(t, source.SupportedExtensions(), ".txt")
}

func TestForPath_CaseInsensitive(t *testing.T) {
	_, err := ForPath("POEMS.DOCX")

	assert.NoError(t, err)
}

func TestForPath_UnknownExtension(t *testing.T) {
	_, err := ForPath("poems.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestForPath_NoExtension(t *testing.T) {
	_, err := ForPath("poems")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
