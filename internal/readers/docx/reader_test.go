package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(documentXML, coreXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	// Add [Content_Types].xml (required for valid DOCX)
	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	// Add word/document.xml
	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	// Add docProps/core.xml if provided
	if coreXML != "" {
		core, _ := w.Create("docProps/core.xml")
		core.Write([]byte(coreXML))
	}

	w.Close()
	return buf.Bytes()
}

// writeTestDOCX writes a test DOCX to a temp file and returns its path.
func writeTestDOCX(t *testing.T, documentXML, coreXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.docx")
	require.NoError(t, os.WriteFile(path, createTestDOCX(documentXML, coreXML), 0o600))
	return path
}

func TestNew(t *testing.T) {
	reader := New()
	require.NotNil(t, reader)
	assert.IsType(t, &Reader{}, reader)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".docx"}, New().SupportedExtensions())
}

func TestRead_Success(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>मदिरालय जाने को घर से</w:t></w:r></w:p>
<w:p><w:r><w:t>चलता है पीनेवाला</w:t></w:r></w:p>
</w:body>
</w:document>`
	coreXML := `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Madhushala</dc:title>
</cp:coreProperties>`

	path := writeTestDOCX(t, docXML, coreXML)

	doc, err := New().Read(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "Madhushala", doc.Title)
	assert.Equal(t, "मदिरालय जाने को घर से\nचलता है पीनेवाला", doc.Content)
	assert.Equal(t, 2, doc.ParagraphCount)
}

func TestRead_MultipleRunsPerParagraph(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>
</w:body>
</w:document>`

	path := writeTestDOCX(t, docXML, "")

	doc, err := New().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", doc.Content)
}

func TestRead_TitleFallsBackToFilename(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>text</w:t></w:r></w:p></w:body>
</w:document>`

	dir := t.TempDir()
	path := filepath.Join(dir, "my_poem-collection.docx")
	require.NoError(t, os.WriteFile(path, createTestDOCX(docXML, ""), 0o600))

	doc, err := New().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "my poem collection", doc.Title)
}

func TestRead_NotFound(t *testing.T) {
	_, err := New().Read(context.Background(), "/nonexistent/input.docx")
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestRead_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a zip"), 0o600))

	_, err := New().Read(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRead_MissingDocumentXML(t *testing.T) {
	path := writeTestDOCX(t, "", "")

	_, err := New().Read(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestRead_MalformedDocumentXML(t *testing.T) {
	path := writeTestDOCX(t, "<not-closed", "")

	_, err := New().Read(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRead_EmptyBody(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body></w:body>
</w:document>`

	path := writeTestDOCX(t, docXML, "")

	doc, err := New().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, doc.Content)
	assert.Zero(t, doc.ParagraphCount)
}

func TestRead_ErrorsAreMatchable(t *testing.T) {
	_, err := New().Read(context.Background(), "/nope.docx")
	assert.True(t, errors.Is(err, domain.ErrInputNotFound))
}

func TestRead_PermissionDeniedIsNotNotFound(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks unreliable as root")
	}

	path := filepath.Join(t.TempDir(), "locked.docx")
	require.NoError(t, os.WriteFile(path, []byte("not read anyway"), 0o000))

	_, err := New().Read(context.Background(), path)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInputNotFound)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedFormat)
}
