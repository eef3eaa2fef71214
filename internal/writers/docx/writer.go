// Package docx provides a DocumentSink that writes annotated results
// into an OOXML wordprocessing container.
package docx

import (
	"archive/zip"
	"encoding/xml"
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

// Writer persists chunk results to a DOCX file. Results are buffered by
// chunk index and the whole container is regenerated on every Write, so
// writes are idempotent per index and partial progress is always on disk.
type Writer struct {
	mu        sync.Mutex
	path      string
	separator string
	results   map[int]domain.ChunkResult
	finalized bool
}

// New creates a DOCX writer targeting path. The separator string is
// written between annotated entries.
func New(path, separator string) *Writer {
	return &Writer{
		path:      path,
		separator: separator,
		results:   make(map[int]domain.ChunkResult),
	}
}

// Write stores the result and persists the document.
func (w *Writer) Write(result domain.ChunkResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finalized {
		return fmt.Errorf("%w: writer already finalized", domain.ErrOutputWrite)
	}

	w.results[result.ChunkIndex] = result
	return w.persist()
}

// Finalize persists the document one last time and closes the writer.
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

// persist regenerates the container atomically (caller must hold lock).
func (w *Writer) persist() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("%w: create output directory: %v", domain.ErrOutputWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), ".kavya-*.docx")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrOutputWrite, err)
	}
	tmpPath := tmp.Name()

	if err := w.writeContainer(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
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

// writeContainer writes the DOCX ZIP structure to f.
func (w *Writer) writeContainer(f *os.File) error {
	zw := zip.NewWriter(f)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", w.documentXML()},
	}

	for _, part := range parts {
		entry, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("%w: create %s: %v", domain.ErrOutputWrite, part.name, err)
		}
		if _, err := entry.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("%w: write %s: %v", domain.ErrOutputWrite, part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: close archive: %v", domain.ErrOutputWrite, err)
	}
	return nil
}

// ordered returns the buffered results sorted by chunk index.
func (w *Writer) ordered() []domain.ChunkResult {
	ordered := make([]domain.ChunkResult, 0, len(w.results))
	for _, r := range w.results {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ChunkIndex < ordered[j].ChunkIndex
	})
	return ordered
}

// documentXML renders word/document.xml: per entry the original text, a
// blank line, then the annotation, with the separator between entries.
func (w *Writer) documentXML() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	sep := strings.TrimSpace(w.separator)
	for i, result := range w.ordered() {
		if i > 0 && sep != "" {
			writeParagraph(&b, sep)
		}
		for _, line := range strings.Split(result.Source, "\n") {
			writeParagraph(&b, line)
		}
		if result.Annotation != "" {
			writeParagraph(&b, "")
			for _, line := range strings.Split(result.Annotation, "\n") {
				writeParagraph(&b, line)
			}
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// writeParagraph renders one paragraph with a single run.
func writeParagraph(b *strings.Builder, text string) {
	if text == "" {
		b.WriteString(`<w:p/>`)
		return
	}
	b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
	xml.EscapeText(b, []byte(text)) //nolint:errcheck // strings.Builder cannot fail
	b.WriteString(`</w:t></w:r></w:p>`)
}

// contentTypesXML declares the package content types.
const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

// relsXML links the package root to the main document part.
const relsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
