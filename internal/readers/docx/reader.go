package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.DocumentSource = (*Reader)(nil)

// Reader extracts text from DOCX documents.
type Reader struct{}

// New creates a new DOCX reader.
func New() *Reader {
	return &Reader{}
}

// SupportedExtensions returns the file extensions this reader handles.
func (r *Reader) SupportedExtensions() []string {
	return []string{".docx"}
}

// Read opens the DOCX container at path and extracts its paragraph text.
func (r *Reader) Read(_ context.Context, path string) (*domain.SourceDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
		}
		// Permission and I/O failures are not a missing input.
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	// Open as ZIP archive
	reader, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %s is not a DOCX archive", domain.ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer reader.Close()

	// Extract text content from document.xml
	content, paragraphs, err := extractDocumentText(&reader.Reader)
	if err != nil {
		return nil, err
	}

	// Extract title from core.xml or fall back to filename
	title := extractTitle(&reader.Reader, path)

	return &domain.SourceDocument{
		Path:           path,
		Title:          title,
		Content:        content,
		ParagraphCount: paragraphs,
	}, nil
}

// extractDocumentText extracts text from word/document.xml.
// Returns the joined paragraph text and the paragraph count.
func extractDocumentText(reader *zip.Reader) (string, int, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", 0, fmt.Errorf("%w: unreadable document.xml", domain.ErrUnsupportedFormat)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", 0, fmt.Errorf("%w: unreadable document.xml", domain.ErrUnsupportedFormat)
		}

		return parseDocumentXML(content)
	}
	return "", 0, fmt.Errorf("%w: missing word/document.xml", domain.ErrUnsupportedFormat)
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML.
// Each paragraph becomes one line of output.
func parseDocumentXML(content []byte) (string, int, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", 0, fmt.Errorf("%w: malformed document.xml", domain.ErrUnsupportedFormat)
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, text := range r.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return result.String(), len(doc.Body.Paragraphs), nil
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// extractTitle extracts the title from docProps/core.xml or falls back to
// the filename.
func extractTitle(reader *zip.Reader, path string) string {
	for _, file := range reader.File {
		if file.Name != "docProps/core.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			break
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			break
		}

		var core coreXML
		if err := xml.Unmarshal(content, &core); err == nil && core.Title != "" {
			return strings.TrimSpace(core.Title)
		}
		break
	}

	// Fall back to filename
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
