package writers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
	"github.com/kavya-labs/kavya-cli/internal/writers/docx"
	"github.com/kavya-labs/kavya-cli/internal/writers/text"
)

// ForPath selects a DocumentSink for the given output path by extension.
func ForPath(path, separator string) (driven.DocumentSink, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return docx.New(path, separator), nil
	case ".txt", ".text":
		return text.New(path, separator), nil
	default:
		return nil, fmt.Errorf("%w: no writer for %q", domain.ErrUnsupportedFormat, filepath.Ext(path))
	}
}
