package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
	"github.com/kavya-labs/kavya-cli/internal/readers/docx"
	"github.com/kavya-labs/kavya-cli/internal/readers/text"
)

// ForPath selects a DocumentSource for the given input path by extension.
// Unknown extensions are an unsupported format.
func ForPath(path string) (driven.DocumentSource, error) {
	ext := strings.ToLower(filepath.Ext(path))

	for _, source := range []driven.DocumentSource{docx.New(), text.New()} {
		for _, supported := range source.SupportedExtensions() {
			if ext == supported {
				return source, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: no reader for %q", domain.ErrUnsupportedFormat, ext)
}
