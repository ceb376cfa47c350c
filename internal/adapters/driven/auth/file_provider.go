package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// Ensure FileProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*FileProvider)(nil)

// FileProvider reads the token from a file, trimming surrounding
// whitespace. A file that was configured but cannot be read is a hard
// error, not something a chain skips over.
type FileProvider struct {
	path   string
	source string
}

// NewFileProvider creates a provider reading the token from path.
func NewFileProvider(path, source string) *FileProvider {
	return &FileProvider{
		path:   path,
		source: source,
	}
}

// Token reads and trims the file content.
func (p *FileProvider) Token(_ context.Context) (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", fmt.Errorf("read token file %s: %w", p.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: token file %s is empty", domain.ErrTokenMissing, p.path)
	}
	return token, nil
}

// Source returns the provider's source label.
func (p *FileProvider) Source() string {
	return p.source
}
