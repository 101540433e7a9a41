// internal/corpus/file.go
package corpus

import (
	"context"
	"os"

	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/models"
)

// FileSource reads the corpus from a local CSV file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) Load(ctx context.Context) ([]models.Scheme, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.NewCorpusSourceUnavailableError("file", err)
	}
	defer f.Close()

	result, err := DecodeCSV(f)
	if err != nil {
		return nil, err
	}
	return result.Schemes, nil
}
