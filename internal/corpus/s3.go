// internal/corpus/s3.go
package corpus

import (
	"bytes"
	"context"

	"github.com/schemesetu/scheme-engine/internal/common/aws"
	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/models"
)

// S3Source reads a CSV corpus object from S3 or an S3-compatible store.
type S3Source struct {
	client *aws.S3Client
	key    string
}

func NewS3Source(client *aws.S3Client, key string) *S3Source {
	return &S3Source{client: client, key: key}
}

func (s *S3Source) Name() string {
	return "s3"
}

func (s *S3Source) Load(ctx context.Context) ([]models.Scheme, error) {
	data, err := s.client.Download(ctx, s.key)
	if err != nil {
		return nil, apperrors.NewCorpusSourceUnavailableError("s3", err)
	}

	result, err := DecodeCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return result.Schemes, nil
}
