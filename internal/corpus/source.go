// internal/corpus/source.go
package corpus

import (
	"context"
	"fmt"

	"github.com/schemesetu/scheme-engine/internal/common/aws"
	"github.com/schemesetu/scheme-engine/internal/common/config"
	"github.com/schemesetu/scheme-engine/internal/common/database"
	"github.com/schemesetu/scheme-engine/internal/models"
)

// Source loads the full scheme corpus from one backing store. Load returns
// the complete dataset on every call; there is no incremental path.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Scheme, error)
}

// NewSource builds the Source selected by cfg.Corpus.Source. The backing
// client is created here too, so a bad DSN or unreachable endpoint surfaces
// at startup rather than on the first reload.
func NewSource(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.Corpus.Source {
	case "file":
		return NewFileSource(cfg.Corpus.Path), nil
	case "s3":
		client, err := aws.NewS3Client(ctx, cfg.Corpus.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Source(client, cfg.Corpus.S3.Key), nil
	case "postgres":
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		return NewPostgresSource(pg, cfg.Corpus.Table, cfg.Corpus.MaxRecords), nil
	case "elasticsearch":
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		return NewElasticsearchSource(es, cfg.Corpus.Index, cfg.Corpus.MaxRecords), nil
	default:
		return nil, fmt.Errorf("unsupported corpus source: %s", cfg.Corpus.Source)
	}
}
