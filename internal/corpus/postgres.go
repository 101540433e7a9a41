// internal/corpus/postgres.go
package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/schemesetu/scheme-engine/internal/common/database"
	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/models"
)

// tableNamePattern restricts the configured table name to a plain SQL
// identifier; the name is interpolated into the query text.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresSource reads the corpus from a schemes table.
type PostgresSource struct {
	db    *database.PostgresClient
	table string
	limit int
}

func NewPostgresSource(db *database.PostgresClient, table string, limit int) *PostgresSource {
	return &PostgresSource{db: db, table: table, limit: limit}
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

func (s *PostgresSource) Load(ctx context.Context) ([]models.Scheme, error) {
	if !tableNamePattern.MatchString(s.table) {
		return nil, apperrors.NewCorpusLoadError("postgres", fmt.Errorf("invalid table name %q", s.table))
	}

	query := fmt.Sprintf(
		`SELECT id, title, description, eligibility, category, state, level, tags, application_url
		 FROM %s ORDER BY id LIMIT $1`, s.table)

	rows, err := s.db.Query(ctx, query, s.limit)
	if err != nil {
		return nil, apperrors.NewCorpusSourceUnavailableError("postgres", err)
	}
	defer rows.Close()

	var schemes []models.Scheme
	row := 0
	for rows.Next() {
		var id, title, description, eligibility, category, state, level, tags, appURL sql.NullString
		if err := rows.Scan(&id, &title, &description, &eligibility, &category, &state, &level, &tags, &appURL); err != nil {
			return nil, apperrors.NewCorpusLoadError("postgres", err)
		}
		row++

		if title.String == "" {
			continue
		}
		scheme := models.Scheme{
			ID:              id.String,
			Title:           title.String,
			Description:     description.String,
			EligibilityText: eligibility.String,
			Category:        category.String,
			State:           state.String,
			Level:           level.String,
			TagsText:        tags.String,
			ApplicationURL:  appURL.String,
		}
		if scheme.ID == "" {
			scheme.ID = fmt.Sprintf("scheme-%04d", row)
		}
		schemes = append(schemes, scheme)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCorpusLoadError("postgres", err)
	}

	return schemes, nil
}
