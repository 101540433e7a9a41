// internal/corpus/store_test.go
package corpus

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/common/logger"
	"github.com/schemesetu/scheme-engine/internal/models"
)

type stubSource struct {
	schemes []models.Scheme
	err     error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(ctx context.Context) ([]models.Scheme, error) {
	return s.schemes, s.err
}

func TestStoreStartsEmpty(t *testing.T) {
	store := NewStore(logger.NewNoOpLogger())
	snap := store.Snapshot()

	require.NotNil(t, snap)
	assert.Empty(t, snap.Schemes)
}

func TestStoreReload(t *testing.T) {
	store := NewStore(logger.NewNoOpLogger())
	src := &stubSource{schemes: []models.Scheme{{ID: "1", Title: "PM Kisan"}}}

	require.NoError(t, store.Reload(context.Background(), src))

	snap := store.Snapshot()
	require.Len(t, snap.Schemes, 1)
	assert.Equal(t, "PM Kisan", snap.Schemes[0].Title)
	assert.Equal(t, "stub", snap.Source)
	assert.NotEmpty(t, snap.Version)
	assert.Len(t, snap.Checksum, 16)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestStoreReloadFailureKeepsLastSnapshot(t *testing.T) {
	store := NewStore(logger.NewNoOpLogger())
	require.NoError(t, store.Reload(context.Background(), &stubSource{schemes: []models.Scheme{{ID: "1", Title: "A"}}}))
	before := store.Snapshot()

	err := store.Reload(context.Background(), &stubSource{err: errors.New("connection refused")})
	assert.Error(t, err)
	assert.Same(t, before, store.Snapshot())
}

func TestStoreReloadEmptyDatasetRejected(t *testing.T) {
	store := NewStore(logger.NewNoOpLogger())
	require.NoError(t, store.Reload(context.Background(), &stubSource{schemes: []models.Scheme{{ID: "1", Title: "A"}}}))
	before := store.Snapshot()

	err := store.Reload(context.Background(), &stubSource{schemes: nil})
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeCorpusEmpty, stdErr.Code)
	assert.Same(t, before, store.Snapshot())
}

func TestStoreChecksumTracksContent(t *testing.T) {
	store := NewStore(logger.NewNoOpLogger())

	require.NoError(t, store.Reload(context.Background(), &stubSource{schemes: []models.Scheme{{ID: "1", Title: "A"}}}))
	first := store.Snapshot()

	require.NoError(t, store.Reload(context.Background(), &stubSource{schemes: []models.Scheme{{ID: "1", Title: "A"}}}))
	second := store.Snapshot()

	assert.NotEqual(t, first.Version, second.Version)
	assert.Equal(t, first.Checksum, second.Checksum)

	require.NoError(t, store.Reload(context.Background(), &stubSource{schemes: []models.Scheme{{ID: "2", Title: "B"}}}))
	assert.NotEqual(t, first.Checksum, store.Snapshot().Checksum)
}

func TestStoreConcurrentReads(t *testing.T) {
	store := NewStore(logger.NewNoOpLogger())
	require.NoError(t, store.Reload(context.Background(), &stubSource{schemes: []models.Scheme{{ID: "1", Title: "A"}}}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap := store.Snapshot()
				assert.NotNil(t, snap)
				_ = store.Reload(context.Background(), &stubSource{schemes: []models.Scheme{{ID: "1", Title: "A"}}})
			}
		}()
	}
	wg.Wait()
}
