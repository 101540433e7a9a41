// internal/corpus/store.go
package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/schemesetu/scheme-engine/internal/common/errors"
	"github.com/schemesetu/scheme-engine/internal/common/logger"
	"github.com/schemesetu/scheme-engine/internal/common/metrics"
	"github.com/schemesetu/scheme-engine/internal/models"
)

// Snapshot is one immutable load of the corpus. Readers share the slice and
// must not mutate it.
type Snapshot struct {
	Schemes  []models.Scheme
	Version  string
	Checksum string
	Source   string
	LoadedAt time.Time
}

// Store publishes the current corpus snapshot. Swaps are atomic; a request
// that grabbed a snapshot keeps ranking against it even while a reload lands
// a new one.
type Store struct {
	current atomic.Pointer[Snapshot]
	logger  logger.Logger
}

func NewStore(log logger.Logger) *Store {
	s := &Store{logger: log}
	s.current.Store(&Snapshot{Version: "empty"})
	return s
}

// Snapshot returns the current corpus. Never nil; before the first
// successful reload it holds zero schemes.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Reload pulls the full dataset from the source and swaps it in. A failed or
// empty load keeps the previous snapshot serving and returns the error.
func (s *Store) Reload(ctx context.Context, src Source) error {
	start := time.Now()

	schemes, err := src.Load(ctx)
	if err != nil {
		metrics.CorpusReloads.WithLabelValues(src.Name(), "error").Inc()
		return err
	}
	if len(schemes) == 0 {
		metrics.CorpusReloads.WithLabelValues(src.Name(), "empty").Inc()
		return apperrors.NewCorpusEmptyError(src.Name())
	}

	snap := &Snapshot{
		Schemes:  schemes,
		Version:  uuid.New().String(),
		Checksum: checksum(schemes),
		Source:   src.Name(),
		LoadedAt: time.Now().UTC(),
	}
	s.current.Store(snap)

	metrics.CorpusReloads.WithLabelValues(src.Name(), "success").Inc()
	metrics.CorpusSchemes.Set(float64(len(schemes)))
	s.logger.Info("corpus reloaded", map[string]interface{}{
		"source":      src.Name(),
		"schemes":     len(schemes),
		"version":     snap.Version,
		"checksum":    snap.Checksum,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// StartReloader reloads on a fixed interval until the context ends. A zero
// or negative interval disables periodic reloads.
func (s *Store) StartReloader(ctx context.Context, src Source, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Reload(ctx, src); err != nil {
					s.logger.Warn("periodic corpus reload failed", map[string]interface{}{
						"source": src.Name(),
						"error":  err.Error(),
					})
				}
			}
		}
	}()
}

// checksum fingerprints the dataset so operators can tell identical reloads
// apart from real content changes.
func checksum(schemes []models.Scheme) string {
	h := sha256.New()
	for i := range schemes {
		h.Write([]byte(schemes[i].ID))
		h.Write([]byte{0})
		h.Write([]byte(schemes[i].Title))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
