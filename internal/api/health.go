// internal/api/health.go
package api

import (
	"net/http"
	"time"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": s.config.App.Version,
		"uptime":  time.Since(s.startedAt).Round(time.Second).String(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady reports 503 until the store holds at least one scheme, so load
// balancers keep traffic away from an instance that booted degraded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if len(snap.Schemes) == 0 {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not_ready",
			"reason": "corpus not loaded",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ready",
		"schemes":       len(snap.Schemes),
		"corpusVersion": snap.Version,
		"time":          time.Now().UTC().Format(time.RFC3339),
	})
}
