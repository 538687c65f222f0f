package api

import (
	"net/http"
)

func (s *Server) handleTransformStats(w http.ResponseWriter, r *http.Request) {
	window := s.orchestrator.Window()
	if window == nil {
		jsonError(w, "transform stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"window_seconds": s.cfg.StatsWindow.Seconds(),
		"queue_depth":    s.orchestrator.QueueDepth(),
		"stats":          window.Snapshot(),
	})
}
