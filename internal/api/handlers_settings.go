package api

import (
	"net/http"

	"github.com/dgallion1/linklabel/internal/settings"
)

type settingsResponse struct {
	settings.Settings
	Form settings.Form `json:"form"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.store.Load(r.Context())
	if err != nil {
		s.log.Error("load settings", "error", err)
		jsonError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Settings: current, Form: current.ToForm()})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var form settings.Form
	if code, err := s.decodeJSON(w, r, &form); err != nil {
		jsonError(w, err.Error(), code)
		return
	}

	if err := s.store.Save(r.Context(), settings.Sanitize(form)); err != nil {
		s.log.Error("save settings", "error", err)
		jsonError(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	// Read back so the response shows the effective settings, including
	// defaults when the submitted list was empty.
	current, err := s.store.Load(r.Context())
	if err != nil {
		s.log.Error("load settings", "error", err)
		jsonError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	s.log.Info("settings updated", "enabled", current.Enabled, "generic_texts", len(current.GenericTexts))
	writeJSON(w, http.StatusOK, settingsResponse{Settings: current, Form: current.ToForm()})
}

func (s *Server) handleDeleteSettings(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context()); err != nil {
		s.log.Error("delete settings", "error", err)
		jsonError(w, "failed to delete settings", http.StatusInternalServerError)
		return
	}
	s.log.Info("settings deleted")
	w.WriteHeader(http.StatusNoContent)
}
