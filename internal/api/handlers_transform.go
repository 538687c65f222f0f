package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgallion1/linklabel/internal/parser"
	"github.com/dgallion1/linklabel/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type unitRequest struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
	Kind    string `json:"kind"`
	Format  string `json:"format"`
}

func (u unitRequest) toUnit() (pipeline.Unit, error) {
	kind, err := pipeline.ParseKind(u.Kind)
	if err != nil {
		return pipeline.Unit{}, err
	}
	format, err := parser.ParseFormat(u.Format)
	if err != nil {
		return pipeline.Unit{}, err
	}
	return pipeline.Unit{ID: u.ID, Kind: kind, Format: format, Content: u.Content}, nil
}

type batchRequest struct {
	Units []unitRequest `json:"units"`
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if code, err := s.decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), code)
		return
	}
	unit, err := req.toUnit()
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.orchestrator.Transform(r.Context(), unit)
	if err != nil {
		s.log.Error("transform failed", "kind", unit.Kind, "format", unit.Format, "error", err)
		jsonError(w, "transform failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBatchTransform(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if code, err := s.decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), code)
		return
	}
	if len(req.Units) == 0 {
		jsonError(w, "at least one unit is required", http.StatusBadRequest)
		return
	}
	if len(req.Units) > s.cfg.MaxBatchUnits {
		jsonError(w, fmt.Sprintf("batch exceeds max units (%d)", s.cfg.MaxBatchUnits), http.StatusRequestEntityTooLarge)
		return
	}

	units := make([]pipeline.Unit, 0, len(req.Units))
	for i, u := range req.Units {
		unit, err := u.toUnit()
		if err != nil {
			jsonError(w, fmt.Sprintf("unit %d: %s", i, err), http.StatusBadRequest)
			return
		}
		units = append(units, unit)
	}

	job := pipeline.NewJob(units)
	if err := s.orchestrator.Submit(job); err != nil {
		s.log.Warn("batch rejected", "job_id", job.ID, "error", err)
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"units":    len(units),
		"poll_url": fmt.Sprintf("/api/transform/%s/status", job.ID),
	})
}

func (s *Server) handleTransformStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// decodeJSON reads a size-limited JSON body into v. On failure it returns the
// status code to answer with.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds max size (%d bytes)", s.cfg.MaxBodyBytes)
		}
		return http.StatusBadRequest, fmt.Errorf("invalid json body: %w", err)
	}
	return 0, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
