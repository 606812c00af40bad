package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"riskstat/domain/core"
	"riskstat/domain/sample"
	"riskstat/internal/errors"
	"riskstat/internal/report"
)

type computeRequest struct {
	Samples []float64 `json:"samples"`
	Mode    string    `json:"mode,omitempty"`
}

type sweepRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCompute is the stateless core operation: samples in, mean and
// standard deviation out.
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("request body must be JSON with a samples array"))
		return
	}

	mode, err := s.resolveMode(req.Mode)
	if err != nil {
		s.writeError(w, err)
		return
	}

	set, err := sample.NewSampleSet(req.Samples)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.calc.Compute(set, mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		s.writeError(w, errors.InvalidInput("request body must be JSON with a path"))
		return
	}

	mode, err := s.resolveMode(req.Mode)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.sweep.RunSweep(r.Context(), req.Path, mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListSeries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := s.series.List(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := s.seriesID(w, r)
	if !ok {
		return
	}
	series, err := s.series.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleDeleteSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := s.seriesID(w, r)
	if !ok {
		return
	}
	if err := s.series.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeriesStatistics(w http.ResponseWriter, r *http.Request) {
	id, ok := s.seriesID(w, r)
	if !ok {
		return
	}
	mode, err := s.resolveMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := s.series.Statistics(r.Context(), id, mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSeriesSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.seriesID(w, r)
	if !ok {
		return
	}
	mode, err := s.resolveMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	summary, err := s.series.Summary(r.Context(), id, mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSeriesProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.seriesID(w, r)
	if !ok {
		return
	}
	profile, err := s.series.Profile(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleSeriesRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := s.seriesID(w, r)
	if !ok {
		return
	}
	risk, err := s.series.Risk(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, risk)
}

func (s *Server) handleSeriesReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.seriesID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	series, err := s.series.Get(ctx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	summary, err := s.series.Summary(ctx, id, s.defaultMode)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rep := report.SeriesReport{Series: series, Summary: summary}
	// Shape and risk sections are best-effort: short series simply omit them.
	if profile, err := s.series.Profile(ctx, id); err == nil {
		rep.Profile = &profile
	}
	if risk, err := s.series.Risk(ctx, id); err == nil {
		rep.Risk = &risk
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(s.reports.HTML(rep))
}

// seriesID extracts and validates the {id} route parameter.
func (s *Server) seriesID(w http.ResponseWriter, r *http.Request) (core.SeriesID, bool) {
	id, err := core.ParseSeriesID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.InvalidInput(err.Error()))
		return "", false
	}
	return id, true
}

func (s *Server) resolveMode(raw string) (sample.VarianceMode, error) {
	if raw == "" {
		return s.defaultMode, nil
	}
	return sample.ParseVarianceMode(raw)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

// writeError maps domain and application errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)

	switch {
	case core.IsInvalidInputError(err):
		status = http.StatusBadRequest
		code = errors.CodeInvalidInput
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
		code = errors.CodeNotFound
	case core.IsIngestError(err):
		status = http.StatusUnprocessableEntity
		code = errors.CodeIngestError
	case code == errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case code == errors.CodeNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	s.writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
}
