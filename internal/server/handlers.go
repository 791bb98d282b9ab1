package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/memory"
	"github.com/josephgoksu/RepoWing/internal/source"
	"github.com/josephgoksu/RepoWing/internal/task"
)

const maxReportsLimit = 200

// handleAnalyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	repo, err := source.ParseRepoID(req.Repo)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.engine.Analyze(r.Context(), repo)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := AnalyzeResponse{Report: report}
	if s.store != nil && (req.Save == nil || *req.Save) {
		rec, err := s.store.Save(report)
		if err != nil {
			s.logger.Warn("save report failed", "repo", report.Repo, "error", err)
		} else {
			resp.ReportID = rec.ID
		}
	}

	writeAPIJSON(w, resp)
}

// handleCompare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.decode(w, r, &req) {
		return
	}
	repo, err := source.ParseRepoID(req.Repo)
	if err != nil {
		s.writeError(w, err)
		return
	}

	phases, err := s.engine.CompareTasks(r.Context(), repo, req.Phases)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeAPIJSON(w, CompareResponse{Repo: repo.String(), Phases: phases})
}

// handleProjectType
func (s *Server) handleProjectType(w http.ResponseWriter, r *http.Request) {
	var req ProjectTypeRequest
	if !s.decode(w, r, &req) {
		return
	}

	if req.Report != nil {
		writeAPIJSON(w, ProjectTypeResponse{Repo: req.Report.Repo, ProjectType: analyzer.DetectProjectType(req.Report)})
		return
	}

	repo, err := source.ParseRepoID(req.Repo)
	if err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.engine.Analyze(r.Context(), repo)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeAPIJSON(w, ProjectTypeResponse{Repo: report.Repo, ProjectType: analyzer.DetectProjectType(report)})
}

// handleListReports
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "report history disabled", http.StatusServiceUnavailable)
		return
	}

	limit := memory.DefaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 || l > maxReportsLimit {
			http.Error(w, "limit must be between 1 and 200", http.StatusBadRequest)
			return
		}
		limit = l
	}

	records, err := s.store.List(r.URL.Query().Get("repo"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeAPIJSON(w, ReportsResponse{Reports: records})
}

// handleGetReport
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "report history disabled", http.StatusServiceUnavailable)
		return
	}

	rec, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeAPIJSON(w, rec)
}

// handleHealth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, HealthResponse{Status: "ok", Version: s.version, History: s.store != nil})
}

// decode reads and validates a JSON body. It writes the error response and
// returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps engine errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, source.ErrInvalidRepoID), errors.Is(err, task.ErrInvalidPlan):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, source.ErrRepoNotFound), errors.Is(err, memory.ErrRecordNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		s.logger.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeAPIJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
