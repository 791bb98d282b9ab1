package server

import (
	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/memory"
	"github.com/josephgoksu/RepoWing/internal/task"
)

// AnalyzeRequest is the payload for /api/analyze
type AnalyzeRequest struct {
	Repo string `json:"repo" validate:"required"`
	Save *bool  `json:"save,omitempty"` // defaults to true when a store is configured
}

// AnalyzeResponse is the response for /api/analyze
type AnalyzeResponse struct {
	ReportID string                   `json:"reportId,omitempty"`
	Report   *analyzer.AnalysisReport `json:"report"`
}

// CompareRequest is the payload for /api/compare
type CompareRequest struct {
	Repo   string       `json:"repo" validate:"required"`
	Phases []task.Phase `json:"phases" validate:"required"`
}

// CompareResponse is the response for /api/compare
type CompareResponse struct {
	Repo   string                `json:"repo"`
	Phases []analyzer.PhaseMatch `json:"phases"`
}

// ProjectTypeRequest is the payload for /api/project-type. A supplied report
// is classified as-is; otherwise repo is analyzed first.
type ProjectTypeRequest struct {
	Repo   string                   `json:"repo" validate:"required_without=Report"`
	Report *analyzer.AnalysisReport `json:"report,omitempty"`
}

// ProjectTypeResponse is the response for /api/project-type
type ProjectTypeResponse struct {
	Repo        string               `json:"repo,omitempty"`
	ProjectType analyzer.ProjectType `json:"projectType"`
}

// ReportsResponse is the response for /api/reports
type ReportsResponse struct {
	Reports []memory.Record `json:"reports"`
}

// HealthResponse is the response for /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	History bool   `json:"history"`
}
