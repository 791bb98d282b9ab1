package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/source"
	"github.com/josephgoksu/RepoWing/internal/task"
)

// Engine is the subset of the analyzer the tools call.
type Engine interface {
	Analyze(ctx context.Context, repo source.RepoID) (*analyzer.AnalysisReport, error)
	CompareTasks(ctx context.Context, repo source.RepoID, phases []task.Phase) ([]analyzer.PhaseMatch, error)
}

// HandleAnalyzeRepository runs a full analysis.
func HandleAnalyzeRepository(ctx context.Context, engine Engine, params AnalyzeRepositoryParams) (*ToolResult, error) {
	repo, res := parseRepo(params.Repo)
	if res != nil {
		return res, nil
	}

	report, err := engine.Analyze(ctx, repo)
	if err != nil {
		return toolError(err)
	}
	return &ToolResult{Content: FormatAnalysis(report)}, nil
}

// HandleCompareTasks scores plan tasks against the repository tree.
func HandleCompareTasks(ctx context.Context, engine Engine, params CompareTasksParams) (*ToolResult, error) {
	repo, res := parseRepo(params.Repo)
	if res != nil {
		return res, nil
	}

	phases := params.Phases
	if len(phases) == 0 && strings.TrimSpace(params.PhasesText) != "" {
		parsed, err := task.ParsePhases([]byte(params.PhasesText))
		if err != nil {
			return &ToolResult{Error: FormatValidationError("phases_text", err.Error())}, nil
		}
		phases = parsed
	}
	if len(phases) == 0 {
		return &ToolResult{Error: FormatValidationError("phases", "at least one phase is required")}, nil
	}

	matches, err := engine.CompareTasks(ctx, repo, phases)
	if err != nil {
		return toolError(err)
	}
	return &ToolResult{Content: FormatComparison(repo.String(), matches)}, nil
}

// HandleDetectProjectType analyzes the repository and reports only its kind.
func HandleDetectProjectType(ctx context.Context, engine Engine, params DetectProjectTypeParams) (*ToolResult, error) {
	repo, res := parseRepo(params.Repo)
	if res != nil {
		return res, nil
	}

	report, err := engine.Analyze(ctx, repo)
	if err != nil {
		return toolError(err)
	}
	return &ToolResult{Content: FormatProjectType(report.Repo, analyzer.DetectProjectType(report))}, nil
}

func parseRepo(s string) (source.RepoID, *ToolResult) {
	if strings.TrimSpace(s) == "" {
		return source.RepoID{}, &ToolResult{Error: FormatValidationError("repo", "repo is required (owner/name[@ref])")}
	}
	repo, err := source.ParseRepoID(s)
	if err != nil {
		return source.RepoID{}, &ToolResult{Error: FormatValidationError("repo", err.Error())}
	}
	return repo, nil
}

// toolError turns caller mistakes into a formatted result and passes
// everything else through as a failure.
func toolError(err error) (*ToolResult, error) {
	switch {
	case errors.Is(err, source.ErrRepoNotFound), errors.Is(err, source.ErrInvalidRepoID), errors.Is(err, task.ErrInvalidPlan):
		return &ToolResult{Error: FormatError(err.Error())}, nil
	default:
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
}
