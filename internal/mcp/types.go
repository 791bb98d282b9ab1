// Package mcp provides tool parameters, handlers and Markdown presenters for
// the MCP server.
package mcp

import "github.com/josephgoksu/RepoWing/internal/task"

// Tool names registered by the MCP server.
const (
	ToolAnalyzeRepository = "analyze_repository"
	ToolCompareTasks      = "compare_tasks"
	ToolDetectProjectType = "detect_project_type"
)

// AnalyzeRepositoryParams defines the parameters for the analyze_repository tool.
type AnalyzeRepositoryParams struct {
	// Repo is "owner/name" or "owner/name@ref". Required.
	Repo string `json:"repo"`
}

// CompareTasksParams defines the parameters for the compare_tasks tool.
type CompareTasksParams struct {
	// Repo is "owner/name" or "owner/name@ref". Required.
	Repo string `json:"repo"`

	// Phases is the structured plan to compare.
	Phases []task.Phase `json:"phases,omitempty"`

	// PhasesText is a YAML or JSON plan, used when Phases is empty.
	PhasesText string `json:"phases_text,omitempty"`
}

// DetectProjectTypeParams defines the parameters for the detect_project_type tool.
type DetectProjectTypeParams struct {
	Repo string `json:"repo"`
}

// ToolResult is the outcome of a tool handler. Error is user-facing; a
// non-nil error from a handler means the call itself failed.
type ToolResult struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}
