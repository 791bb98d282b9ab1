package analyzer

import (
	"math"
	"strings"

	"github.com/josephgoksu/RepoWing/internal/task"
)

// TaskStatus is the estimated completion of a task.
type TaskStatus string

const (
	StatusLikelyDone TaskStatus = "likely-done"
	StatusInProgress TaskStatus = "in-progress"
	StatusNotStarted TaskStatus = "not-started"
)

// Task matching constants.
const (
	maxEvidenceFiles    = 5
	pointsPerEvidence   = 20
	maxCategoryPoints   = 100
	likelyDoneThreshold = 60
	inProgressThreshold = 30
)

// CategoryEvidence lists repository paths supporting one matched category.
type CategoryEvidence struct {
	Category string   `json:"category"`
	Files    []string `json:"files"`
}

// TaskMatch is the heuristic completion estimate of one task.
type TaskMatch struct {
	TaskID           string             `json:"taskId"`
	Title            string             `json:"title"`
	IsComplete       bool               `json:"isComplete"`
	CategoryEvidence []CategoryEvidence `json:"categoryEvidence"`
	MatchScore       int                `json:"matchScore"`
	Status           TaskStatus         `json:"status"`
}

// PhaseSummary counts task statuses within a phase.
type PhaseSummary struct {
	Total        int `json:"total"`
	LikelyDone   int `json:"likelyDone"`
	InProgress   int `json:"inProgress"`
	NotStarted   int `json:"notStarted"`
	AverageScore int `json:"averageScore"`
}

// PhaseMatch groups task matches by phase.
type PhaseMatch struct {
	PhaseID string       `json:"phaseId"`
	Title   string       `json:"title"`
	Tasks   []TaskMatch  `json:"tasks"`
	Summary PhaseSummary `json:"summary"`
}

// taskCategories is the task-title dictionary. The same keywords select
// evidence paths.
var taskCategories = []Rule[string]{
	{Result: "authentication", Keywords: []string{"auth", "login", "signup", "sign up", "register", "password", "jwt", "oauth", "session"}},
	{Result: "database", Keywords: []string{"database", "db", "schema", "model", "migration", "prisma", "mongo", "sql"}},
	{Result: "api", Keywords: []string{"api", "endpoint", "route", "rest", "graphql", "controller"}},
	{Result: "frontend", Keywords: []string{"frontend", "ui", "page", "component", "view", "screen", "layout"}},
	{Result: "styling", Keywords: []string{"style", "css", "theme", "tailwind", "design"}},
	{Result: "testing", Keywords: []string{"test", "spec", "coverage"}},
	{Result: "deployment", Keywords: []string{"deploy", "docker", "ci/cd", "pipeline", "kubernetes", "hosting"}},
	{Result: "documentation", Keywords: []string{"doc", "readme", "guide"}},
	{Result: "security", Keywords: []string{"security", "encrypt", "csrf", "xss", "permission", "role"}},
	{Result: "error-handling", Keywords: []string{"error", "exception"}},
	{Result: "state-management", Keywords: []string{"state", "redux", "store", "context"}},
	{Result: "real-time", Keywords: []string{"socket", "real-time", "realtime", "live"}},
	{Result: "file-upload", Keywords: []string{"upload", "file", "attachment", "multer"}},
	{Result: "email", Keywords: []string{"email", "mail", "smtp"}},
	{Result: "payment", Keywords: []string{"payment", "stripe", "billing", "checkout", "subscription"}},
	{Result: "search", Keywords: []string{"search", "filter", "algolia"}},
	{Result: "notification", Keywords: []string{"notification", "notify", "push", "alert"}},
	{Result: "caching", Keywords: []string{"cache", "redis"}},
	{Result: "logging", Keywords: []string{"logging", "logger", "monitor"}},
	{Result: "validation", Keywords: []string{"validat", "sanitiz"}},
}

// MatchTask scores one task title against the index.
//
// Each category named by the title contributes min(evidence*20, 100) and the
// sum is clamped to [0, 100], so two weak categories can reach the same cap
// as one strong category.
func MatchTask(ix *Index, st task.SubTask) TaskMatch {
	title := strings.ToLower(st.Title)
	match := TaskMatch{
		TaskID:           st.ID,
		Title:            st.Title,
		IsComplete:       st.IsComplete,
		CategoryEvidence: []CategoryEvidence{},
	}

	score := 0
	for _, cat := range taskCategories {
		if !containsAny(title, cat.Keywords) {
			continue
		}
		files := ix.Matching(cat.Keywords, maxEvidenceFiles)
		if len(files) == 0 {
			continue
		}
		match.CategoryEvidence = append(match.CategoryEvidence, CategoryEvidence{
			Category: cat.Result,
			Files:    files,
		})
		score += min(len(files)*pointsPerEvidence, maxCategoryPoints)
	}

	match.MatchScore = clamp(score, 0, 100)
	match.Status = StatusFor(match.MatchScore)
	return match
}

// StatusFor buckets a match score.
func StatusFor(score int) TaskStatus {
	switch {
	case score >= likelyDoneThreshold:
		return StatusLikelyDone
	case score >= inProgressThreshold:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// MatchPhases scores every sub-task of every phase.
func MatchPhases(ix *Index, phases []task.Phase) []PhaseMatch {
	out := make([]PhaseMatch, 0, len(phases))
	for _, p := range phases {
		pm := PhaseMatch{PhaseID: p.ID, Title: p.Title, Tasks: make([]TaskMatch, 0, len(p.SubTasks))}
		total := 0
		for _, st := range p.SubTasks {
			m := MatchTask(ix, st)
			pm.Tasks = append(pm.Tasks, m)
			total += m.MatchScore
			switch m.Status {
			case StatusLikelyDone:
				pm.Summary.LikelyDone++
			case StatusInProgress:
				pm.Summary.InProgress++
			default:
				pm.Summary.NotStarted++
			}
		}
		pm.Summary.Total = len(pm.Tasks)
		if pm.Summary.Total > 0 {
			pm.Summary.AverageScore = int(math.Round(float64(total) / float64(pm.Summary.Total)))
		}
		out = append(out, pm)
	}
	return out
}
