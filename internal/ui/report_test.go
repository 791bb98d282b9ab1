package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/memory"
)

func sampleReport() *analyzer.AnalysisReport {
	return &analyzer.AnalysisReport{
		Repo:        "octo/app",
		Fingerprint: "fp1",
		ProjectType: analyzer.ProjectAPI,
		FileStats: analyzer.FileStats{
			Total:       9,
			ByExtension: map[string]int{"js": 5, "md": 2, "json": 1, "yml": 1},
		},
		TechStack: analyzer.TechStack{Backend: []string{"express"}, DevOps: []string{"docker"}},
		Quality: analyzer.QualityReport{
			Score:           30,
			Grade:           analyzer.GradeF,
			Details:         map[string]bool{"linting": true},
			Recommendations: []string{"Add Prettier for consistent code formatting"},
		},
		Features:     analyzer.FeatureCatalogue{Missing: []string{"Testing"}},
		Paradigm:     analyzer.ParadigmReport{Primary: analyzer.ParadigmFunctional},
		Architecture: analyzer.ArchitectureReport{Style: analyzer.StyleMonolith},
	}
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	RenderReport(&buf, sampleReport())
	out := buf.String()

	for _, want := range []string{
		"octo/app",
		"30/100",
		"9 files",
		".js 5",
		"Backend",
		"express",
		"Devops",
		"✓ linting",
		"✗ formatting",
		"Add Prettier",
		"missing",
		"functional",
		"monolith",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Frontend")
}

func TestRenderReport_Partial(t *testing.T) {
	r := sampleReport()
	r.TechStack = analyzer.TechStack{}
	r.Warnings = []string{analyzer.WarnManifests}

	var buf bytes.Buffer
	RenderReport(&buf, r)

	assert.Contains(t, buf.String(), analyzer.WarnManifests)
	assert.Contains(t, buf.String(), "no dependencies detected")
}

func TestRenderComparison(t *testing.T) {
	phases := []analyzer.PhaseMatch{{
		PhaseID: "p1",
		Title:   "Core",
		Tasks: []analyzer.TaskMatch{{
			TaskID: "t1", Title: "Login", MatchScore: 40, Status: analyzer.StatusInProgress,
			CategoryEvidence: []analyzer.CategoryEvidence{{Category: "authentication", Files: []string{"a", "b"}}},
		}},
		Summary: analyzer.PhaseSummary{Total: 1, InProgress: 1, AverageScore: 40},
	}}

	var buf bytes.Buffer
	RenderComparison(&buf, "octo/app", phases)
	out := buf.String()

	assert.Contains(t, out, "Core")
	assert.Contains(t, out, "avg 40%")
	assert.Contains(t, out, "Login")
	assert.Contains(t, out, "in-progress")
	assert.Contains(t, out, "authentication (2)")
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	RenderHistory(&buf, nil)
	assert.Contains(t, buf.String(), "No saved reports")

	buf.Reset()
	RenderHistory(&buf, []memory.Record{{
		ID: "0b8f3c1e-5d2a", Repo: "octo/app", ProjectType: analyzer.ProjectSPA,
		Score: 55, Grade: analyzer.GradeD, Partial: true, CreatedAt: time.Now(),
	}})
	out := buf.String()
	assert.Contains(t, out, "0b8f3c1e")
	assert.Contains(t, out, "octo/app *")
	assert.Contains(t, out, "spa")
}

func TestRenderDelta(t *testing.T) {
	prev := sampleReport()
	cur := sampleReport()
	cur.Quality.Score = 45
	cur.Quality.Grade = analyzer.GradeF
	cur.Fingerprint = "fp2"
	cur.FileStats.Total = 11

	var buf bytes.Buffer
	RenderDelta(&buf, prev, cur)
	out := buf.String()
	assert.Contains(t, out, "45/100")
	assert.Contains(t, out, "+15")
	assert.Contains(t, out, "files 9 → 11")

	buf.Reset()
	RenderDelta(&buf, nil, cur)
	assert.True(t, strings.HasSuffix(buf.String(), "45/100 (F)\n"))

	buf.Reset()
	RenderDelta(&buf, cur, cur)
	assert.Contains(t, buf.String(), "±0")
}

func TestWrapText(t *testing.T) {
	got := WrapText("the quick brown fox jumps", 10)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}
	assert.Equal(t, "short", WrapText("short", 10))
	assert.Equal(t, "as is", WrapText("as is", 0))
}
