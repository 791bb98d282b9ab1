package mcp

import (
	"strings"
	"testing"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
)

func sampleReport() *analyzer.AnalysisReport {
	platform := "vercel"
	return &analyzer.AnalysisReport{
		Repo:        "octo/app",
		ProjectType: analyzer.ProjectFullstack,
		FileStats:   analyzer.FileStats{Total: 12},
		TechStack: analyzer.TechStack{
			Frontend: []string{"react"},
			Backend:  []string{"express"},
			DevOps:   []string{"docker"},
		},
		Structure: analyzer.StructureFlags{HasClient: true, HasServer: true},
		Quality: analyzer.QualityReport{
			Score:           25,
			Grade:           analyzer.GradeF,
			Details:         map[string]bool{"linting": true},
			Recommendations: []string{"Add Prettier for consistent code formatting"},
		},
		Features:       analyzer.FeatureCatalogue{Detected: []string{"Authentication"}, Missing: []string{"Testing"}},
		Paradigm:       analyzer.ParadigmReport{Primary: analyzer.ParadigmProcedural, Description: "Step by step."},
		Architecture:   analyzer.ArchitectureReport{Style: analyzer.StyleMonolith, Layers: []string{"routes"}},
		DeployPlatform: &platform,
		Manifests:      []analyzer.ManifestSummary{{SourcePath: "package.json", Ecosystem: "npm", Dependencies: 3}},
	}
}

func TestFormatAnalysis_Nil(t *testing.T) {
	if got := FormatAnalysis(nil); got != "No analysis available." {
		t.Errorf("expected 'No analysis available.', got %q", got)
	}
}

func TestFormatAnalysis(t *testing.T) {
	got := FormatAnalysis(sampleReport())

	for _, want := range []string{
		"## 📊 Repository Analysis: octo/app",
		"**Type**: fullstack | **Quality**: 25/100 (F) | **Files**: 12",
		"- **Frontend**: react",
		"- **Devops**: docker",
		"✅ client",
		"❌ tests",
		"- ✅ linting",
		"- ❌ formatting",
		"Add Prettier",
		"- **Detected**: Authentication",
		"- **Deploy**: vercel",
		"`package.json` (npm, 3 deps)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "Partial report") {
		t.Error("complete report must not be flagged partial")
	}
	if strings.Contains(got, "**Styling**") {
		t.Error("empty categories must be omitted")
	}
}

func TestFormatAnalysis_Partial(t *testing.T) {
	r := sampleReport()
	r.TechStack = analyzer.TechStack{}
	r.Warnings = []string{analyzer.WarnManifests}

	got := FormatAnalysis(r)
	if !strings.Contains(got, "Partial report: "+analyzer.WarnManifests) {
		t.Errorf("expected partial warning, got:\n%s", got)
	}
	if !strings.Contains(got, "_No dependencies detected._") {
		t.Error("expected empty tech stack note")
	}
}

func TestFormatComparison(t *testing.T) {
	phases := []analyzer.PhaseMatch{{
		PhaseID: "p1",
		Title:   "Core",
		Tasks: []analyzer.TaskMatch{
			{TaskID: "t1", Title: "Auth", MatchScore: 40, Status: analyzer.StatusInProgress,
				CategoryEvidence: []analyzer.CategoryEvidence{{Category: "authentication", Files: []string{"server/auth.js"}}}},
			{TaskID: "t2", Title: "Images", Status: analyzer.StatusNotStarted},
		},
		Summary: analyzer.PhaseSummary{Total: 2, InProgress: 1, NotStarted: 1, AverageScore: 20},
	}}

	got := FormatComparison("octo/app", phases)
	for _, want := range []string{
		"### Core (`p1`)",
		"**Average**: 20%",
		"- 🔄 **Auth** (`t1`) 40% in-progress",
		"  - authentication: server/auth.js",
		"- ⏳ **Images** (`t2`) 0% not-started",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q\n%s", want, got)
		}
	}

	if FormatComparison("octo/app", nil) != "No phases to compare." {
		t.Error("expected empty message for no phases")
	}
}

func TestFormatProjectType(t *testing.T) {
	got := FormatProjectType("octo/app", analyzer.ProjectAPI)
	if !strings.Contains(got, "**octo/app**: api") {
		t.Errorf("unexpected output %q", got)
	}
}
