package mcp

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
)

var title = cases.Title(language.English)

// FormatAnalysis converts an AnalysisReport into token-efficient Markdown.
// Structure: Header -> Tech Stack -> Structure -> Quality -> Features -> Design -> Manifests
func FormatAnalysis(report *analyzer.AnalysisReport) string {
	if report == nil {
		return "No analysis available."
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## 📊 Repository Analysis: %s\n", report.Repo))
	sb.WriteString(fmt.Sprintf("**Type**: %s | **Quality**: %d/100 (%s) | **Files**: %d\n",
		report.ProjectType, report.Quality.Score, report.Quality.Grade, report.FileStats.Total))
	if report.Repository != nil && report.Repository.Description != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", report.Repository.Description))
	}
	if report.IsPartial() {
		sb.WriteString(fmt.Sprintf("\n⚠️ Partial report: %s\n", strings.Join(report.Warnings, "; ")))
	}
	sb.WriteString("\n")

	sb.WriteString("### Tech Stack\n")
	if report.TechStack.IsEmpty() {
		sb.WriteString("_No dependencies detected._\n")
	}
	for _, category := range analyzer.TechCategories {
		if names := report.TechStack.Category(category); len(names) > 0 {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", title.String(category), strings.Join(names, ", ")))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("### Structure\n")
	sb.WriteString(formatFlags(report.Structure))
	sb.WriteString("\n\n")

	sb.WriteString("### Quality Checks\n")
	for _, key := range analyzer.QualityChecks() {
		sb.WriteString(fmt.Sprintf("- %s %s\n", checkIcon(report.Quality.Details[key]), key))
	}
	if len(report.Quality.Recommendations) > 0 {
		sb.WriteString("\n**Recommendations**\n")
		for _, r := range report.Quality.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", r))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("### Features\n")
	writeList(&sb, "Detected", report.Features.Detected)
	writeList(&sb, "Missing", report.Features.Missing)
	writeList(&sb, "Suggestions", report.Features.Suggestions)
	sb.WriteString("\n")

	sb.WriteString("### Design\n")
	sb.WriteString(fmt.Sprintf("- **Paradigm**: %s. %s\n", report.Paradigm.Primary, report.Paradigm.Description))
	if len(report.Paradigm.Patterns) > 0 {
		sb.WriteString(fmt.Sprintf("- **Patterns**: %s\n", strings.Join(report.Paradigm.Patterns, ", ")))
	}
	sb.WriteString(fmt.Sprintf("- **Architecture**: %s. %s\n", report.Architecture.Style, report.Architecture.Description))
	if len(report.Architecture.Layers) > 0 {
		sb.WriteString(fmt.Sprintf("- **Layers**: %s\n", strings.Join(report.Architecture.Layers, ", ")))
	}
	if report.DeployPlatform != nil {
		sb.WriteString(fmt.Sprintf("- **Deploy**: %s\n", *report.DeployPlatform))
	}

	if len(report.Manifests) > 0 {
		sb.WriteString("\n### Manifests\n")
		for _, m := range report.Manifests {
			sb.WriteString(fmt.Sprintf("- `%s` (%s, %d deps)\n", m.SourcePath, m.Ecosystem, m.Dependencies))
		}
	}

	return strings.TrimSpace(sb.String())
}

// FormatComparison renders per-phase task evidence.
func FormatComparison(repo string, phases []analyzer.PhaseMatch) string {
	if len(phases) == 0 {
		return "No phases to compare."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## 🧭 Task Comparison: %s\n\n", repo))

	for _, p := range phases {
		s := p.Summary
		sb.WriteString(fmt.Sprintf("### %s (`%s`)\n", p.Title, p.PhaseID))
		sb.WriteString(fmt.Sprintf("**Average**: %d%% | **Likely done**: %d | **In progress**: %d | **Not started**: %d\n",
			s.AverageScore, s.LikelyDone, s.InProgress, s.NotStarted))

		for _, t := range p.Tasks {
			sb.WriteString(fmt.Sprintf("- %s **%s** (`%s`) %d%% %s\n", statusIcon(t.Status), t.Title, t.TaskID, t.MatchScore, t.Status))
			for _, ev := range t.CategoryEvidence {
				sb.WriteString(fmt.Sprintf("  - %s: %s\n", ev.Category, strings.Join(ev.Files, ", ")))
			}
		}
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}

// FormatProjectType renders a one-line classification.
func FormatProjectType(repo string, pt analyzer.ProjectType) string {
	return fmt.Sprintf("## 🏷️ Project Type\n\n**%s**: %s", repo, pt)
}

// FormatError returns a Markdown error block.
func FormatError(message string) string {
	return fmt.Sprintf("## ❌ Error\n\n**Details**: %s", message)
}

// FormatValidationError returns a Markdown error for validation failures.
func FormatValidationError(field, message string) string {
	return fmt.Sprintf("## ❌ Validation Error\n\n**Field**: `%s`\n**Details**: %s", field, message)
}

func formatFlags(f analyzer.StructureFlags) string {
	flags := []struct {
		name string
		on   bool
	}{
		{"client", f.HasClient},
		{"server", f.HasServer},
		{"src", f.HasSrc},
		{"tests", f.HasTests},
		{"docker", f.HasDocker},
		{"ci/cd", f.HasCICD},
		{"readme", f.HasReadme},
		{"env example", f.HasEnvExample},
		{"license", f.HasLicense},
		{"contributing", f.HasContributing},
	}
	parts := make([]string, 0, len(flags))
	for _, fl := range flags {
		parts = append(parts, fmt.Sprintf("%s %s", checkIcon(fl.on), fl.name))
	}
	return strings.Join(parts, " | ")
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("- **%s**: %s\n", label, strings.Join(items, ", ")))
}

func checkIcon(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func statusIcon(status analyzer.TaskStatus) string {
	switch status {
	case analyzer.StatusLikelyDone:
		return "✅"
	case analyzer.StatusInProgress:
		return "🔄"
	default:
		return "⏳"
	}
}
