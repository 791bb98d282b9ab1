// Package ui renders analysis results for the terminal.
package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/memory"
)

var titleCaser = cases.Title(language.English)

// topExtensions is how many extensions the file summary lists.
const topExtensions = 5

// RenderReport writes a full analysis report.
func RenderReport(w io.Writer, report *analyzer.AnalysisReport) {
	if report == nil {
		fmt.Fprintln(w, "No analysis available.")
		return
	}

	subtitle := string(report.ProjectType)
	if report.Repository != nil && report.Repository.Description != "" {
		subtitle += " · " + report.Repository.Description
	}
	RenderPageHeader(w, report.Repo, subtitle)

	score := fmt.Sprintf("%s %s  %s",
		StyleTitle.Render("Quality"),
		GradeStyle(report.Quality.Grade).Render(string(report.Quality.Grade)),
		StyleSubtle.Render(fmt.Sprintf("%d/100", report.Quality.Score)))
	fmt.Fprintln(w, StyleScoreBox.Render(score))
	fmt.Fprintln(w)

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "%s %s\n", Icon("⚠", StyleWarning), warning)
	}
	if report.IsPartial() {
		fmt.Fprintln(w)
	}

	renderFiles(w, report.FileStats)
	renderTechStack(w, report.TechStack)
	renderQuality(w, report.Quality)
	renderFeatures(w, report.Features)
	renderDesign(w, report)
}

func section(w io.Writer, name string) {
	fmt.Fprintln(w, StyleSectionTitle.Render(name))
}

func renderFiles(w io.Writer, stats analyzer.FileStats) {
	section(w, "Files")
	fmt.Fprintf(w, "  %d files\n", stats.Total)

	type kv struct {
		key   string
		count int
	}
	exts := make([]kv, 0, len(stats.ByExtension))
	for k, v := range stats.ByExtension {
		exts = append(exts, kv{k, v})
	}
	sort.Slice(exts, func(i, j int) bool {
		if exts[i].count != exts[j].count {
			return exts[i].count > exts[j].count
		}
		return exts[i].key < exts[j].key
	})
	if len(exts) > topExtensions {
		exts = exts[:topExtensions]
	}
	parts := make([]string, 0, len(exts))
	for _, e := range exts {
		parts = append(parts, fmt.Sprintf(".%s %d", e.key, e.count))
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "  %s\n", StyleSubtle.Render(strings.Join(parts, "  ")))
	}
	fmt.Fprintln(w)
}

func renderTechStack(w io.Writer, stack analyzer.TechStack) {
	section(w, "Tech Stack")
	if stack.IsEmpty() {
		fmt.Fprintf(w, "  %s\n\n", StyleSubtle.Render("no dependencies detected"))
		return
	}
	for _, c := range analyzer.TechCategories {
		if names := stack.Category(c); len(names) > 0 {
			fmt.Fprintf(w, "  %-10s %s\n", titleCaser.String(c), strings.Join(names, ", "))
		}
	}
	fmt.Fprintln(w)
}

func renderQuality(w io.Writer, q analyzer.QualityReport) {
	section(w, "Quality Checks")
	for _, key := range analyzer.QualityChecks() {
		icon := Icon("✗", StyleError)
		if q.Details[key] {
			icon = Icon("✓", StyleSuccess)
		}
		fmt.Fprintf(w, "  %s %s\n", icon, key)
	}
	if len(q.Recommendations) > 0 {
		fmt.Fprintln(w)
		for _, r := range q.Recommendations {
			fmt.Fprintf(w, "  %s %s\n", StylePrimary.Render("→"), r)
		}
	}
	fmt.Fprintln(w)
}

func renderFeatures(w io.Writer, f analyzer.FeatureCatalogue) {
	section(w, "Features")
	if len(f.Detected) > 0 {
		fmt.Fprintf(w, "  %s %s\n", StyleSuccess.Render("detected"), strings.Join(f.Detected, ", "))
	}
	if len(f.Missing) > 0 {
		fmt.Fprintf(w, "  %s  %s\n", StyleWarning.Render("missing"), strings.Join(f.Missing, ", "))
	}
	for _, s := range f.Suggestions {
		fmt.Fprintf(w, "  %s %s\n", StylePrimary.Render("→"), s)
	}
	fmt.Fprintln(w)
}

func renderDesign(w io.Writer, report *analyzer.AnalysisReport) {
	section(w, "Design")
	fmt.Fprintf(w, "  Paradigm      %s\n", report.Paradigm.Primary)
	if len(report.Paradigm.Patterns) > 0 {
		fmt.Fprintf(w, "  Patterns      %s\n", strings.Join(report.Paradigm.Patterns, ", "))
	}
	fmt.Fprintf(w, "  Architecture  %s\n", report.Architecture.Style)
	if len(report.Architecture.Layers) > 0 {
		fmt.Fprintf(w, "  Layers        %s\n", strings.Join(report.Architecture.Layers, ", "))
	}
	if report.DeployPlatform != nil {
		fmt.Fprintf(w, "  Deploy        %s\n", *report.DeployPlatform)
	}
	if len(report.Manifests) > 0 {
		paths := make([]string, 0, len(report.Manifests))
		for _, m := range report.Manifests {
			paths = append(paths, m.SourcePath)
		}
		fmt.Fprintf(w, "  Manifests     %s\n", strings.Join(paths, ", "))
	}
}

// RenderComparison writes a table per phase.
func RenderComparison(w io.Writer, repo string, phases []analyzer.PhaseMatch) {
	RenderPageHeader(w, repo, "task comparison")
	if len(phases) == 0 {
		fmt.Fprintln(w, "No phases to compare.")
		return
	}

	for _, p := range phases {
		s := p.Summary
		section(w, p.Title)
		fmt.Fprintf(w, "  %s\n", StyleSubtle.Render(fmt.Sprintf(
			"avg %d%%  done %d  in progress %d  not started %d", s.AverageScore, s.LikelyDone, s.InProgress, s.NotStarted)))

		table := &Table{Headers: []string{"ID", "Task", "Score", "Status", "Evidence"}, MaxWidth: 48}
		for _, t := range p.Tasks {
			table.Rows = append(table.Rows, []string{
				t.TaskID,
				t.Title,
				strconv.Itoa(t.MatchScore) + "%",
				string(t.Status),
				evidenceSummary(t.CategoryEvidence),
			})
		}
		fmt.Fprint(w, table.Render())
		fmt.Fprintln(w)
	}
}

func evidenceSummary(evidence []analyzer.CategoryEvidence) string {
	parts := make([]string, 0, len(evidence))
	for _, ev := range evidence {
		parts = append(parts, fmt.Sprintf("%s (%d)", ev.Category, len(ev.Files)))
	}
	return strings.Join(parts, ", ")
}

// RenderHistory writes saved reports newest first.
func RenderHistory(w io.Writer, records []memory.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No saved reports. Run 'repowing analyze --save' first.")
		return
	}

	table := &Table{Headers: []string{"ID", "Repo", "Type", "Score", "Grade", "Saved"}}
	for _, r := range records {
		repo := r.Repo
		if r.Partial {
			repo += " *"
		}
		table.Rows = append(table.Rows, []string{
			TruncateID(r.ID),
			repo,
			string(r.ProjectType),
			strconv.Itoa(r.Score),
			string(r.Grade),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprint(w, table.Render())
}

// RenderProjectType writes the one-line classification.
func RenderProjectType(w io.Writer, repo string, pt analyzer.ProjectType) {
	fmt.Fprintf(w, "%s %s\n", StyleTitle.Render(repo), StylePrimary.Render(string(pt)))
}

// RenderDelta writes how the score changed between two runs of the same checkout.
func RenderDelta(w io.Writer, prev, cur *analyzer.AnalysisReport) {
	if cur == nil {
		return
	}
	if prev == nil {
		fmt.Fprintf(w, "%s %s %d/100 (%s)\n", Icon("●", StylePrimary), cur.Repo, cur.Quality.Score, cur.Quality.Grade)
		return
	}

	diff := cur.Quality.Score - prev.Quality.Score
	var change string
	switch {
	case diff > 0:
		change = StyleSuccess.Render(fmt.Sprintf("+%d", diff))
	case diff < 0:
		change = StyleError.Render(strconv.Itoa(diff))
	default:
		change = StyleSubtle.Render("±0")
	}
	fmt.Fprintf(w, "%s %s %d/100 (%s → %s) %s\n", Icon("●", StylePrimary), cur.Repo,
		cur.Quality.Score, prev.Quality.Grade, cur.Quality.Grade, change)

	if prev.Fingerprint != cur.Fingerprint && prev.FileStats.Total != cur.FileStats.Total {
		fmt.Fprintf(w, "  %s\n", StyleSubtle.Render(fmt.Sprintf("files %d → %d", prev.FileStats.Total, cur.FileStats.Total)))
	}
}
