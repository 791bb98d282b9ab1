package analyzer

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/josephgoksu/RepoWing/internal/source"
)

// fingerprintNamespace scopes report fingerprints.
var fingerprintNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/josephgoksu/RepoWing/report"))

// AnalysisReport aggregates every classifier's output for one snapshot.
type AnalysisReport struct {
	Repo           string              `json:"repo"`
	Repository     *source.RepoDetails `json:"repository,omitempty"`
	Fingerprint    string              `json:"fingerprint"`
	ProjectType    ProjectType         `json:"projectType"`
	FileStats      FileStats           `json:"fileStats"`
	TechStack      TechStack           `json:"techStack"`
	Structure      StructureFlags      `json:"structure"`
	Features       FeatureCatalogue    `json:"features"`
	Quality        QualityReport       `json:"codeQuality"`
	Paradigm       ParadigmReport      `json:"designPatterns"`
	Architecture   ArchitectureReport  `json:"architecture"`
	DeployPlatform *string             `json:"deployPlatform"`
	Manifests      []ManifestSummary   `json:"manifests"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// IsPartial reports whether any section fell back to its empty value.
func (r *AnalysisReport) IsPartial() bool {
	return len(r.Warnings) > 0
}

// ComposeReport runs every classifier over an already fetched snapshot. A
// nil deps means the manifest section is degraded: the tech stack stays
// empty and the other classifiers see no dependencies.
func ComposeReport(repo source.RepoID, ix *Index, deps *Dependencies, details *source.RepoDetails, warnings []string) *AnalysisReport {
	if ix == nil {
		ix = BuildIndex(nil)
	}

	var stack TechStack
	if deps == nil {
		deps = MergeManifests(nil)
		stack = emptyTechStack()
	} else {
		stack = ClassifyTechStack(deps, ix)
	}

	flags := DetectStructure(ix)
	homepage := ""
	if details != nil {
		homepage = details.Homepage
	}

	report := &AnalysisReport{
		Repo:           repo.String(),
		Repository:     details,
		Fingerprint:    Fingerprint(ix, deps),
		FileStats:      ix.FileStats,
		TechStack:      stack,
		Structure:      flags,
		Features:       DetectFeatures(ix, flags),
		Quality:        ScoreQuality(deps, ix),
		Paradigm:       ClassifyParadigm(deps, ix),
		Architecture:   ClassifyArchitecture(deps, ix, flags),
		DeployPlatform: DetectDeployPlatform(ix, homepage),
		Manifests:      deps.Summaries(),
		Warnings:       append([]string(nil), warnings...),
	}
	report.ProjectType = DetectProjectType(report)
	return report
}

// Fingerprint identifies a snapshot by its paths and dependency set. Equal
// snapshots always produce the same value.
func Fingerprint(ix *Index, deps *Dependencies) string {
	names := append([]string{}, deps.Lower()...)
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(strings.Join(ix.Paths, "\n"))
	b.WriteByte(0)
	b.WriteString(strings.Join(names, "\n"))
	return uuid.NewSHA1(fingerprintNamespace, []byte(b.String())).String()
}

func emptyTechStack() TechStack {
	return TechStack{
		Frontend: []string{},
		Backend:  []string{},
		Database: []string{},
		Styling:  []string{},
		Testing:  []string{},
		DevOps:   []string{},
		Other:    []string{},
	}
}
