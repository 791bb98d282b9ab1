package analyzer

import "strings"

// ProjectType is the coarse kind of application a report describes.
type ProjectType string

const (
	ProjectMobileApp ProjectType = "mobile-app"
	ProjectFullstack ProjectType = "fullstack"
	ProjectAPI       ProjectType = "api"
	ProjectSPA       ProjectType = "spa"
	ProjectCustom    ProjectType = "custom"
)

var (
	mobileKeywords             = []string{"react-native", "expo", "ionic", "capacitor", "nativescript", "flutter"}
	fullstackFrameworkKeywords = []string{"next", "nuxt", "remix", "@sveltejs/kit", "blitz", "redwood"}
)

// projectTypeRules is evaluated top to bottom; the order is the priority.
var projectTypeRules = []struct {
	result ProjectType
	when   func(stack TechStack, flags StructureFlags) bool
}{
	{ProjectMobileApp, func(stack TechStack, _ StructureFlags) bool {
		return AnyContains(lowerAll(stack.All()), mobileKeywords)
	}},
	{ProjectFullstack, func(stack TechStack, _ StructureFlags) bool {
		return AnyContains(lowerAll(stack.Frontend), fullstackFrameworkKeywords)
	}},
	{ProjectFullstack, func(stack TechStack, flags StructureFlags) bool {
		return (len(stack.Frontend) > 0 && len(stack.Backend) > 0) || (flags.HasClient && flags.HasServer)
	}},
	{ProjectAPI, func(stack TechStack, _ StructureFlags) bool {
		return len(stack.Backend) > 0
	}},
	{ProjectSPA, func(stack TechStack, _ StructureFlags) bool {
		return len(stack.Frontend) > 0
	}},
}

// DetectProjectType classifies a composed report.
func DetectProjectType(report *AnalysisReport) ProjectType {
	if report == nil {
		return ProjectCustom
	}
	return projectTypeFor(report.TechStack, report.Structure)
}

func projectTypeFor(stack TechStack, flags StructureFlags) ProjectType {
	for _, r := range projectTypeRules {
		if r.when(stack, flags) {
			return r.result
		}
	}
	return ProjectCustom
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
