package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// PythonScanner parses Python dependency files (requirements*.txt and
// pyproject.toml).
type PythonScanner struct{}

// NewPythonScanner creates a new Python dependency scanner.
func NewPythonScanner() *PythonScanner {
	return &PythonScanner{}
}

// Name returns the scanner name.
func (s *PythonScanner) Name() string {
	return "python"
}

// SupportedFiles returns the Python dependency file names.
func (s *PythonScanner) SupportedFiles() []string {
	return []string{"requirements.txt", "requirements-*.txt", "pyproject.toml"}
}

// CanScan checks if the file is a supported Python dependency file.
func (s *PythonScanner) CanScan(path string) bool {
	base := baseName(path)
	return base == "pyproject.toml" ||
		base == "requirements.txt" ||
		strings.HasPrefix(base, "requirements-") && strings.HasSuffix(base, ".txt")
}

// Scan parses a Python dependency file.
func (s *PythonScanner) Scan(path string, content []byte) (*Manifest, error) {
	if baseName(path) == "pyproject.toml" {
		return s.scanPyproject(path, content)
	}
	return s.scanRequirementsTxt(path, content)
}

// requirementPattern captures the PEP 508 name and an optional pinned version.
var requirementPattern = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)\s*(?:\[[^\]]*\])?\s*(==|>=|<=|~=|!=|>|<)?\s*([^\s;#,]*)`)

// parseRequirement returns the normalized name and version of one requirement
// specifier, or ok=false if the line does not declare a package.
func parseRequirement(spec string) (name, version string, ok bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.HasPrefix(spec, "#") || strings.HasPrefix(spec, "-") {
		return "", "", false
	}
	match := requirementPattern.FindStringSubmatch(spec)
	if match == nil {
		return "", "", false
	}
	// PEP 503 normalization
	name = strings.ToLower(strings.ReplaceAll(match[1], "_", "-"))
	if match[2] != "" {
		version = match[3]
	}
	return name, version, true
}

func (s *PythonScanner) scanRequirementsTxt(path string, content []byte) (*Manifest, error) {
	result := &Manifest{
		SourcePath: path,
		Ecosystem:  EcosystemPyPI,
	}
	dev := strings.Contains(baseName(path), "dev") || strings.Contains(baseName(path), "test")

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		name, version, ok := parseRequirement(scanner.Text())
		if !ok {
			continue
		}
		result.Dependencies = append(result.Dependencies, Dependency{Name: name, Version: version, Dev: dev})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return result, nil
}

// pyproject covers PEP 621 metadata and the poetry tool table.
type pyproject struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
			Group           map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func (s *PythonScanner) scanPyproject(path string, content []byte) (*Manifest, error) {
	var doc pyproject
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	result := &Manifest{
		SourcePath: path,
		Ecosystem:  EcosystemPyPI,
	}
	for _, spec := range doc.Project.Dependencies {
		if name, version, ok := parseRequirement(spec); ok {
			result.Dependencies = append(result.Dependencies, Dependency{Name: name, Version: version})
		}
	}

	poetry := doc.Tool.Poetry
	result.Dependencies = append(result.Dependencies, poetryGroup(poetry.Dependencies, false)...)
	result.Dependencies = append(result.Dependencies, poetryGroup(poetry.DevDependencies, true)...)
	groups := make([]string, 0, len(poetry.Group))
	for name := range poetry.Group {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	for _, name := range groups {
		result.Dependencies = append(result.Dependencies, poetryGroup(poetry.Group[name].Dependencies, true)...)
	}
	return result, nil
}

// poetryGroup converts a poetry dependency table, dropping the interpreter
// constraint.
func poetryGroup(table map[string]any, dev bool) []Dependency {
	deps := make([]Dependency, 0, len(table))
	for name, spec := range table {
		if strings.EqualFold(name, "python") {
			continue
		}
		dep := Dependency{Name: strings.ToLower(name), Dev: dev}
		switch v := spec.(type) {
		case string:
			dep.Version = v
		case map[string]any:
			if version, ok := v["version"].(string); ok {
				dep.Version = version
			}
		}
		deps = append(deps, dep)
	}
	sortDeps(deps)
	return deps
}
