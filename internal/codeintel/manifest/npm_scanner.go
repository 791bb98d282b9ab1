package manifest

import (
	"encoding/json"
	"fmt"
)

// NpmScanner parses npm package.json files.
type NpmScanner struct{}

// NewNpmScanner creates a new package.json scanner.
func NewNpmScanner() *NpmScanner {
	return &NpmScanner{}
}

// Name returns the scanner name.
func (s *NpmScanner) Name() string {
	return "npm"
}

// SupportedFiles returns the npm manifest names.
func (s *NpmScanner) SupportedFiles() []string {
	return []string{"package.json"}
}

// CanScan checks if the file is a package.json.
func (s *NpmScanner) CanScan(path string) bool {
	return baseName(path) == "package.json"
}

// Scan parses a package.json and merges its runtime, dev and peer groups.
func (s *NpmScanner) Scan(path string, content []byte) (*Manifest, error) {
	var pkg packageJSON
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	result := &Manifest{
		SourcePath: path,
		Ecosystem:  EcosystemNpm,
		Scripts:    pkg.Scripts,
	}

	groups := []struct {
		deps map[string]string
		dev  bool
	}{
		{pkg.Dependencies, false},
		{pkg.DevDependencies, true},
		{pkg.PeerDependencies, false},
	}
	for _, g := range groups {
		group := make([]Dependency, 0, len(g.deps))
		for name, version := range g.deps {
			group = append(group, Dependency{Name: name, Version: version, Dev: g.dev})
		}
		sortDeps(group)
		result.Dependencies = append(result.Dependencies, group...)
	}

	return result, nil
}

// packageJSON represents the fields of package.json the analyzer reads.
type packageJSON struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Scripts          map[string]string `json:"scripts"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}
