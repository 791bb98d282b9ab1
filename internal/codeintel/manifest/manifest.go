// Package manifest provides scanners for dependency manifests from various
// package managers (npm, Go modules, Python, Rust). Scanners work on fetched
// bytes so they can serve both remote snapshots and local checkouts.
package manifest

import (
	"path"
	"sort"
)

// Ecosystem names reported by the scanners.
const (
	EcosystemNpm   = "npm"
	EcosystemGo    = "go"
	EcosystemPyPI  = "pypi"
	EcosystemCrate = "crates.io"
)

// Dependency represents one declared dependency.
type Dependency struct {
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Dev      bool   `json:"dev,omitempty"`      // development-only group
	Indirect bool   `json:"indirect,omitempty"` // go.mod "// indirect"
}

// Manifest is the parsed content of one dependency file.
type Manifest struct {
	SourcePath   string            `json:"sourcePath"`
	Ecosystem    string            `json:"ecosystem"`
	Dependencies []Dependency      `json:"dependencies"`
	Scripts      map[string]string `json:"scripts,omitempty"`
}

// Names returns the dependency names in declaration order, de-duplicated.
func (m *Manifest) Names() []string {
	seen := make(map[string]bool, len(m.Dependencies))
	names := make([]string, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		if d.Name == "" || seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		names = append(names, d.Name)
	}
	return names
}

// ManifestScanner defines the interface for manifest parsers.
type ManifestScanner interface {
	// Name returns the scanner name (e.g., "npm", "gomod", "cargo")
	Name() string

	// SupportedFiles returns the base names this scanner handles
	SupportedFiles() []string

	// CanScan checks if the scanner can handle the given path
	CanScan(path string) bool

	// Scan parses content read from path. A malformed file is an error.
	Scan(path string, content []byte) (*Manifest, error)
}

// AllScanners returns all available manifest scanners.
func AllScanners() []ManifestScanner {
	return []ManifestScanner{
		NewNpmScanner(),
		NewGoModScanner(),
		NewPythonScanner(),
		NewCargoScanner(),
	}
}

// ScannerFor returns the first scanner able to parse path, or nil.
func ScannerFor(p string) ManifestScanner {
	for _, s := range AllScanners() {
		if s.CanScan(p) {
			return s
		}
	}
	return nil
}

// baseName works on slash-separated repository paths.
func baseName(p string) string {
	return path.Base(p)
}

// sortDeps orders dependencies by name; map-sourced groups have no stable order.
func sortDeps(deps []Dependency) {
	sort.SliceStable(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
}
