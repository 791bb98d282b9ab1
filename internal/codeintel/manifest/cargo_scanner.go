package manifest

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// CargoScanner parses Rust Cargo.toml manifests.
type CargoScanner struct{}

// NewCargoScanner creates a new Cargo scanner.
func NewCargoScanner() *CargoScanner {
	return &CargoScanner{}
}

// Name returns the scanner name.
func (s *CargoScanner) Name() string {
	return "cargo"
}

// SupportedFiles returns the Cargo file names.
func (s *CargoScanner) SupportedFiles() []string {
	return []string{"Cargo.toml"}
}

// CanScan checks if the file is a Cargo manifest. Lockfiles are not read:
// they list transitive crates.
func (s *CargoScanner) CanScan(path string) bool {
	return baseName(path) == "Cargo.toml"
}

// Scan parses a Cargo file and extracts dependencies.
func (s *CargoScanner) Scan(path string, content []byte) (*Manifest, error) {
	var doc cargoToml
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	result := &Manifest{
		SourcePath: path,
		Ecosystem:  EcosystemCrate,
	}
	result.Dependencies = append(result.Dependencies, cargoGroup(doc.Dependencies, false)...)
	result.Dependencies = append(result.Dependencies, cargoGroup(doc.DevDependencies, true)...)
	return result, nil
}

// cargoGroup converts a dependency table; entries are either a version string
// or an inline table with a version key.
func cargoGroup(table map[string]any, dev bool) []Dependency {
	deps := make([]Dependency, 0, len(table))
	for name, spec := range table {
		dep := Dependency{Name: name, Dev: dev}
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

type cargoToml struct {
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}
