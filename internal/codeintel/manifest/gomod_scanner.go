package manifest

import (
	"fmt"

	"golang.org/x/mod/modfile"
)

// GoModScanner parses go.mod files.
type GoModScanner struct{}

// NewGoModScanner creates a new go.mod scanner.
func NewGoModScanner() *GoModScanner {
	return &GoModScanner{}
}

// Name returns the scanner name.
func (s *GoModScanner) Name() string {
	return "gomod"
}

// SupportedFiles returns the Go module manifest names.
func (s *GoModScanner) SupportedFiles() []string {
	return []string{"go.mod"}
}

// CanScan checks if the file is a go.mod.
func (s *GoModScanner) CanScan(path string) bool {
	return baseName(path) == "go.mod"
}

// Scan parses a go.mod and lists its require directives.
func (s *GoModScanner) Scan(path string, content []byte) (*Manifest, error) {
	modFile, err := modfile.Parse(path, content, nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	result := &Manifest{
		SourcePath: path,
		Ecosystem:  EcosystemGo,
	}
	for _, req := range modFile.Require {
		result.Dependencies = append(result.Dependencies, Dependency{
			Name:     req.Mod.Path,
			Version:  req.Mod.Version,
			Indirect: req.Indirect,
		})
	}
	return result, nil
}
