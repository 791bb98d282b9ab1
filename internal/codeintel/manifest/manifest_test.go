package manifest

import (
	"strings"
	"testing"
)

func findDep(deps []Dependency, name string) *Dependency {
	for i := range deps {
		if deps[i].Name == name {
			return &deps[i]
		}
	}
	return nil
}

// ============================================================================
// NPM Scanner Tests
// ============================================================================

func TestNpmScanner_CanScan(t *testing.T) {
	s := NewNpmScanner()

	tests := []struct {
		path string
		want bool
	}{
		{"package.json", true},
		{"client/package.json", true},
		{"package-lock.json", false},
		{"yarn.lock", false},
		{"Cargo.toml", false},
	}

	for _, tt := range tests {
		if got := s.CanScan(tt.path); got != tt.want {
			t.Errorf("CanScan(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNpmScanner_Scan(t *testing.T) {
	content := `{
  "name": "web",
  "scripts": {"lint": "eslint .", "build": "vite build"},
  "dependencies": {"react": "^18.2.0", "express": "^4.18.0"},
  "devDependencies": {"jest": "^29.0.0"},
  "peerDependencies": {"react-dom": "^18.0.0"}
}`

	result, err := NewNpmScanner().Scan("package.json", []byte(content))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.Ecosystem != EcosystemNpm {
		t.Errorf("Ecosystem = %q, want %q", result.Ecosystem, EcosystemNpm)
	}
	if len(result.Dependencies) != 4 {
		t.Fatalf("got %d dependencies, want 4", len(result.Dependencies))
	}
	// runtime group sorted first, then dev, then peer
	want := []string{"express", "react", "jest", "react-dom"}
	for i, name := range result.Names() {
		if name != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, name, want[i])
		}
	}
	if jest := findDep(result.Dependencies, "jest"); jest == nil || !jest.Dev {
		t.Error("jest not found or should be dev dependency")
	}
	if result.Scripts["lint"] != "eslint ." {
		t.Errorf("Scripts[lint] = %q", result.Scripts["lint"])
	}
}

func TestNpmScanner_Malformed(t *testing.T) {
	if _, err := NewNpmScanner().Scan("package.json", []byte(`{"dependencies":`)); err == nil {
		t.Error("expected error for malformed package.json")
	}
}

// ============================================================================
// Go Module Scanner Tests
// ============================================================================

func TestGoModScanner_Scan(t *testing.T) {
	content := `module example.com/app

go 1.22

require (
	github.com/gin-gonic/gin v1.9.1
	gorm.io/gorm v1.25.0
	golang.org/x/sys v0.15.0 // indirect
)
`
	result, err := NewGoModScanner().Scan("server/go.mod", []byte(content))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.SourcePath != "server/go.mod" {
		t.Errorf("SourcePath = %q", result.SourcePath)
	}
	if len(result.Dependencies) != 3 {
		t.Fatalf("got %d dependencies, want 3", len(result.Dependencies))
	}
	gin := findDep(result.Dependencies, "github.com/gin-gonic/gin")
	if gin == nil || gin.Version != "v1.9.1" {
		t.Error("gin not found or wrong version")
	}
	if sys := findDep(result.Dependencies, "golang.org/x/sys"); sys == nil || !sys.Indirect {
		t.Error("x/sys should be indirect")
	}
}

func TestGoModScanner_Malformed(t *testing.T) {
	if _, err := NewGoModScanner().Scan("go.mod", []byte("module x\n\nrequire github.com/only/path\n")); err == nil {
		t.Error("expected error for malformed go.mod")
	}
}

// ============================================================================
// Python Scanner Tests
// ============================================================================

func TestPythonScanner_CanScan(t *testing.T) {
	s := NewPythonScanner()

	tests := []struct {
		path string
		want bool
	}{
		{"poetry.lock", false},
		{"pyproject.toml", true},
		{"requirements.txt", true},
		{"requirements-dev.txt", true},
		{"backend/requirements.txt", true},
		{"package.json", false},
		{"requirements.yaml", false},
	}

	for _, tt := range tests {
		if got := s.CanScan(tt.path); got != tt.want {
			t.Errorf("CanScan(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestPythonScanner_ScanRequirementsTxt(t *testing.T) {
	content := `# web stack
Django==4.2.0
djangorestframework>=3.14
uvicorn[standard]==0.23.0
python_dotenv
-r base.txt
-e git+https://example.com/pkg.git

`
	result, err := NewPythonScanner().Scan("requirements.txt", []byte(content))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(result.Dependencies) != 4 {
		t.Fatalf("got %d dependencies, want 4", len(result.Dependencies))
	}
	if d := findDep(result.Dependencies, "django"); d == nil || d.Version != "4.2.0" {
		t.Error("django not found or wrong version")
	}
	if d := findDep(result.Dependencies, "uvicorn"); d == nil || d.Version != "0.23.0" {
		t.Error("uvicorn extras not stripped")
	}
	if findDep(result.Dependencies, "python-dotenv") == nil {
		t.Error("python_dotenv should normalize to python-dotenv")
	}
}

func TestPythonScanner_ScanPyproject(t *testing.T) {
	content := `[project]
name = "svc"
dependencies = ["fastapi>=0.100", "SQLAlchemy==2.0.1"]

[tool.poetry.dependencies]
python = "^3.11"
pydantic = "^2.0"
celery = { version = "^5.3", extras = ["redis"] }

[tool.poetry.group.dev.dependencies]
pytest = "^7.4"
`
	result, err := NewPythonScanner().Scan("pyproject.toml", []byte(content))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if findDep(result.Dependencies, "python") != nil {
		t.Error("python interpreter constraint should be dropped")
	}
	for _, name := range []string{"fastapi", "sqlalchemy", "pydantic", "celery", "pytest"} {
		if findDep(result.Dependencies, name) == nil {
			t.Errorf("%s not found", name)
		}
	}
	if d := findDep(result.Dependencies, "celery"); d != nil && d.Version != "^5.3" {
		t.Errorf("celery.Version = %q, want ^5.3", d.Version)
	}
	if d := findDep(result.Dependencies, "pytest"); d != nil && !d.Dev {
		t.Error("pytest should be dev dependency")
	}
}

func TestPythonScanner_PoetryGroupsInNameOrder(t *testing.T) {
	content := `[tool.poetry.dependencies]
python = "^3.12"
requests = "^2.31"

[tool.poetry.group.alpha.dependencies]
zeta = "1"
[tool.poetry.group.bravo.dependencies]
yankee = "1"
[tool.poetry.group.charlie.dependencies]
xray = "1"
[tool.poetry.group.delta.dependencies]
whiskey = "1"
[tool.poetry.group.echo.dependencies]
victor = "1"
[tool.poetry.group.foxtrot.dependencies]
uniform = "1"
[tool.poetry.group.golf.dependencies]
tango = "1"
[tool.poetry.group.hotel.dependencies]
sierra = "1"
`
	want := []string{"requests", "zeta", "yankee", "xray", "whiskey", "victor", "uniform", "tango", "sierra"}

	for run := 0; run < 20; run++ {
		result, err := NewPythonScanner().Scan("pyproject.toml", []byte(content))
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		got := make([]string, 0, len(result.Dependencies))
		for _, d := range result.Dependencies {
			got = append(got, d.Name)
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("run %d: dependency order = %v, want %v", run, got, want)
		}
	}
}

// ============================================================================
// Cargo Scanner Tests
// ============================================================================

func TestCargoScanner_CanScan(t *testing.T) {
	s := NewCargoScanner()

	tests := []struct {
		path string
		want bool
	}{
		{"Cargo.toml", true},
		{"Cargo.lock", false},
		{"crates/core/Cargo.toml", true},
		{"cargo.toml", false},
		{"package.json", false},
	}

	for _, tt := range tests {
		if got := s.CanScan(tt.path); got != tt.want {
			t.Errorf("CanScan(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCargoScanner_Scan(t *testing.T) {
	content := `[package]
name = "api"
version = "0.1.0"

[dependencies]
axum = "0.7"
serde = { version = "1.0", features = ["derive"] }
sqlx = { git = "https://github.com/launchbadge/sqlx" }

[dev-dependencies]
tokio-test = "0.4"
`
	result, err := NewCargoScanner().Scan("Cargo.toml", []byte(content))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if result.Ecosystem != EcosystemCrate {
		t.Errorf("Ecosystem = %q, want %q", result.Ecosystem, EcosystemCrate)
	}
	if len(result.Dependencies) != 4 {
		t.Fatalf("got %d dependencies, want 4", len(result.Dependencies))
	}
	if d := findDep(result.Dependencies, "serde"); d == nil || d.Version != "1.0" {
		t.Error("serde not found or wrong version")
	}
	if d := findDep(result.Dependencies, "sqlx"); d == nil || d.Version != "" {
		t.Error("git dependency should have no version")
	}
	if d := findDep(result.Dependencies, "tokio-test"); d == nil || !d.Dev {
		t.Error("tokio-test should be dev dependency")
	}
}

// ============================================================================
// Scanner selection
// ============================================================================

func TestScannerFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"package.json", "npm"},
		{"server/go.mod", "gomod"},
		{"backend/requirements.txt", "python"},
		{"pyproject.toml", "python"},
		{"Cargo.toml", "cargo"},
		{"Cargo.lock", ""},
		{"poetry.lock", ""},
		{"README.md", ""},
	}

	for _, tt := range tests {
		s := ScannerFor(tt.path)
		got := ""
		if s != nil {
			got = s.Name()
		}
		if got != tt.want {
			t.Errorf("ScannerFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
