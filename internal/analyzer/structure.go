package analyzer

// Policy thresholds for the missing-feature table.
const (
	MinFilesForTests        = 10
	MinFilesForContributing = 50
)

// StructureFlags are boolean layout signals.
type StructureFlags struct {
	HasClient       bool `json:"hasClient"`
	HasServer       bool `json:"hasServer"`
	HasSrc          bool `json:"hasSrc"`
	HasTests        bool `json:"hasTests"`
	HasDocker       bool `json:"hasDocker"`
	HasCICD         bool `json:"hasCICD"`
	HasReadme       bool `json:"hasReadme"`
	HasEnvExample   bool `json:"hasEnvExample"`
	HasLicense      bool `json:"hasLicense"`
	HasContributing bool `json:"hasContributing"`
}

// FeatureCatalogue lists detected features plus what looks absent.
type FeatureCatalogue struct {
	Detected    []string `json:"detected"`
	Missing     []string `json:"missing"`
	Suggestions []string `json:"suggestions"`
}

var (
	clientDirs = []string{"client", "frontend", "web", "ui"}
	serverDirs = []string{"server", "backend", "api"}

	testKeywords   = []string{"test", "spec", "__tests__"}
	dockerKeywords = []string{"dockerfile", "docker-compose"}
	cicdKeywords   = []string{
		".github/workflows", ".gitlab-ci", ".circleci", "jenkinsfile",
		".travis.yml", "azure-pipelines", "bitbucket-pipelines",
	}
)

// DetectStructure computes the structural flags of an index.
func DetectStructure(ix *Index) StructureFlags {
	return StructureFlags{
		HasClient:       ix.HasTopLevel(clientDirs...),
		HasServer:       ix.HasTopLevel(serverDirs...),
		HasSrc:          ix.HasTopLevel("src"),
		HasTests:        ix.Any(testKeywords...),
		HasDocker:       ix.Any(dockerKeywords...),
		HasCICD:         ix.Any(cicdKeywords...),
		HasReadme:       ix.Any("readme"),
		HasEnvExample:   ix.Any(".env.example", ".env.sample", ".env.template"),
		HasLicense:      ix.Any("license", "licence"),
		HasContributing: ix.Any("contributing"),
	}
}

// featureRules is the ordered feature table.
var featureRules = []Rule[string]{
	{Result: "Authentication", Keywords: []string{"auth", "login", "signup", "passport", "jwt", "oauth"}},
	{Result: "API", Keywords: []string{"api/", "routes/", "controller", "graphql", "endpoint"}},
	{Result: "Database", Keywords: []string{"models/", "schema", "migration", "prisma", "database", "db/"}},
	{Result: "Real-time", Keywords: []string{"socket", "websocket", "realtime"}},
	{Result: "File Upload", Keywords: []string{"upload", "multer"}},
	{Result: "Email", Keywords: []string{"email", "mail", "smtp", "nodemailer"}},
	{Result: "Payments", Keywords: []string{"payment", "stripe", "paypal", "checkout", "billing"}},
	{Result: "Search", Keywords: []string{"search", "algolia", "elastic"}},
	{Result: "Notifications", Keywords: []string{"notification", "notify"}},
	{Result: "Admin Dashboard", Keywords: []string{"admin", "dashboard"}},
	{Result: "Internationalization", Keywords: []string{"i18n", "locale", "translation"}},
	{Result: "Caching", Keywords: []string{"cache", "redis"}},
	{Result: "Logging", Keywords: []string{"logger", "logging", "winston", "pino"}},
	{Result: "Analytics", Keywords: []string{"analytics", "tracking"}},
	{Result: "Testing", Keywords: testKeywords},
	{Result: "Containerization", Keywords: dockerKeywords},
	{Result: "CI/CD", Keywords: []string{".github/workflows", ".gitlab-ci", ".circleci"}},
}

type missingRule struct {
	missing    string
	suggestion string
	applies    func(f StructureFlags, totalFiles int) bool
}

// missingRules fire on the absence of a structural flag.
var missingRules = []missingRule{
	{"No tests", "Add unit tests to improve code reliability",
		func(f StructureFlags, n int) bool { return !f.HasTests && n > MinFilesForTests }},
	{"No README", "Add a README.md describing setup and usage",
		func(f StructureFlags, n int) bool { return !f.HasReadme }},
	{"No Docker configuration", "Add a Dockerfile for consistent deployments",
		func(f StructureFlags, n int) bool { return !f.HasDocker }},
	{"No CI/CD pipeline", "Set up CI/CD with GitHub Actions",
		func(f StructureFlags, n int) bool { return !f.HasCICD }},
	{"No .env.example", "Add a .env.example documenting required environment variables",
		func(f StructureFlags, n int) bool { return !f.HasEnvExample && n > MinFilesForTests }},
	{"No license", "Add a LICENSE file to clarify usage rights",
		func(f StructureFlags, n int) bool { return !f.HasLicense }},
	{"No contributing guide", "Add a CONTRIBUTING.md for collaborators",
		func(f StructureFlags, n int) bool { return !f.HasContributing && n > MinFilesForContributing }},
}

// DetectFeatures evaluates the feature table and derives missing features
// and suggestions from the flags.
func DetectFeatures(ix *Index, flags StructureFlags) FeatureCatalogue {
	detected := newOrderedSet()
	detected.AddAll(AllMatches(featureRules, ix.Paths)...)

	missing := newOrderedSet()
	suggestions := []string{}
	for _, r := range missingRules {
		if r.applies(flags, ix.FileStats.Total) && missing.Add(r.missing) {
			suggestions = append(suggestions, r.suggestion)
		}
	}

	return FeatureCatalogue{
		Detected:    detected.Items(),
		Missing:     missing.Items(),
		Suggestions: suggestions,
	}
}
