package analyzer

// ArchitectureStyle is the coarse deployment shape of a repository.
type ArchitectureStyle string

const (
	StyleMonolith      ArchitectureStyle = "monolith"
	StyleMicroservices ArchitectureStyle = "microservices"
	StyleServerless    ArchitectureStyle = "serverless"
	StyleJamstack      ArchitectureStyle = "jamstack"
)

// ArchitectureReport is the style decision plus detected layers.
type ArchitectureReport struct {
	Style       ArchitectureStyle `json:"style"`
	Layers      []string          `json:"layers"`
	Description string            `json:"description"`
}

var styleDescriptions = map[ArchitectureStyle]string{
	StyleMicroservices: "Multiple independently containerized services are composed through an orchestration layer. Each service owns its dependencies and can be deployed on its own.",
	StyleServerless:    "Logic is deployed as individual functions executed on demand by a managed platform. There is no long-running server process to operate.",
	StyleJamstack:      "Pages are pre-rendered by a static site generator and served from a CDN. Dynamic behavior comes from client-side JavaScript and third-party APIs.",
	StyleMonolith:      "The application is built and deployed as a single unit. Presentation, business logic and data access live in one codebase and release together.",
}

var (
	orchestrationKeywords = []string{"docker-compose", "k8s/", "kubernetes/", "helm/", "skaffold", "chart.yaml"}
	serviceManifests      = []string{"package.json", "go.mod", "requirements.txt", "pom.xml", "cargo.toml"}

	serverlessPaths = []string{
		"serverless.yml", "serverless.yaml", "serverless.ts", "netlify/functions",
		"/functions/", "lambda/", "template.yaml",
	}
	serverlessDeps = []string{
		"serverless", "aws-lambda", "@vercel/node", "@netlify/functions",
		"firebase-functions", "@azure/functions",
	}
	staticSiteGenerators = []string{
		"gatsby", "next", "nuxt", "astro", "@11ty/eleventy", "gridsome",
		"vuepress", "docusaurus", "hexo",
	}
)

// archInput is what the style predicates inspect.
type archInput struct {
	deps  *Dependencies
	index *Index
	flags StructureFlags
}

// styleRules is evaluated top to bottom; the first predicate that holds
// decides the style. The order is the priority.
var styleRules = []struct {
	style ArchitectureStyle
	when  func(in archInput) bool
}{
	{StyleMicroservices, func(in archInput) bool {
		return in.index.Any(orchestrationKeywords...) && countServiceUnits(in.index) > 2
	}},
	{StyleServerless, func(in archInput) bool {
		return in.index.Any(serverlessPaths...) ||
			in.index.HasTopLevel("functions") ||
			AnyContains(in.deps.Lower(), serverlessDeps)
	}},
	{StyleJamstack, func(in archInput) bool {
		return AnyContains(in.deps.Lower(), staticSiteGenerators) && !in.flags.HasServer
	}},
}

// layerRules are additive and independent of the style.
var layerRules = []Rule[string]{
	{Result: "Presentation", Keywords: []string{"components/", "views/", "pages/", "templates/"}},
	{Result: "Business Logic", Keywords: []string{"service", "usecase", "use-case", "domain/"}},
	{Result: "Data Access", Keywords: []string{"repositor", "models/", "model/", "db/", "database", "dao/", "entities/"}},
	{Result: "API", Keywords: []string{"api/", "route", "controller", "handler", "endpoint"}},
}

// ClassifyArchitecture picks the style and the present layers.
func ClassifyArchitecture(deps *Dependencies, ix *Index, flags StructureFlags) ArchitectureReport {
	in := archInput{deps: deps, index: ix, flags: flags}

	style := StyleMonolith
	for _, r := range styleRules {
		if r.when(in) {
			style = r.style
			break
		}
	}

	layers := newOrderedSet()
	for _, r := range layerRules {
		if ix.Any(r.Keywords...) || (r.Result == "Presentation" && flags.HasClient) {
			layers.Add(r.Result)
		}
	}

	return ArchitectureReport{
		Style:       style,
		Layers:      layers.Items(),
		Description: styleDescriptions[style],
	}
}

// countServiceUnits counts directories holding both a Dockerfile and a
// manifest.
func countServiceUnits(ix *Index) int {
	dockerDirs := ix.Dirs("dockerfile")
	manifestDirs := ix.Dirs(serviceManifests...)

	n := 0
	for dir := range dockerDirs {
		if manifestDirs[dir] {
			n++
		}
	}
	return n
}
