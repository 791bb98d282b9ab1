package analyzer

import "strings"

// Tech stack category names.
const (
	CategoryFrontend = "frontend"
	CategoryBackend  = "backend"
	CategoryDatabase = "database"
	CategoryStyling  = "styling"
	CategoryTesting  = "testing"
	CategoryDevOps   = "devops"
	CategoryOther    = "other"
)

// TechStack maps each category to the names classified into it, in
// first-seen order.
type TechStack struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	Database []string `json:"database"`
	Styling  []string `json:"styling"`
	Testing  []string `json:"testing"`
	DevOps   []string `json:"devops"`
	Other    []string `json:"other"`
}

// Category returns the members of the named category.
func (t TechStack) Category(name string) []string {
	switch name {
	case CategoryFrontend:
		return t.Frontend
	case CategoryBackend:
		return t.Backend
	case CategoryDatabase:
		return t.Database
	case CategoryStyling:
		return t.Styling
	case CategoryTesting:
		return t.Testing
	case CategoryDevOps:
		return t.DevOps
	case CategoryOther:
		return t.Other
	}
	return nil
}

// All returns every classified name across categories, in category order.
func (t TechStack) All() []string {
	var out []string
	for _, c := range TechCategories {
		out = append(out, t.Category(c)...)
	}
	return out
}

// IsEmpty reports whether nothing was classified.
func (t TechStack) IsEmpty() bool {
	return len(t.All()) == 0
}

// TechCategories lists categories in report order.
var TechCategories = []string{
	CategoryFrontend, CategoryBackend, CategoryDatabase, CategoryStyling,
	CategoryTesting, CategoryDevOps, CategoryOther,
}

// techCategoryRules is evaluated top to bottom; the first category whose
// keywords a dependency contains wins.
var techCategoryRules = []Rule[string]{
	{Result: CategoryFrontend, Keywords: []string{
		"react", "vue", "angular", "svelte", "next", "nuxt", "gatsby", "remix",
		"astro", "preact", "solid-js", "ember", "jquery", "expo", "ionic", "capacitor",
	}},
	{Result: CategoryBackend, Keywords: []string{
		"express", "fastify", "koa", "hapi", "nestjs", "@nestjs", "apollo-server",
		"graphql-yoga", "hono", "socket.io", "django", "flask", "fastapi",
		"gin-gonic", "labstack/echo", "gofiber", "gorilla/mux", "actix", "axum",
		"rocket", "spring",
	}},
	{Result: CategoryDatabase, Keywords: []string{
		"mongoose", "mongodb", "prisma", "sequelize", "typeorm", "knex", "drizzle",
		"mysql", "pg", "sqlite", "redis", "firebase", "supabase", "dynamodb",
		"gorm", "sqlalchemy", "diesel", "sqlx", "elasticsearch",
	}},
	{Result: CategoryStyling, Keywords: []string{
		"tailwind", "styled-components", "emotion", "sass", "less", "postcss",
		"bootstrap", "@mui", "material-ui", "chakra", "antd", "bulma",
	}},
	{Result: CategoryTesting, Keywords: []string{
		"jest", "mocha", "chai", "vitest", "cypress", "playwright",
		"@testing-library", "jasmine", "karma", "supertest", "sinon", "pytest",
		"testify",
	}},
	{Result: CategoryDevOps, Keywords: []string{
		"docker", "kubernetes", "aws-sdk", "@aws-sdk", "serverless", "terraform",
		"pulumi", "vercel", "netlify", "pm2", "webpack", "vite", "rollup",
		"esbuild", "babel", "husky",
	}},
}

type pathSignal struct {
	category string
	name     string
	keywords []string
}

// techPathSignals add tooling visible only in the tree.
var techPathSignals = []pathSignal{
	{CategoryDevOps, "docker", []string{"dockerfile"}},
	{CategoryDevOps, "docker-compose", []string{"docker-compose"}},
	{CategoryDevOps, "github-actions", []string{".github/workflows"}},
	{CategoryDevOps, "gitlab-ci", []string{".gitlab-ci"}},
	{CategoryDevOps, "kubernetes", []string{"k8s/", "kubernetes/"}},
	{CategoryDevOps, "terraform", []string{".tf"}},
	{CategoryStyling, "tailwindcss", []string{"tailwind.config"}},
	{CategoryTesting, "jest", []string{"jest.config"}},
	{CategoryTesting, "vitest", []string{"vitest.config"}},
	{CategoryTesting, "cypress", []string{"cypress.config", "cypress/"}},
}

// ClassifyTechStack assigns each dependency to at most one category, then
// adds path-derived tooling.
func ClassifyTechStack(deps *Dependencies, ix *Index) TechStack {
	sets := make(map[string]*orderedSet, len(TechCategories))
	for _, c := range TechCategories {
		sets[c] = newOrderedSet()
	}

	for i, name := range deps.Names {
		category, ok := FirstMatch(techCategoryRules, deps.lower[i])
		if !ok {
			category = CategoryOther
		}
		sets[category].Add(name)
	}

	for _, sig := range techPathSignals {
		if hasFileMatch(ix, sig.keywords) {
			sets[sig.category].Add(sig.name)
		}
	}

	return TechStack{
		Frontend: sets[CategoryFrontend].Items(),
		Backend:  sets[CategoryBackend].Items(),
		Database: sets[CategoryDatabase].Items(),
		Styling:  sets[CategoryStyling].Items(),
		Testing:  sets[CategoryTesting].Items(),
		DevOps:   sets[CategoryDevOps].Items(),
		Other:    sets[CategoryOther].Items(),
	}
}

// hasFileMatch is Index.Any with ".tf" matched as a file suffix.
func hasFileMatch(ix *Index, keywords []string) bool {
	for _, kw := range keywords {
		if kw != ".tf" {
			if ix.Any(kw) {
				return true
			}
			continue
		}
		for _, p := range ix.Paths {
			if strings.HasSuffix(p, ".tf") {
				return true
			}
		}
	}
	return false
}
