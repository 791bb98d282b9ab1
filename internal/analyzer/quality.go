package analyzer

// Grade is a letter grade derived from a quality score.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// QualityReport is the outcome of the quality rubric.
type QualityReport struct {
	Score           int             `json:"score"`
	Grade           Grade           `json:"grade"`
	Details         map[string]bool `json:"details"`
	Recommendations []string        `json:"recommendations"`
}

// qualityCheck is one rubric line. A check passes when any dependency,
// path, or primary-manifest script name contains one of its keywords. An
// empty recommendation marks a bonus-only check.
type qualityCheck struct {
	key            string
	points         int
	deps           []string
	paths          []string
	scripts        []string
	recommendation string
}

// qualityRubric weights total 100.
var qualityRubric = []qualityCheck{
	{
		key: "linting", points: 10,
		deps:           []string{"eslint", "tslint", "@biomejs", "standard", "golangci"},
		paths:          []string{".eslintrc", "eslint.config", ".golangci"},
		scripts:        []string{"lint"},
		recommendation: "Add ESLint to catch bugs and enforce code style",
	},
	{
		key: "formatting", points: 10,
		deps:           []string{"prettier", "@biomejs", "black", "gofumpt"},
		paths:          []string{".prettierrc", "prettier.config", ".editorconfig"},
		scripts:        []string{"format", "prettier"},
		recommendation: "Add Prettier for consistent code formatting",
	},
	{
		key: "typescript", points: 15,
		deps:           []string{"typescript"},
		paths:          []string{"tsconfig.json", ".ts", ".tsx"},
		recommendation: "Consider migrating to TypeScript for type safety",
	},
	{
		key: "errorHandling", points: 10,
		deps:           []string{"express-async-errors", "http-errors", "@hapi/boom", "boom"},
		paths:          []string{"errorhandler", "error-handler", "errors/", "middleware/error"},
		recommendation: "Implement centralized error handling middleware",
	},
	{
		key: "logging", points: 10,
		deps:           []string{"winston", "pino", "morgan", "bunyan", "log4js", "loglevel", "zap", "logrus"},
		paths:          []string{"logger"},
		recommendation: "Add structured logging (e.g. winston or pino)",
	},
	{
		key: "validation", points: 10,
		deps:           []string{"joi", "yup", "zod", "express-validator", "class-validator", "ajv", "validator", "pydantic"},
		recommendation: "Add input validation (e.g. zod or joi)",
	},
	{
		key: "securityHeaders", points: 10,
		deps:           []string{"helmet", "@fastify/helmet", "lusca"},
		recommendation: "Add security headers with helmet",
	},
	{
		key: "rateLimiting", points: 10,
		deps:           []string{"express-rate-limit", "rate-limiter-flexible", "@fastify/rate-limit", "bottleneck"},
		paths:          []string{"ratelimit", "rate-limit"},
		recommendation: "Add rate limiting to protect API endpoints",
	},
	{
		key: "caching", points: 5,
		deps: []string{"redis", "ioredis", "node-cache", "memcached", "lru-cache", "apicache"},
	},
	{
		key: "compression", points: 5,
		deps: []string{"compression", "@fastify/compress", "shrink-ray"},
	},
}

// ScoreQuality runs the rubric.
func ScoreQuality(deps *Dependencies, ix *Index) QualityReport {
	scripts := deps.ScriptNames()
	report := QualityReport{
		Details:         make(map[string]bool, len(qualityRubric)),
		Recommendations: []string{},
	}

	for _, check := range qualityRubric {
		passed := AnyContains(deps.Lower(), check.deps) ||
			AnyContains(ix.Paths, check.paths) ||
			AnyContains(scripts, check.scripts)

		report.Details[check.key] = passed
		if passed {
			report.Score += check.points
			continue
		}
		if check.recommendation != "" {
			report.Recommendations = append(report.Recommendations, check.recommendation)
		}
	}

	report.Score = clamp(report.Score, 0, 100)
	report.Grade = GradeFor(report.Score)
	return report
}

// gradeThresholds is ordered from the highest floor down.
var gradeThresholds = []struct {
	floor int
	grade Grade
}{
	{90, GradeAPlus},
	{80, GradeA},
	{70, GradeB},
	{60, GradeC},
	{50, GradeD},
}

// GradeFor maps a score to its letter grade.
func GradeFor(score int) Grade {
	for _, t := range gradeThresholds {
		if score >= t.floor {
			return t.grade
		}
	}
	return GradeF
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// QualityChecks returns the rubric keys in scoring order.
func QualityChecks() []string {
	keys := make([]string, 0, len(qualityRubric))
	for _, c := range qualityRubric {
		keys = append(keys, c.key)
	}
	return keys
}
