package analyzer

import (
	"net/url"
	"path"
	"strings"
)

// deployFiles maps platform config file names to platforms, in priority order.
var deployFiles = []struct {
	files    []string
	platform string
}{
	{[]string{"vercel.json"}, "vercel"},
	{[]string{"netlify.toml"}, "netlify"},
	{[]string{"fly.toml"}, "fly.io"},
	{[]string{"render.yaml"}, "render"},
	{[]string{"railway.json", "railway.toml"}, "railway"},
	{[]string{"procfile"}, "heroku"},
	{[]string{"app.yaml"}, "google-app-engine"},
	{[]string{"amplify.yml"}, "aws-amplify"},
	{[]string{"firebase.json"}, "firebase"},
	{[]string{"serverless.yml"}, "aws-lambda"},
}

// deployHosts maps homepage host suffixes to platforms.
var deployHosts = []struct {
	suffix   string
	platform string
}{
	{"vercel.app", "vercel"},
	{"netlify.app", "netlify"},
	{"github.io", "github-pages"},
	{"herokuapp.com", "heroku"},
	{"fly.dev", "fly.io"},
}

// DetectDeployPlatform returns the hosting platform suggested by config
// files, falling back to the repository homepage. Nil means unknown.
func DetectDeployPlatform(ix *Index, homepage string) *string {
	bases := make(map[string]bool, len(ix.Paths))
	for _, p := range ix.Paths {
		bases[path.Base(p)] = true
	}

	for _, rule := range deployFiles {
		for _, f := range rule.files {
			if bases[f] {
				return &rule.platform
			}
		}
	}

	if homepage == "" {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(homepage))
	if err != nil || u.Hostname() == "" {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	for _, rule := range deployHosts {
		if host == rule.suffix || strings.HasSuffix(host, "."+rule.suffix) {
			return &rule.platform
		}
	}
	return nil
}
