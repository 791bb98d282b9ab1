package analyzer

import (
	"path"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/josephgoksu/RepoWing/internal/source"
)

// FileStats summarizes the blobs of a snapshot.
type FileStats struct {
	Total       int            `json:"total"`
	ByExtension map[string]int `json:"byExtension"`
	ByFolder    map[string]int `json:"byFolder"`
}

// Index is the normalized view of a repository tree that every classifier
// reads from.
type Index struct {
	// Paths holds every blob and tree path, lower-cased, de-duplicated, sorted.
	Paths     []string
	FileStats FileStats

	blobs    []string // lower-cased blob paths, sorted
	topLevel map[string]bool
	hookFile bool
}

// BuildIndex normalizes a flat tree listing. Empty input yields an all-zero
// index.
func BuildIndex(entries []source.RepoEntry) *Index {
	ix := &Index{
		Paths: []string{},
		blobs: []string{},
		FileStats: FileStats{
			ByExtension: map[string]int{},
			ByFolder:    map[string]int{},
		},
		topLevel: map[string]bool{},
	}

	seenEntry := make(map[string]bool, len(entries))
	seenPath := make(map[string]bool, len(entries))
	seenBlob := make(map[string]bool, len(entries))
	for _, e := range entries {
		p := strings.Trim(e.Path, "/")
		if p == "" || seenEntry[p] {
			continue
		}
		seenEntry[p] = true

		lower := strings.ToLower(p)
		if !seenPath[lower] {
			seenPath[lower] = true
			ix.Paths = append(ix.Paths, lower)
		}

		top, _, nested := strings.Cut(lower, "/")
		if nested || e.Kind == source.KindTree {
			ix.topLevel[top] = true
		}

		if !e.IsBlob() {
			continue
		}
		if !seenBlob[lower] {
			seenBlob[lower] = true
			ix.blobs = append(ix.blobs, lower)
		}
		if isHookFile(path.Base(p)) {
			ix.hookFile = true
		}
		ix.FileStats.Total++
		if ext := extensionOf(p); ext != "" {
			ix.FileStats.ByExtension[ext]++
		}
		if folder, _, ok := strings.Cut(p, "/"); ok {
			ix.FileStats.ByFolder[folder]++
		}
	}

	sort.Strings(ix.Paths)
	sort.Strings(ix.blobs)
	return ix
}

// extensionOf returns the lower-cased text after the last dot of the base
// name. ".gitignore" yields "gitignore"; "Makefile" and "file." yield "".
func extensionOf(p string) string {
	base := path.Base(p)
	idx := strings.LastIndex(base, ".")
	if idx == -1 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// isHookFile matches hook modules such as useAuth.ts: "use" followed by an
// upper-case letter. It reads the original-case base name.
func isHookFile(base string) bool {
	rest, ok := strings.CutPrefix(base, "use")
	if !ok || rest == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(r)
}

// HasHookFile reports whether any blob is named like a hook module.
func (ix *Index) HasHookFile() bool {
	return ix.hookFile
}

// Any reports whether any indexed path contains one of keywords.
func (ix *Index) Any(keywords ...string) bool {
	return AnyContains(ix.Paths, keywords)
}

// Matching returns up to limit blob paths containing one of keywords, in
// index order. Directories are skipped so a folder and its files do not
// count twice. A limit <= 0 means no limit.
func (ix *Index) Matching(keywords []string, limit int) []string {
	var out []string
	for _, p := range ix.blobs {
		if containsAny(p, keywords) {
			out = append(out, p)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// HasTopLevel reports whether one of names is a top-level directory.
func (ix *Index) HasTopLevel(names ...string) bool {
	for _, n := range names {
		if ix.topLevel[n] {
			return true
		}
	}
	return false
}

// Dirs returns the directories holding a blob whose base name is one of
// names, keyed by directory ("." for the root).
func (ix *Index) Dirs(names ...string) map[string]bool {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	dirs := map[string]bool{}
	for _, p := range ix.blobs {
		if want[path.Base(p)] {
			dirs[path.Dir(p)] = true
		}
	}
	return dirs
}
