package analyzer

import "strings"

// Rule maps a keyword set to a result. All matching is case-insensitive
// substring matching against already lower-cased values.
type Rule[T any] struct {
	Keywords []string
	Result   T
}

// containsAny reports whether s contains at least one keyword.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// FirstMatch returns the result of the first rule whose keywords match value.
func FirstMatch[T any](rules []Rule[T], value string) (T, bool) {
	value = strings.ToLower(value)
	for _, r := range rules {
		if containsAny(value, r.Keywords) {
			return r.Result, true
		}
	}
	var zero T
	return zero, false
}

// AllMatches returns, in rule order, the result of every rule matched by at
// least one of values.
func AllMatches[T any](rules []Rule[T], values []string) []T {
	var out []T
	for _, r := range rules {
		if AnyContains(values, r.Keywords) {
			out = append(out, r.Result)
		}
	}
	return out
}

// AnyContains reports whether any value contains any keyword.
func AnyContains(values []string, keywords []string) bool {
	for _, v := range values {
		if containsAny(v, keywords) {
			return true
		}
	}
	return false
}

// orderedSet collects strings in first-seen order without duplicates.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{items: []string{}, seen: map[string]struct{}{}}
}

// Add inserts v and reports whether it was new.
func (s *orderedSet) Add(v string) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet) AddAll(vs ...string) {
	for _, v := range vs {
		s.Add(v)
	}
}

func (s *orderedSet) Has(v string) bool {
	_, ok := s.seen[v]
	return ok
}

func (s *orderedSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the members in insertion order.
func (s *orderedSet) Items() []string {
	return append([]string{}, s.items...)
}
