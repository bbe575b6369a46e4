// Package search provides the text matching behind quote search. It is
// small and dependency-light by intent:
//
//   - No logging in the library (callers decide how/what to log)
//   - Unicode case folding via golang.org/x/text/cases, so "STRASSE" finds
//     "Straße" and "stillness" finds "Stillness"
//   - Queries are whitespace-trimmed; inner whitespace is kept as typed
//   - A Matcher is an immutable value, safe for concurrent use
package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Matcher tests candidate fields for a folded substring.
type Matcher struct {
	needle string
}

// NewMatcher prepares query for matching. A blank query matches everything.
func NewMatcher(query string) Matcher {
	return Matcher{needle: Fold(Normalize(query))}
}

// Needle returns the folded query.
func (m Matcher) Needle() string { return m.needle }

// Match reports whether any of fields contains the query.
func (m Matcher) Match(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), m.needle) {
			return true
		}
	}
	return false
}

// Normalize trims surrounding whitespace from a query.
func Normalize(query string) string {
	return strings.TrimSpace(query)
}

// Fold returns s under full Unicode case folding. A Caser keeps state, so a
// fresh one is used per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Clip truncates query to at most maxRunes runes. maxRunes <= 0 disables it.
func Clip(query string, maxRunes int) string {
	if maxRunes > 0 && utf8.RuneCountInString(query) > maxRunes {
		return string([]rune(query)[:maxRunes])
	}
	return query
}
