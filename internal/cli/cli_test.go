package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shell runs commands against one temp database.
type shell struct {
	t     *testing.T
	db    string
	prefs string
}

func newShell(t *testing.T) *shell {
	dir := t.TempDir()
	t.Setenv("LOG_LEVEL", "error")
	return &shell{t: t, db: filepath.Join(dir, "quotes.db"), prefs: filepath.Join(dir, "prefs.db")}
}

func (s *shell) run(args ...string) (string, error) {
	s.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", s.db, "--prefs", s.prefs}, args...))
	err := root.Execute()
	return out.String(), err
}

func (s *shell) mustRun(args ...string) string {
	s.t.Helper()
	out, err := s.run(args...)
	require.NoError(s.t, err, "quotebook %s", strings.Join(args, " "))
	return out
}

func TestAddListShowShare(t *testing.T) {
	sh := newShell(t)

	assert.Equal(t, "Added quote #1\n", sh.mustRun("add", "Know", "thyself", "-a", "Socrates", "-c", "Greek"))
	assert.Equal(t, "Added quote #2\n", sh.mustRun("add", "  Stay hungry  "))

	out := sh.mustRun("list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `#2  "Stay hungry" — Unknown`, lines[0])
	assert.Equal(t, `#1  "Know thyself" — Socrates  [Greek]`, lines[1])

	assert.Contains(t, sh.mustRun("list", "--category", "Greek"), "Know thyself")
	assert.NotContains(t, sh.mustRun("list", "--uncategorized"), "Know thyself")

	assert.Contains(t, sh.mustRun("show", "1"), "Socrates")
	assert.Equal(t, "\"Know thyself\"\n\n— Socrates\n", sh.mustRun("share", "1"))

	_, err := sh.run("show", "99")
	assert.ErrorContains(t, err, "quote #99 not found")
}

func TestAddBlankFails(t *testing.T) {
	sh := newShell(t)
	_, err := sh.run("add", "   ")
	assert.EqualError(t, err, "Please enter a quote")
}

func TestEditDeleteSearch(t *testing.T) {
	sh := newShell(t)
	sh.mustRun("add", "The unexamined life is not worth living", "-a", "Socrates")
	sh.mustRun("add", "He who has a why can bear almost any how", "-a", "Nietzsche")

	out := sh.mustRun("search", "SOCR")
	assert.Contains(t, out, "Socrates")
	assert.NotContains(t, out, "Nietzsche")

	assert.Equal(t, "Updated quote #2\n", sh.mustRun("edit", "2", "--category", "German"))
	assert.Contains(t, sh.mustRun("show", "2"), "[German]")

	_, err := sh.run("edit", "0", "--text", "x")
	assert.ErrorContains(t, err, "invalid id")
	_, err = sh.run("edit", "7", "--text", "x")
	assert.EqualError(t, err, "Quote not found")

	assert.Equal(t, "Deleted 2 quote(s)\n", sh.mustRun("delete", "1,2", "2"))
	assert.Equal(t, "No quotes.\n", sh.mustRun("list"))
}

func TestAssignAndCategories(t *testing.T) {
	sh := newShell(t)
	sh.mustRun("add", "a")
	sh.mustRun("add", "b")
	sh.mustRun("add", "c", "-c", "Art")

	assert.Equal(t, "Assigned 2 quote(s) to \"Favorites\"\n", sh.mustRun("assign", "Favorites", "1", "2"))
	assert.Equal(t, "Art\nFavorites\n", sh.mustRun("categories"))

	_, err := sh.run("assign", "Favorites", "1", "42")
	assert.ErrorContains(t, err, "quote 42")

	_, err = sh.run("assign", "  ", "1")
	assert.Error(t, err)
}

func TestBrowse(t *testing.T) {
	sh := newShell(t)
	for _, text := range []string{"one", "two", "three", "four"} {
		sh.mustRun("add", text)
	}
	// Newest first: four(0) three(1) two(2) one(3).
	out := sh.mustRun("browse", "l", "l", "r")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "> [2/4] #3"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "  [4/4] #1"), lines[2])

	out = sh.mustRun("browse", "--start", "3", "l")
	assert.True(t, strings.HasPrefix(out, "> [1/4] #4"), out)

	_, err := sh.run("browse", "x")
	assert.ErrorContains(t, err, "unknown move")
}

func TestIntro(t *testing.T) {
	sh := newShell(t)
	assert.Contains(t, sh.mustRun("intro"), "Welcome to Quotebook")
	assert.Equal(t, "Intro marked as seen.\n", sh.mustRun("intro", "--done"))
	assert.Equal(t, "Intro already seen.\n", sh.mustRun("intro"))
}

func TestStats(t *testing.T) {
	sh := newShell(t)
	sh.mustRun("add", "a", "-c", "X")
	sh.mustRun("add", "b")

	out := sh.mustRun("stats", "--metrics")
	assert.Contains(t, out, "quotes:         2")
	assert.Contains(t, out, "categories:     1")
	assert.Contains(t, out, "uncategorized:  1")
	assert.Contains(t, out, "schema version: 2")
	assert.Contains(t, out, `quotebook_repository_ops_total{op="count_quotes",result="ok"} 1`)
	assert.Contains(t, out, "quotebook_live_streams_active")

	t.Setenv("METRICS_ENABLED", "false")
	_, err := sh.run("stats", "--metrics")
	assert.ErrorContains(t, err, "metrics are disabled")
}
