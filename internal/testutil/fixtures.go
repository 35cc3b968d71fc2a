// Package testutil builds throwaway org directories and configs for tests
// across internal/*, following the fixtures-package convention (build a
// realistic instance once, let every test reuse or tweak it).
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jra3/orgmind/internal/config"
)

// TempOrgDir creates a t.TempDir() and writes files into it (keys are
// slash-separated paths relative to the directory root; parent directories
// are created as needed), returning the directory's absolute path.
func TempOrgDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", full, err)
		}
	}
	return root
}

// TestConfig returns the built-in defaults pointed at root, ready to pass to
// engine.New.
func TestConfig(t *testing.T, root string) *config.Config {
	t.Helper()
	cfg := config.Default()
	if err := cfg.ApplyOverrides(root); err != nil {
		t.Fatalf("applying overrides for %s: %v", root, err)
	}
	return cfg
}

// FixtureNotesOrg is a small but representative notes.org: a top-level
// heading with file tags, a TODO with a priority cookie and its own tag, a
// scheduled task, and a nested subheading, exercising outline, tagset,
// search, and agenda together.
const FixtureNotesOrg = `#+FILETAGS: :project:

* Planning :planning:
** TODO [#A] Draft the proposal :writing:
SCHEDULED: <2025-06-02 Mon>
Some notes about the proposal go here.
** DONE Kickoff meeting
   :PROPERTIES:
   :ID:       11111111-1111-1111-1111-111111111111
   :END:
* Reference
Plain reference material, no heading-level tags.
`

// FixtureAgendaOrg is a small agenda.org: a recurring task and a deadline,
// for tests that need repeater expansion.
const FixtureAgendaOrg = `* TODO Weekly review :review:
SCHEDULED: <2025-06-02 Mon +1w>
* TODO [#B] Ship the release
DEADLINE: <2025-06-10 Tue>
`
