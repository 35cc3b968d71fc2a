package walker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jra3/orgmind/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestListFilesFindsOrgFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.org", "* A\n")
	writeFile(t, root, "notes/b.org", "* B\n")
	writeFile(t, root, "README.md", "not org\n")

	files, err := walker.ListFiles(root, nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.org", "notes/b.org"}, files)
}

func TestListFilesAppliesLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.org", "")
	writeFile(t, root, "b.org", "")
	writeFile(t, root, "c.org", "")

	files, err := walker.ListFiles(root, nil, nil, 2)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestListFilesAppliesTagFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "work.org", "")
	writeFile(t, root, "home.org", "")

	getTags := func(rel string) (map[string]struct{}, error) {
		if rel == "work.org" {
			return map[string]struct{}{"work": {}}, nil
		}
		return map[string]struct{}{"home": {}}, nil
	}

	files, err := walker.ListFiles(root, map[string]struct{}{"work": {}}, getTags, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"work.org"}, files)
}

func TestListAgendaFilesSkipsMissingLiteral(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "agenda.org", "")

	files, err := walker.ListAgendaFiles(root, []string{"agenda.org", "missing.org"})
	require.NoError(t, err)
	assert.Equal(t, []string{"agenda.org"}, files)
}

func TestListAgendaFilesExpandsGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "projects/a.org", "")
	writeFile(t, root, "projects/b.org", "")
	writeFile(t, root, "other.org", "")

	files, err := walker.ListAgendaFiles(root, []string{"projects/*.org"})
	require.NoError(t, err)
	assert.Equal(t, []string{"projects/a.org", "projects/b.org"}, files)
}

func TestListAgendaFilesSkipsBrokenGlob(t *testing.T) {
	root := t.TempDir()
	files, err := walker.ListAgendaFiles(root, []string{"[invalid"})
	require.NoError(t, err)
	assert.Empty(t, files)
}
