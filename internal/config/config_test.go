package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEnv builds an environment lookup function from a map, letting tests
// provide isolated environment values instead of touching the real process
// environment.
func mockEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.Equal(t, "notes.org", cfg.OrgDefaultNotesFile)
	assert.Equal(t, []string{"agenda.org"}, cfg.OrgAgendaFiles)
	assert.Equal(t, []string{"TODO", "|", "DONE"}, cfg.OrgTodoKeywords)
	assert.Equal(t, "plain", cfg.CLI.DefaultFormat)
	assert.Equal(t, 10, cfg.Server.MaxConnections)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithTOMLFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	configPath := filepath.Join(root, "config.toml")
	content := `
org_directory = "` + root + `"
org_agenda_files = ["work.org", "personal.org"]

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath, mockEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, root, cfg.OrgDirectory)
	assert.Equal(t, []string{"work.org", "personal.org"}, cfg.OrgAgendaFiles)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadWithYAMLFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	configPath := filepath.Join(root, "config.yaml")
	content := "org_directory: " + root + "\norg_todo_keywords: [TODO, NEXT, \"|\", DONE, CANCELLED]\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath, mockEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"TODO", "NEXT"}, cfg.UnfinishedKeywords())
	assert.Equal(t, []string{"DONE", "CANCELLED"}, cfg.FinishedKeywords())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	configPath := filepath.Join(root, "config.toml")
	content := `org_directory = "` + root + `"` + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	otherRoot := t.TempDir()
	env := mockEnv(map[string]string{"ORG_ORG__ORG_DIRECTORY": otherRoot})

	cfg, err := Load(configPath, env)
	require.NoError(t, err)
	assert.Equal(t, otherRoot, cfg.OrgDirectory)
}

func TestLoadNoConfigFileUsesDefaults(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	env := mockEnv(map[string]string{"ORG_ORG__ORG_DIRECTORY": root})

	cfg, err := Load(filepath.Join(root, "does-not-exist.toml"), env)
	require.NoError(t, err)
	assert.Equal(t, "notes.org", cfg.OrgDefaultNotesFile)
	assert.Equal(t, root, cfg.OrgDirectory)
}

func TestLoadRejectsMissingDirectory(t *testing.T) {
	t.Parallel()
	env := mockEnv(map[string]string{"ORG_ORG__ORG_DIRECTORY": "/does/not/exist/anywhere"})

	_, err := Load("", env)
	require.Error(t, err)
}

func TestLoadRejectsRelativeDirectory(t *testing.T) {
	t.Parallel()
	env := mockEnv(map[string]string{"ORG_ORG__ORG_DIRECTORY": "relative/path"})

	_, err := Load("", env)
	require.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	otherRoot := t.TempDir()
	cfg, err := Load("", mockEnv(map[string]string{"ORG_ORG__ORG_DIRECTORY": root}))
	require.NoError(t, err)

	require.NoError(t, cfg.ApplyOverrides(otherRoot))
	assert.Equal(t, otherRoot, cfg.OrgDirectory)
}

func TestParseTodoKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		keywords       []string
		wantUnfinished []string
		wantFinished   []string
		wantErr        bool
	}{
		{"no separator", []string{"TODO", "DONE"}, []string{"TODO"}, []string{"DONE"}, false},
		{"with separator", []string{"TODO", "NEXT", "|", "DONE", "CANCELLED"}, []string{"TODO", "NEXT"}, []string{"DONE", "CANCELLED"}, false},
		{"too few", []string{"TODO"}, nil, nil, true},
		{"separator first", []string{"|", "DONE"}, nil, nil, true},
		{"separator last", []string{"TODO", "|"}, nil, nil, true},
		{"two separators", []string{"TODO", "|", "DOING", "|", "DONE"}, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unfinished, finished, err := ParseTodoKeywords(tt.keywords)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUnfinished, unfinished)
			assert.Equal(t, tt.wantFinished, finished)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()
	path := DefaultPath(mockEnv(map[string]string{"XDG_CONFIG_HOME": "/custom/config"}))
	assert.Equal(t, filepath.Join("/custom/config", "org-mcp", "config.toml"), path)
}

func TestGenerateDefault(t *testing.T) {
	t.Parallel()
	body, err := GenerateDefault()
	require.NoError(t, err)
	assert.Contains(t, body, "notes.org")
	assert.Contains(t, body, "default_format")
	assert.Contains(t, body, "max_connections")
}
