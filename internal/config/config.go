// Package config loads and validates the engine's settings: the org root
// directory, agenda file globs, the TODO keyword vocabulary, and the ambient
// CLI/server/logging sections. Precedence (lowest to highest): built-in
// defaults, the config file, ORG_* environment variables, then caller-applied
// CLI overrides (see Config.ApplyOverrides).
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jra3/orgmind/internal/orgerr"
	"gopkg.in/yaml.v3"
)

// Config is the validated, process-lifetime-shared settings object. Once
// constructed by Load, it is read-only.
type Config struct {
	OrgDirectory                  string   `toml:"org_directory" yaml:"org_directory" json:"org_directory"`
	OrgDefaultNotesFile           string   `toml:"org_default_notes_file" yaml:"org_default_notes_file" json:"org_default_notes_file"`
	OrgAgendaFiles                []string `toml:"org_agenda_files" yaml:"org_agenda_files" json:"org_agenda_files"`
	OrgAgendaTextSearchExtraFiles []string `toml:"org_agenda_text_search_extra_files" yaml:"org_agenda_text_search_extra_files" json:"org_agenda_text_search_extra_files"`
	OrgTodoKeywords               []string `toml:"org_todo_keywords" yaml:"org_todo_keywords" json:"org_todo_keywords"`

	CLI     CLISection     `toml:"cli" yaml:"cli" json:"cli"`
	Server  ServerSection  `toml:"server" yaml:"server" json:"server"`
	Logging LoggingSection `toml:"logging" yaml:"logging" json:"logging"`

	// unfinished/finished are derived once at validation time from
	// OrgTodoKeywords so every caller shares the same split.
	unfinished []string
	finished   []string
}

type CLISection struct {
	DefaultFormat string `toml:"default_format" yaml:"default_format" json:"default_format"`
}

type ServerSection struct {
	MaxConnections int `toml:"max_connections" yaml:"max_connections" json:"max_connections"`
}

type LoggingSection struct {
	Level string `toml:"level" yaml:"level" json:"level"`
	File  string `toml:"file" yaml:"file" json:"file"`
}

// Default returns the built-in defaults per spec §6. Callers layer a file
// and environment variables on top via Load.
func Default() *Config {
	return &Config{
		OrgDefaultNotesFile: "notes.org",
		OrgAgendaFiles:      []string{"agenda.org"},
		OrgTodoKeywords:     []string{"TODO", "|", "DONE"},
		CLI:                 CLISection{DefaultFormat: "plain"},
		Server:              ServerSection{MaxConnections: 10},
		Logging:             LoggingSection{Level: "info"},
	}
}

// Load resolves the config file path (explicit path wins, else the XDG/OS
// default), decodes it over the defaults by sniffing its extension, applies
// ORG_* environment overrides, and validates the result.
func Load(explicitPath string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	path := explicitPath
	if path == "" {
		path = DefaultPath(getenv)
	}
	if err := decodeFileInto(cfg, path); err != nil {
		return nil, err
	}
	applyEnv(cfg, getenv)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFileInto merges the config file at path into cfg. A missing file is
// not an error -- the defaults (plus any earlier layer) stand.
func decodeFileInto(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return orgerr.NewConfigError("reading config file: " + err.Error())
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return orgerr.NewConfigError("parsing TOML config: " + err.Error())
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return orgerr.NewConfigError("parsing YAML config: " + err.Error())
		}
	case ".json":
		if err := decodeJSON(data, cfg); err != nil {
			return orgerr.NewConfigError("parsing JSON config: " + err.Error())
		}
	default:
		return orgerr.NewConfigError("unrecognised config file extension: " + path)
	}
	return nil
}

// applyEnv overlays ORG_SECTION__FIELD style variables. Double underscore
// denotes nesting into a section; the top-level org keys use the ORG_ORG__
// prefix. Only the variables listed below are read.
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("ORG_ORG__ORG_DIRECTORY"); v != "" {
		cfg.OrgDirectory = v
	}
	if v := getenv("ORG_ORG__ORG_DEFAULT_NOTES_FILE"); v != "" {
		cfg.OrgDefaultNotesFile = v
	}
	if v := getenv("ORG_ORG__ORG_AGENDA_FILES"); v != "" {
		cfg.OrgAgendaFiles = splitCSV(v)
	}
	if v := getenv("ORG_ORG__ORG_TODO_KEYWORDS"); v != "" {
		cfg.OrgTodoKeywords = splitCSV(v)
	}
	if v := getenv("ORG_CLI__DEFAULT_FORMAT"); v != "" {
		cfg.CLI.DefaultFormat = v
	}
	if v := getenv("ORG_SERVER__MAX_CONNECTIONS"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			cfg.Server.MaxConnections = n
		}
	}
	if v := getenv("ORG_LOGGING__LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("ORG_LOGGING__FILE"); v != "" {
		cfg.Logging.File = v
	}
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parsePositiveInt(v string) (int, error) {
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, orgerr.NewConfigError("not a number: " + v)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// ApplyOverrides layers CLI-flag-sourced values (the highest-precedence
// layer) onto an already-loaded, validated Config and re-validates.
func (c *Config) ApplyOverrides(rootDirectory string) error {
	if rootDirectory != "" {
		c.OrgDirectory = rootDirectory
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.OrgDirectory == "" {
		return orgerr.NewConfigError("org_directory is required")
	}
	if !filepath.IsAbs(c.OrgDirectory) {
		return orgerr.NewConfigError("org_directory must be an absolute path: " + c.OrgDirectory)
	}
	info, err := os.Stat(c.OrgDirectory)
	if err != nil || !info.IsDir() {
		return orgerr.NewInvalidDirectory(c.OrgDirectory)
	}
	f, err := os.Open(c.OrgDirectory)
	if err != nil {
		return orgerr.NewInvalidDirectory(c.OrgDirectory)
	}
	f.Close()

	unfinished, finished, err := ParseTodoKeywords(c.OrgTodoKeywords)
	if err != nil {
		return err
	}
	c.unfinished = unfinished
	c.finished = finished
	return nil
}

// ParseTodoKeywords splits the configured keyword vocabulary into unfinished
// and finished states around the single "|" sentinel, per spec §3. At least
// two keywords are required; "|" may appear at most once and never first or
// last.
func ParseTodoKeywords(keywords []string) (unfinished, finished []string, err error) {
	if len(keywords) < 2 {
		return nil, nil, orgerr.NewConfigError("org_todo_keywords must contain at least two entries")
	}
	sepIdx := -1
	for i, k := range keywords {
		if k != "|" {
			continue
		}
		if sepIdx != -1 {
			return nil, nil, orgerr.NewConfigError(`org_todo_keywords may contain at most one "|" separator`)
		}
		if i == 0 || i == len(keywords)-1 {
			return nil, nil, orgerr.NewConfigError(`org_todo_keywords "|" separator must not be first or last`)
		}
		sepIdx = i
	}
	if sepIdx == -1 {
		return keywords[:len(keywords)-1], keywords[len(keywords)-1:], nil
	}
	return keywords[:sepIdx], keywords[sepIdx+1:], nil
}

// UnfinishedKeywords returns the TODO states that count as open work.
func (c *Config) UnfinishedKeywords() []string { return c.unfinished }

// FinishedKeywords returns the TODO states that count as completed.
func (c *Config) FinishedKeywords() []string { return c.finished }

// IsUnfinished reports whether state belongs to the unfinished vocabulary.
func (c *Config) IsUnfinished(state string) bool {
	for _, k := range c.unfinished {
		if k == state {
			return true
		}
	}
	return false
}

// IsKnownState reports membership in either half of the vocabulary.
func (c *Config) IsKnownState(state string) bool {
	for _, k := range c.unfinished {
		if k == state {
			return true
		}
	}
	for _, k := range c.finished {
		if k == state {
			return true
		}
	}
	return false
}

// GenerateDefault renders the built-in defaults as pretty-printed TOML,
// suitable for writing out as a starter config file. org_directory is left
// blank: callers are expected to fill it in or supply it via an override.
func GenerateDefault() (string, error) {
	var buf strings.Builder
	buf.WriteString("# Default org-mode configuration.\n")
	buf.WriteString("# org_directory must be set to an absolute path before this file is usable.\n\n")
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return "", orgerr.NewConfigError("generating default config: " + err.Error())
	}
	return buf.String(), nil
}

// DefaultPath resolves the default config file location: XDG_CONFIG_HOME (or
// the macOS Application Support convention, or ~/.config elsewhere) joined
// with "org-mcp/config.toml".
func DefaultPath(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "org-mcp", "config.toml")
	}
	home := getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "org-mcp", "config.toml")
	}
	return filepath.Join(home, ".config", "org-mcp", "config.toml")
}
