// Package engine composes the walker, parser, outline, tag, search, and
// agenda subsystems behind the single mutual-exclusion lock described in
// spec §5: one request enters the engine at a time, every call is stateless
// and reads fresh bytes from disk, and there is no cross-request cache.
package engine

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/jra3/orgmind/internal/agenda"
	"github.com/jra3/orgmind/internal/config"
	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/outline"
	"github.com/jra3/orgmind/internal/search"
	"github.com/jra3/orgmind/internal/walker"
	"go.uber.org/zap"
)

// OrgMode is the single entry point every front end (CLI, MCP server)
// drives. It owns no cache: every method re-walks and re-parses whatever
// files the call needs.
type OrgMode struct {
	mu     sync.Mutex
	cfg    *config.Config
	logger *zap.Logger
}

// New constructs an OrgMode over a validated config.
func New(cfg *config.Config, logger *zap.Logger) *OrgMode {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrgMode{cfg: cfg, logger: logger}
}

// Config returns the engine's (read-only, process-lifetime) configuration.
func (o *OrgMode) Config() *config.Config { return o.cfg }

// Logger returns the engine's shared logger, for front ends that want to
// derive request-scoped child loggers (e.g. the MCP server's per-request
// correlation ID) without threading a second logger through construction.
func (o *OrgMode) Logger() *zap.Logger { return o.logger }

// ListFiles enumerates every .org file under the configured root, optionally
// filtered by a superset-of tags_filter, truncated to limit (0 = unlimited).
func (o *OrgMode) ListFiles(tagsFilter map[string]struct{}, limit int) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	getTags := func(rel string) (map[string]struct{}, error) {
		doc, err := orgast.ParseFile(filepath.Join(o.cfg.OrgDirectory, rel), o.cfg.OrgTodoKeywords)
		if err != nil {
			return nil, err
		}
		set := make(map[string]struct{}, len(doc.FileTags))
		for _, t := range doc.FileTags {
			set[t] = struct{}{}
		}
		return set, nil
	}
	if len(tagsFilter) == 0 {
		getTags = nil
	}

	return walker.ListFiles(o.cfg.OrgDirectory, tagsFilter, getTags, limit)
}

// ReadFile returns the raw contents of path (relative to the org root).
func (o *OrgMode) ReadFile(path string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := orgast.ParseFile(filepath.Join(o.cfg.OrgDirectory, path), o.cfg.OrgTodoKeywords)
	if err != nil {
		return "", err
	}
	return doc.Source, nil
}

// GetOutline builds the hierarchical outline of path.
func (o *OrgMode) GetOutline(path string) (*outline.TreeNode, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := orgast.ParseFile(filepath.Join(o.cfg.OrgDirectory, path), o.cfg.OrgTodoKeywords)
	if err != nil {
		return nil, err
	}
	return outline.Build(doc), nil
}

// GetHeading extracts the raw span of the heading named by the slash-path
// headingPath within path.
func (o *OrgMode) GetHeading(path, headingPath string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	doc, err := orgast.ParseFile(filepath.Join(o.cfg.OrgDirectory, path), o.cfg.OrgTodoKeywords)
	if err != nil {
		return "", err
	}
	return outline.HeadingByPath(doc, headingPath)
}

// GetElementByID scans every file under the org root, in walk order, for a
// headline or document-level property drawer carrying :ID: == id.
func (o *OrgMode) GetElementByID(id string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	paths, err := walker.ListFiles(o.cfg.OrgDirectory, nil, nil, 0)
	if err != nil {
		return "", err
	}

	docs := make([]*orgast.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := orgast.ParseFile(filepath.Join(o.cfg.OrgDirectory, p), o.cfg.OrgTodoKeywords)
		if err != nil {
			return "", err
		}
		docs = append(docs, doc)
	}

	return outline.ElementByID(docs, id)
}

// Search ranks query against every file under the org root.
func (o *OrgMode) Search(query string, tags []string, limit, snippetMaxSize int) ([]search.Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	docs, err := o.parseAllLocked()
	if err != nil {
		return nil, err
	}
	return search.SearchWithTags(docs, query, tags, limit, snippetMaxSize), nil
}

// ListTasks enumerates agenda items across org_agenda_files (spec §4.6.2).
func (o *OrgMode) ListTasks(filter agenda.Filter, limit int) ([]agenda.Item, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	files, err := o.agendaFilesLocked()
	if err != nil {
		return nil, err
	}
	return agenda.ListTasks(files, o.cfg.UnfinishedKeywords(), filter, limit), nil
}

// GetAgendaView computes the date-windowed, repeater-expanded agenda view
// (spec §4.6.3) as of now.
func (o *OrgMode) GetAgendaView(viewType agenda.ViewType, filter agenda.Filter, now time.Time) (agenda.View, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	files, err := o.agendaFilesLocked()
	if err != nil {
		return agenda.View{}, err
	}
	return agenda.GetAgendaView(files, o.cfg.UnfinishedKeywords(), viewType, filter, now), nil
}

func (o *OrgMode) agendaFilesLocked() ([]agenda.File, error) {
	paths, err := walker.ListAgendaFiles(o.cfg.OrgDirectory, o.cfg.OrgAgendaFiles)
	if err != nil {
		return nil, err
	}
	files := make([]agenda.File, 0, len(paths))
	for _, p := range paths {
		doc, err := orgast.ParseFile(filepath.Join(o.cfg.OrgDirectory, p), o.cfg.OrgTodoKeywords)
		if err != nil {
			return nil, err
		}
		files = append(files, agenda.File{Path: p, Doc: doc})
	}
	return files, nil
}

// parseAllLocked parses every .org file from the full recursive walk of
// org_directory plus org_agenda_text_search_extra_files, deduplicated by
// path, for search's broader file set.
func (o *OrgMode) parseAllLocked() ([]*orgast.Document, error) {
	paths, err := walker.ListFiles(o.cfg.OrgDirectory, nil, nil, 0)
	if err != nil {
		return nil, err
	}

	extra, err := walker.ListAgendaFiles(o.cfg.OrgDirectory, o.cfg.OrgAgendaTextSearchExtraFiles)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(paths)+len(extra))
	var all []string
	for _, p := range append(paths, extra...) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		all = append(all, p)
	}

	docs := make([]*orgast.Document, 0, len(all))
	for _, p := range all {
		doc, err := orgast.ParseFile(filepath.Join(o.cfg.OrgDirectory, p), o.cfg.OrgTodoKeywords)
		if err != nil {
			o.logger.Warn("skipping unreadable file during search", zap.String("path", p), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
