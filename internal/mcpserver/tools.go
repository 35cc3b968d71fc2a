package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jra3/orgmind/internal/agenda"
	"github.com/jra3/orgmind/internal/engine"
	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// requestLogger derives a per-call child logger carrying a fresh
// correlation ID, so every tool invocation's log lines can be grepped out
// of a shared stderr/file stream by request_id.
func requestLogger(eng *engine.OrgMode, tool string) *zap.Logger {
	return eng.Logger().With(zap.String("request_id", uuid.NewString()), zap.String("tool", tool))
}

// intOrDefault returns def when p is nil (the caller omitted the field
// entirely), distinguishing "unset" from an explicit 0 -- the two mean
// different things to the walker (0 == unlimited) and to the agenda engine
// (0 == empty list).
func intOrDefault(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func parsePriority(s string) (orgast.Priority, error) {
	switch s {
	case "A":
		return orgast.PriorityA, nil
	case "B":
		return orgast.PriorityB, nil
	case "C":
		return orgast.PriorityC, nil
	default:
		return "", newArgumentError("invalid priority %q: must be \"A\", \"B\", or \"C\"", s)
	}
}

type fileListInput struct {
	Tags  []string `json:"tags,omitempty"`
	Limit *int     `json:"limit,omitempty"`
}

type fileListOutput struct {
	Paths []string `json:"paths"`
}

func registerFileListTool(server *mcp.Server, eng *engine.OrgMode) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "org-file-list",
		Description: "List every .org file path under the configured org directory, relative to its root. With tags, only files whose #+FILETAGS are a superset of the given tags are returned.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in fileListInput) (*mcp.CallToolResult, fileListOutput, error) {
		log := requestLogger(eng, "org-file-list")
		var tagsFilter map[string]struct{}
		if len(in.Tags) > 0 {
			tagsFilter = make(map[string]struct{}, len(in.Tags))
			for _, t := range in.Tags {
				tagsFilter[t] = struct{}{}
			}
		}
		paths, err := eng.ListFiles(tagsFilter, intOrDefault(in.Limit, 0))
		if err != nil {
			log.Info("org-file-list failed", zap.Error(err))
			return nil, fileListOutput{}, mapToolError(err)
		}
		log.Debug("org-file-list completed", zap.Int("count", len(paths)))
		return nil, fileListOutput{Paths: paths}, nil
	})
}

type searchInput struct {
	Query          string   `json:"query"`
	Limit          *int     `json:"limit,omitempty"`
	SnippetMaxSize *int     `json:"snippet_max_size,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

type searchOutput struct {
	Results []search.Result `json:"results"`
}

func registerSearchTool(server *mcp.Server, eng *engine.OrgMode) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "org-search",
		Description: "Fuzzy-search every line across the org corpus. The query is split on whitespace into atoms; every atom must match a line (in any order) for that line to be returned, and atom scores are summed. An empty query returns no results, never an error.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in searchInput) (*mcp.CallToolResult, searchOutput, error) {
		log := requestLogger(eng, "org-search")
		results, err := eng.Search(in.Query, in.Tags, intOrDefault(in.Limit, 0), intOrDefault(in.SnippetMaxSize, -1))
		if err != nil {
			log.Info("org-search failed", zap.Error(err))
			return nil, searchOutput{}, mapToolError(err)
		}
		log.Debug("org-search completed", zap.Int("count", len(results)))
		return nil, searchOutput{Results: results}, nil
	})
}

type agendaInput struct {
	Mode       string   `json:"mode,omitempty"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	TodoStates []string `json:"todo_states,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Priority   string   `json:"priority,omitempty"`
	Limit      *int     `json:"limit,omitempty"`
}

type agendaOutput struct {
	Items     []agenda.Item `json:"items"`
	StartDate *string       `json:"start_date,omitempty"`
	EndDate   *string       `json:"end_date,omitempty"`
}

func buildAgendaFilter(in agendaInput) (agenda.Filter, error) {
	filter := agenda.Filter{TodoStates: in.TodoStates, Tags: in.Tags}
	if in.Priority != "" {
		p, err := parsePriority(in.Priority)
		if err != nil {
			return agenda.Filter{}, err
		}
		filter.Priority = &p
	}
	return filter, nil
}

// resolveAgendaViewType computes the "view" mode window: the caller's
// [start_date, end_date] pair if both are given (reusing ParseViewType's
// "query/from/.../to/..." path so day-boundary widening and from<=to
// validation aren't duplicated here), otherwise the default window.
func resolveAgendaViewType(in agendaInput, now time.Time) (agenda.ViewType, error) {
	switch {
	case in.StartDate != "" && in.EndDate != "":
		return agenda.ParseViewType(fmt.Sprintf("query/from/%s/to/%s", in.StartDate, in.EndDate), now)
	case in.StartDate != "" || in.EndDate != "":
		return agenda.ViewType{}, newArgumentError("start_date and end_date must both be provided")
	default:
		return agenda.ParseViewType("", now)
	}
}

func registerAgendaTool(server *mcp.Server, eng *engine.OrgMode) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "org-agenda",
		Description: `Query TODO items across the configured agenda files. mode "list" ` +
			`(the default) returns every matching item with no date window. mode "view" ` +
			`computes a date-windowed, repeater-expanded view over [start_date, end_date] ` +
			`when both are given, else the current-week default window.`,
	}, func(ctx context.Context, req *mcp.CallToolRequest, in agendaInput) (*mcp.CallToolResult, agendaOutput, error) {
		log := requestLogger(eng, "org-agenda")
		filter, err := buildAgendaFilter(in)
		if err != nil {
			log.Info("org-agenda failed", zap.Error(err))
			return nil, agendaOutput{}, mapToolError(err)
		}

		mode := in.Mode
		if mode == "" {
			mode = "list"
		}
		now := time.Now()

		switch mode {
		case "list":
			items, err := eng.ListTasks(filter, intOrDefault(in.Limit, -1))
			if err != nil {
				log.Info("org-agenda failed", zap.Error(err))
				return nil, agendaOutput{}, mapToolError(err)
			}
			log.Debug("org-agenda completed", zap.String("mode", mode), zap.Int("count", len(items)))
			return nil, agendaOutput{Items: items}, nil

		case "view":
			viewType, err := resolveAgendaViewType(in, now)
			if err != nil {
				log.Info("org-agenda failed", zap.Error(err))
				return nil, agendaOutput{}, mapToolError(err)
			}
			view, err := eng.GetAgendaView(viewType, filter, now)
			if err != nil {
				log.Info("org-agenda failed", zap.Error(err))
				return nil, agendaOutput{}, mapToolError(err)
			}
			log.Debug("org-agenda completed", zap.String("mode", mode), zap.Int("count", len(view.Items)))
			return nil, agendaOutput{Items: view.Items, StartDate: view.StartDate, EndDate: view.EndDate}, nil

		default:
			log.Info("org-agenda failed: invalid mode", zap.String("mode", mode))
			return nil, agendaOutput{}, mapToolError(newArgumentError("invalid mode %q: must be \"list\" or \"view\"", mode))
		}
	})
}
