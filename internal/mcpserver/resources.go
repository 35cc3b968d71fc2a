package mcpserver

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jra3/orgmind/internal/agenda"
	"github.com/jra3/orgmind/internal/engine"
	"github.com/jra3/orgmind/internal/orgerr"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	schemeFile    = "org"
	schemeOutline = "org-outline"
	schemeHeading = "org-heading"
	schemeID      = "org-id"
	schemeAgenda  = "org-agenda"
)

// parsedResourceURI is the result of splitting a resource URI into its
// scheme and percent-decoded path/heading components, per spec.md §4.7:
// scheme matching is case-sensitive and decoding happens before dispatch.
type parsedResourceURI struct {
	scheme  string
	path    string
	heading string // only populated for schemeHeading
}

// parseResourceURI implements the façade's own URI router (spec.md assigns
// template parsing to C9, not to the MCP SDK). A heading URI must have a
// non-empty path and a non-empty heading after the first "#"; a value with
// more than one "#" treats only the first as the separator. Any other
// malformed shape or unrecognised scheme reports ok=false, which callers
// turn into resource_not_found.
func parseResourceURI(raw string) (parsedResourceURI, bool) {
	idx := strings.Index(raw, "://")
	if idx < 0 {
		return parsedResourceURI{}, false
	}
	scheme, rest := raw[:idx], raw[idx+3:]

	switch scheme {
	case schemeFile, schemeOutline, schemeAgenda:
		decoded, err := url.PathUnescape(rest)
		if err != nil {
			return parsedResourceURI{}, false
		}
		return parsedResourceURI{scheme: scheme, path: decoded}, true

	case schemeID:
		decoded, err := url.PathUnescape(rest)
		if err != nil || decoded == "" {
			return parsedResourceURI{}, false
		}
		return parsedResourceURI{scheme: scheme, path: decoded}, true

	case schemeHeading:
		hashIdx := strings.Index(rest, "#")
		if hashIdx < 0 {
			return parsedResourceURI{}, false
		}
		rawPath, rawHeading := rest[:hashIdx], rest[hashIdx+1:]
		if rawPath == "" || rawHeading == "" {
			return parsedResourceURI{}, false
		}
		path, err := url.PathUnescape(rawPath)
		if err != nil {
			return parsedResourceURI{}, false
		}
		heading, err := url.PathUnescape(rawHeading)
		if err != nil {
			return parsedResourceURI{}, false
		}
		return parsedResourceURI{scheme: scheme, path: path, heading: heading}, true

	default:
		return parsedResourceURI{}, false
	}
}

// isOrgErrKind reports whether err is (or wraps) a core *orgerr.Error --
// every such error this surface can produce means the resource a URI names
// does not exist.
func isOrgErrKind(err error) bool {
	_, ok := orgerr.KindOf(err)
	return ok
}

// jsonResource marshals v as the JSON body of a single-content resource
// read result.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: string(body)},
		},
	}, nil
}

// textResource wraps a raw text body (file contents, a heading's raw span)
// in a single-content resource read result.
func textResource(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: mimeType, Text: text},
		},
	}
}

// dispatchResource is registered against every org*:// template; it
// re-parses the request's own URI rather than trusting whatever template
// variables the SDK's matcher extracted, so scheme dispatch and the
// heading "#" split stay centralised in parseResourceURI.
func dispatchResource(eng *engine.OrgMode) func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		log := eng.Logger().With(zap.String("request_id", uuid.NewString()), zap.String("resource_uri", uri))
		log.Debug("resource read requested")

		parsed, ok := parseResourceURI(uri)
		if !ok {
			log.Warn("resource read failed: unrecognised URI")
			return nil, mcp.ResourceNotFoundError(uri)
		}

		var result *mcp.ReadResourceResult
		var err error
		switch parsed.scheme {
		case schemeFile:
			if parsed.path == "" {
				result, err = listFilesResource(eng, uri)
			} else {
				result, err = readFileResource(eng, uri, parsed.path)
			}
		case schemeOutline:
			result, err = outlineResource(eng, uri, parsed.path)
		case schemeHeading:
			result, err = headingResource(eng, uri, parsed.path, parsed.heading)
		case schemeID:
			result, err = idResource(eng, uri, parsed.path)
		case schemeAgenda:
			result, err = agendaResource(eng, uri, parsed.path)
		default:
			log.Warn("resource read failed: unknown scheme", zap.String("scheme", parsed.scheme))
			return nil, mcp.ResourceNotFoundError(uri)
		}

		if err != nil {
			log.Info("resource read failed", zap.Error(err))
		} else {
			log.Debug("resource read completed")
		}
		return result, err
	}
}

func listFilesResource(eng *engine.OrgMode, uri string) (*mcp.ReadResourceResult, error) {
	paths, err := eng.ListFiles(nil, 0)
	if err != nil {
		return nil, resourceErr(uri, err)
	}
	if paths == nil {
		paths = []string{}
	}
	return jsonResource(uri, paths)
}

func readFileResource(eng *engine.OrgMode, uri, path string) (*mcp.ReadResourceResult, error) {
	content, err := eng.ReadFile(path)
	if err != nil {
		return nil, resourceErr(uri, err)
	}
	return textResource(uri, "text/org", content), nil
}

func outlineResource(eng *engine.OrgMode, uri, path string) (*mcp.ReadResourceResult, error) {
	tree, err := eng.GetOutline(path)
	if err != nil {
		return nil, resourceErr(uri, err)
	}
	return jsonResource(uri, tree)
}

func headingResource(eng *engine.OrgMode, uri, path, heading string) (*mcp.ReadResourceResult, error) {
	raw, err := eng.GetHeading(path, heading)
	if err != nil {
		return nil, resourceErr(uri, err)
	}
	return textResource(uri, "text/org", raw), nil
}

func idResource(eng *engine.OrgMode, uri, id string) (*mcp.ReadResourceResult, error) {
	raw, err := eng.GetElementByID(id)
	if err != nil {
		return nil, resourceErr(uri, err)
	}
	return textResource(uri, "text/org", raw), nil
}

func agendaResource(eng *engine.OrgMode, uri, spec string) (*mcp.ReadResourceResult, error) {
	now := time.Now()
	viewType, err := agenda.ParseViewType(spec, now)
	if err != nil {
		return nil, resourceErr(uri, err)
	}
	view, err := eng.GetAgendaView(viewType, agenda.Filter{}, now)
	if err != nil {
		return nil, resourceErr(uri, err)
	}
	return jsonResource(uri, view)
}

// resourceErr maps a core error to mcp.ResourceNotFoundError -- every core
// error this surface can produce (an unreadable path, an unresolvable
// heading path, an unknown :ID:, a malformed view specifier) means the
// resource this URI names does not exist.
func resourceErr(uri string, err error) error {
	if isOrgErrKind(err) {
		return mcp.ResourceNotFoundError(uri)
	}
	return err
}
