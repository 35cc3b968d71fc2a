package mcpserver

import (
	"testing"
	"time"

	"github.com/jra3/orgmind/internal/agenda"
	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/orgerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceURIBareFileList(t *testing.T) {
	parsed, ok := parseResourceURI("org://")
	require.True(t, ok)
	assert.Equal(t, schemeFile, parsed.scheme)
	assert.Equal(t, "", parsed.path)
}

func TestParseResourceURIFilePathIsPercentDecoded(t *testing.T) {
	parsed, ok := parseResourceURI("org://projects/q3%20plan.org")
	require.True(t, ok)
	assert.Equal(t, "projects/q3 plan.org", parsed.path)
}

func TestParseResourceURIHeadingSplitsOnFirstHash(t *testing.T) {
	parsed, ok := parseResourceURI("org-heading://notes.org#Project/Phase%201/Setup")
	require.True(t, ok)
	assert.Equal(t, "notes.org", parsed.path)
	assert.Equal(t, "Project/Phase 1/Setup", parsed.heading)
}

func TestParseResourceURIHeadingMultipleHashesKeepsOnlyFirstAsSeparator(t *testing.T) {
	parsed, ok := parseResourceURI("org-heading://notes.org#Section#1")
	require.True(t, ok)
	assert.Equal(t, "notes.org", parsed.path)
	assert.Equal(t, "Section#1", parsed.heading)
}

func TestParseResourceURIHeadingRequiresNonEmptyPathAndHeading(t *testing.T) {
	_, ok := parseResourceURI("org-heading://#heading")
	assert.False(t, ok)

	_, ok = parseResourceURI("org-heading://notes.org#")
	assert.False(t, ok)

	_, ok = parseResourceURI("org-heading://notes.org")
	assert.False(t, ok)
}

func TestParseResourceURIIDRequiresNonEmptyValue(t *testing.T) {
	_, ok := parseResourceURI("org-id://")
	assert.False(t, ok)

	parsed, ok := parseResourceURI("org-id://abc-123")
	require.True(t, ok)
	assert.Equal(t, "abc-123", parsed.path)
}

func TestParseResourceURIAgendaBareAndSpecifier(t *testing.T) {
	parsed, ok := parseResourceURI("org-agenda://")
	require.True(t, ok)
	assert.Equal(t, "", parsed.path)

	parsed, ok = parseResourceURI("org-agenda://week/3")
	require.True(t, ok)
	assert.Equal(t, "week/3", parsed.path)
}

func TestParseResourceURISchemeIsCaseSensitive(t *testing.T) {
	_, ok := parseResourceURI("ORG://")
	assert.False(t, ok)
}

func TestParseResourceURIUnknownSchemeNotFound(t *testing.T) {
	_, ok := parseResourceURI("ftp://example")
	assert.False(t, ok)
}

func TestParseResourceURIRequiresSchemeSeparator(t *testing.T) {
	_, ok := parseResourceURI("not-a-uri")
	assert.False(t, ok)
}

func TestMapToolErrorNilIsNil(t *testing.T) {
	assert.Nil(t, mapToolError(nil))
}

func TestMapToolErrorInvalidDirectoryIsInvalidParams(t *testing.T) {
	err := mapToolError(orgerr.NewInvalidDirectory("/no/such/dir"))
	var pe *protocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, codeInvalidParams, pe.Code())
}

func TestMapToolErrorInvalidAgendaViewTypeIsInvalidParams(t *testing.T) {
	err := mapToolError(orgerr.NewInvalidAgendaViewType("bogus"))
	var pe *protocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, codeInvalidParams, pe.Code())
}

func TestMapToolErrorArgumentErrorIsInvalidParams(t *testing.T) {
	err := mapToolError(newArgumentError("invalid mode %q", "bogus"))
	var pe *protocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, codeInvalidParams, pe.Code())
}

func TestMapToolErrorOtherKindsAreInternalError(t *testing.T) {
	for _, err := range []error{
		orgerr.NewInvalidHeadingPath("Project/Phase 1"),
		orgerr.NewInvalidElementID("x"),
		orgerr.NewIoError("/notes/todo.org", assert.AnError),
	} {
		pe := mapToolError(err)
		var p *protocolError
		require.ErrorAs(t, pe, &p)
		assert.Equal(t, codeInternalError, p.Code())
	}
}

func TestParsePriority(t *testing.T) {
	p, err := parsePriority("B")
	require.NoError(t, err)
	assert.Equal(t, orgast.PriorityB, p)

	_, err = parsePriority("Z")
	require.Error(t, err)
	assert.Equal(t, codeInvalidParams, mapToolError(err).(*protocolError).Code())
}

func TestIntOrDefaultDistinguishesNilFromZero(t *testing.T) {
	zero := 0
	assert.Equal(t, 42, intOrDefault(nil, 42))
	assert.Equal(t, 0, intOrDefault(&zero, 42))
}

func TestBuildAgendaFilterRejectsInvalidPriority(t *testing.T) {
	_, err := buildAgendaFilter(agendaInput{Priority: "Z"})
	require.Error(t, err)
}

func TestBuildAgendaFilterPassesThroughValidFields(t *testing.T) {
	filter, err := buildAgendaFilter(agendaInput{
		TodoStates: []string{"TODO"},
		Tags:       []string{"work"},
		Priority:   "A",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"TODO"}, filter.TodoStates)
	assert.Equal(t, []string{"work"}, filter.Tags)
	require.NotNil(t, filter.Priority)
	assert.Equal(t, orgast.PriorityA, *filter.Priority)
}

func TestResolveAgendaViewTypeRequiresBothDatesTogether(t *testing.T) {
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)

	_, err := resolveAgendaViewType(agendaInput{StartDate: "2025-06-01"}, now)
	require.Error(t, err)

	_, err = resolveAgendaViewType(agendaInput{EndDate: "2025-06-01"}, now)
	require.Error(t, err)
}

func TestResolveAgendaViewTypeDefaultsToCurrentWeek(t *testing.T) {
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	wantFrom, wantTo := agenda.CurrentWeek().Window(now)

	vt, err := resolveAgendaViewType(agendaInput{}, now)
	require.NoError(t, err)
	from, to := vt.Window(now)
	assert.Equal(t, wantFrom, from)
	assert.Equal(t, wantTo, to)
}

func TestResolveAgendaViewTypeCustomRange(t *testing.T) {
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	vt, err := resolveAgendaViewType(agendaInput{StartDate: "2025-06-01", EndDate: "2025-06-10"}, now)
	require.NoError(t, err)
	from, to := vt.Window(now)
	assert.Equal(t, "2025-06-01", from.Format("2006-01-02"))
	assert.Equal(t, "2025-06-10", to.Format("2006-01-02"))
}
