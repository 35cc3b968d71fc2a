package cli

import (
	"strings"
	"testing"

	"github.com/jra3/orgmind/internal/agenda"
	"github.com/jra3/orgmind/internal/outline"
	"github.com/jra3/orgmind/internal/search"
	"github.com/stretchr/testify/assert"
)

func TestIndentedOutlineSkipsDocumentRoot(t *testing.T) {
	tree := &outline.TreeNode{
		Label: "Document",
		Level: 0,
		Children: []*outline.TreeNode{
			{Label: "Planning", Level: 1, Children: []*outline.TreeNode{
				{Label: "Draft", Level: 2},
			}},
			{Label: "Reference", Level: 1},
		},
	}

	got := indentedOutline(tree)
	assert.Equal(t, "Planning\n  Draft\nReference", got)
}

func TestIndentedOutlineEmptyTree(t *testing.T) {
	tree := &outline.TreeNode{Label: "Document", Level: 0}
	assert.Equal(t, "", indentedOutline(tree))
}

func TestRenderSearchTableContainsEveryResult(t *testing.T) {
	var buf strings.Builder
	renderSearchTable(&buf, []search.Result{
		{FilePath: "notes.org", Snippet: "draft the proposal", Score: 42},
		{FilePath: "projects/roadmap.org", Snippet: "q3 planning", Score: 7},
	})
	out := buf.String()
	assert.Contains(t, out, "notes.org")
	assert.Contains(t, out, "draft the proposal")
	assert.Contains(t, out, "(score: 42)")
	assert.Contains(t, out, "projects/roadmap.org")
	assert.Contains(t, out, "(score: 7)")
}

func TestRenderTaskTableAlignsAndShowsDetail(t *testing.T) {
	var buf strings.Builder
	renderTaskTable(&buf, []taskRow{
		{prefix: taskPrefix("TODO", stringerPriority("A")), heading: "Ship the release", location: "agenda.org", detail: "SCHEDULED: <2025-06-02 Mon>"},
		{prefix: taskPrefix("DONE", ""), heading: "Archive old notes", location: "notes.org"},
	})
	out := buf.String()
	assert.Contains(t, out, "TODO [#A]")
	assert.Contains(t, out, "Ship the release")
	assert.Contains(t, out, "SCHEDULED: <2025-06-02 Mon>")
	assert.Contains(t, out, "DONE")
	assert.Contains(t, out, "Archive old notes")
}

func TestTaskPrefixCombinesStateAndPriority(t *testing.T) {
	assert.Equal(t, "TODO [#A]", taskPrefix("TODO", stringerPriority("A")))
	assert.Equal(t, "TODO", taskPrefix("TODO", stringerPriority("")))
	assert.Equal(t, "[#B]", taskPrefix("", stringerPriority("B")))
	assert.Equal(t, "", taskPrefix("", stringerPriority("")))
}

func TestAgendaDateInfoCollapsesIdenticalDates(t *testing.T) {
	same := agenda.Item{Scheduled: "<2025-06-02 Mon>", Deadline: "<2025-06-02 Mon>"}
	assert.Equal(t, "SCHEDULED+DEADLINE: <2025-06-02 Mon>", agendaDateInfo(same))
}

func TestAgendaDateInfoBothDifferent(t *testing.T) {
	both := agenda.Item{Scheduled: "<2025-06-02 Mon>", Deadline: "<2025-06-10 Tue>"}
	assert.Equal(t, "SCHEDULED: <2025-06-02 Mon>, DEADLINE: <2025-06-10 Tue>", agendaDateInfo(both))
}

func TestAgendaDateInfoScheduledOnly(t *testing.T) {
	s := agenda.Item{Scheduled: "<2025-06-02 Mon>"}
	assert.Equal(t, "SCHEDULED: <2025-06-02 Mon>", agendaDateInfo(s))
}

func TestAgendaDateInfoNeither(t *testing.T) {
	assert.Equal(t, "", agendaDateInfo(agenda.Item{}))
}

func TestCountFormatsThousandsSeparators(t *testing.T) {
	assert.Equal(t, "1,234", count(1234))
	assert.Equal(t, "7", count(7))
}
