package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jra3/orgmind/internal/agenda"
	"github.com/jra3/orgmind/internal/outline"
	"github.com/jra3/orgmind/internal/search"
	"github.com/mattn/go-runewidth"
)

// count renders n with thousands separators, for the "Found N ... in DIR"
// summary lines every plain-text listing command prints.
func count(n int) string { return humanize.Comma(int64(n)) }

func printJSON(w io.Writer, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}

// priorityCookie renders "[#A]" or "" to match the original tool's bracketed
// priority annotations.
func priorityCookie(p fmt.Stringer) string {
	s := p.String()
	if s == "" {
		return ""
	}
	return "[#" + s + "]"
}

// stringerPriority adapts orgast.Priority (a bare string type) to
// fmt.Stringer so priorityCookie has one shape to render regardless of
// caller.
type stringerPriority string

func (s stringerPriority) String() string { return string(s) }

// indentedOutline renders tree's children depth-first, two spaces per level,
// skipping the synthetic "Document" root itself.
func indentedOutline(tree *outline.TreeNode) string {
	var b strings.Builder
	for _, child := range tree.Children {
		writeOutlineNode(&b, child)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeOutlineNode(b *strings.Builder, node *outline.TreeNode) {
	b.WriteString(strings.Repeat("  ", node.Level-1))
	b.WriteString(node.Label)
	b.WriteString("\n")
	for _, child := range node.Children {
		writeOutlineNode(b, child)
	}
}

// padLabel right-pads s to width display cells, accounting for wide runes,
// so a fixed-width column lines up even when s contains CJK or combining
// text that a byte-counting pad would misjudge.
func padLabel(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// renderSearchTable column-aligns search results the same way
// renderTaskTable does: file paths are padded to display width with
// go-runewidth before tabwriter lays out the snippet and score columns.
func renderSearchTable(w io.Writer, results []search.Result) {
	pathWidth := 0
	for _, r := range results {
		if width := runewidth.StringWidth(r.FilePath); width > pathWidth {
			pathWidth = width
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "  %s\t%s\t(score: %d)\n", padLabel(r.FilePath, pathWidth), r.Snippet, r.Score)
	}
	tw.Flush()
}

// taskRow is one line of a plain-text task listing: a TODO-state/priority
// prefix, the heading text, a trailing location annotation, and an optional
// detail line (SCHEDULED/DEADLINE info) printed indented underneath it.
type taskRow struct {
	prefix   string
	heading  string
	location string
	detail   string
}

func taskPrefix(todoState string, priority stringerPriority) string {
	prio := priorityCookie(priority)
	prefix := todoState
	if prio != "" {
		if prefix != "" {
			prefix += " "
		}
		prefix += prio
	}
	return prefix
}

// renderTaskTable column-aligns rows with text/tabwriter. Headings are
// pre-padded to their Unicode display width via go-runewidth.FillRight
// before being handed to the tabwriter, since tabwriter measures cells by
// byte count and would misalign columns once a heading carries CJK text.
func renderTaskTable(w io.Writer, rows []taskRow) {
	headingWidth := 0
	for _, r := range rows {
		if width := runewidth.StringWidth(r.heading); width > headingWidth {
			headingWidth = width
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		prefix := r.prefix
		if prefix != "" {
			prefix += " "
		}
		fmt.Fprintf(tw, "  %s%s\t(%s)\n", prefix, padLabel(r.heading, headingWidth), r.location)
		if r.detail != "" {
			fmt.Fprintf(tw, "    %s\t\n", r.detail)
		}
	}
	tw.Flush()
}

// agendaDateInfo renders the combined SCHEDULED/DEADLINE detail line for
// plain-text agenda rendering, collapsing identical dates into one
// "SCHEDULED+DEADLINE" entry and, when the view anchored this item on a
// concrete occurrence, appending a humanize.Time relative hint ("in 3
// days") so a terminal reader doesn't have to parse the raw org timestamp.
func agendaDateInfo(item agenda.Item) string {
	var info string
	switch {
	case item.Scheduled != "" && item.Deadline != "" && item.Scheduled == item.Deadline:
		info = "SCHEDULED+DEADLINE: " + item.Scheduled
	case item.Scheduled != "" && item.Deadline != "":
		info = fmt.Sprintf("SCHEDULED: %s, DEADLINE: %s", item.Scheduled, item.Deadline)
	case item.Scheduled != "":
		info = "SCHEDULED: " + item.Scheduled
	case item.Deadline != "":
		info = "DEADLINE: " + item.Deadline
	default:
		return ""
	}
	if occur := item.OccurAt(); !occur.IsZero() {
		info += " (" + humanize.Time(occur) + ")"
	}
	return info
}
