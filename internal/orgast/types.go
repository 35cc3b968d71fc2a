// Package orgast is the Org AST façade: a tolerant, line-oriented parser and
// a minimal read-only tree it can be traversed over. Parsing never fails on
// malformed input -- unrecognised constructs are preserved as opaque body
// text, and the only hard errors are I/O errors reading the source.
//
// The tokenizer/traversal architecture here -- a table of per-line lexers,
// headline levels threaded through a flat source-ordered stream, byte-offset
// spans captured alongside parsing -- follows the line-tokenizer and
// Section/Outline design used by the wider Go org-mode parsing ecosystem.
package orgast

// Priority is the parsed [#A|B|C] cookie. The zero value is "no priority".
type Priority string

const (
	PriorityA    Priority = "A"
	PriorityB    Priority = "B"
	PriorityC    Priority = "C"
	PriorityNone Priority = ""
)

// Less orders priorities A < B < C < None, matching spec §3.
func (p Priority) Less(o Priority) bool {
	return priorityRank(p) < priorityRank(o)
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityA:
		return 0
	case PriorityB:
		return 1
	case PriorityC:
		return 2
	default:
		return 3
	}
}

// RepeaterUnit is the unit of a timestamp repeater's cadence.
type RepeaterUnit int

const (
	Hour RepeaterUnit = iota
	Day
	Week
	Month
	Year
)

// Repeater is the "+N{h,d,w,m,y}" suffix of a timestamp.
type Repeater struct {
	Count int
	Unit  RepeaterUnit
}

// DateTime is a timestamp's date, with an optional wall-clock time-of-day.
type DateTime struct {
	Year, Month, Day int
	Hour, Minute     int
	HasTime          bool
}

// Timestamp is a parsed <...> (active) or [...] (inactive) org timestamp.
type Timestamp struct {
	Raw      string
	IsActive bool
	Start    DateTime
	End      *DateTime
	Repeater *Repeater
}

// Headline is one "*" line and everything up to (but not including) the next
// headline of equal or shallower level.
type Headline struct {
	Level      int
	TitleRaw   string
	TodoState  string
	Priority   Priority
	Tags       []string // explicit only; effective tags are computed by tagset
	Properties map[string]string
	Scheduled  *Timestamp
	Deadline   *Timestamp

	startOffset, endOffset int
	lineNumber             int
	doc                    *Document
}

// Raw returns the verbatim source span of the headline: its stars, title,
// tags, and body text through the next headline of equal or shallower level
// (or EOF).
func (h *Headline) Raw() string {
	return h.doc.Source[h.startOffset:h.endOffset]
}

// Position returns the byte offsets of the headline's raw span within the
// source document.
func (h *Headline) Position() (start, end int) { return h.startOffset, h.endOffset }

// LineNumber returns the 1-based source line of the headline's "*" marker.
func (h *Headline) LineNumber() int { return h.lineNumber }

// Document is one parsed .org file.
type Document struct {
	Path       string
	Source     string
	FileTags   []string
	Properties map[string]string // document-level property drawer, before the first headline
	Headlines  []*Headline        // flat, source order; hierarchy is implicit in Level
}
