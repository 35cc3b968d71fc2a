package agenda

import (
	"sort"
	"time"

	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/tagset"
)

// File pairs a parsed document with the relative path it was read from, in
// org_agenda_files order.
type File struct {
	Path string
	Doc  *orgast.Document
}

// Filter narrows task/view enumeration.
type Filter struct {
	TodoStates []string
	Tags       []string
	Priority   *orgast.Priority // nil means unconstrained
}

func stateAllowed(state string, filter []string, unfinished map[string]struct{}) bool {
	if state == "" {
		return false
	}
	if filter != nil {
		for _, s := range filter {
			if s == state {
				return true
			}
		}
		return false
	}
	_, ok := unfinished[state]
	return ok
}

func priorityAllowed(p orgast.Priority, filter *orgast.Priority) bool {
	if filter == nil {
		return true
	}
	return p == *filter
}

// ListTasks reads every agenda file, traversing headlines in source order,
// and emits an Item for each headline that satisfies state, tag, and
// priority filters (spec §4.6.2). limit == 0 yields an empty list; limit <
// 0 means unlimited.
func ListTasks(files []File, unfinishedKeywords []string, filter Filter, limit int) []Item {
	if limit == 0 {
		return nil
	}

	unfinished := make(map[string]struct{}, len(unfinishedKeywords))
	for _, k := range unfinishedKeywords {
		unfinished[k] = struct{}{}
	}

	var out []Item
	for fileIdx, f := range files {
		for hIdx, h := range f.Doc.Headlines {
			if !stateAllowed(h.TodoState, filter.TodoStates, unfinished) {
				continue
			}
			effective := tagset.Effective(f.Doc, hIdx)
			if filter.Tags != nil && !tagset.Match(effective, filter.Tags) {
				continue
			}
			if !priorityAllowed(h.Priority, filter.Priority) {
				continue
			}

			out = append(out, toItem(f.Path, fileIdx, hIdx, h, effective))

			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

func toItem(path string, fileIdx, position int, h *orgast.Headline, tags []string) Item {
	start, end := h.Position()
	item := Item{
		FilePath:   path,
		Heading:    h.TitleRaw,
		Level:      h.Level,
		TodoState:  h.TodoState,
		Priority:   h.Priority,
		Tags:       tags,
		StartPos:   start,
		EndPos:     end,
		LineNumber: h.LineNumber(),
		file:       fileIdx,
		position:   position,
	}
	if h.Deadline != nil {
		item.Deadline = h.Deadline.Raw
	}
	if h.Scheduled != nil {
		item.Scheduled = h.Scheduled.Raw
	}
	return item
}

// View is the result of GetAgendaView: items within [StartDate, EndDate]
// (formatted YYYY-MM-DD), or unbounded for the degenerate default list.
type View struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Items     []Item  `json:"items"`
}

// GetAgendaView computes the [from, to] window for viewType and returns
// every agenda item with at least one in-window scheduled/deadline
// occurrence, ordered per spec §4.6.4 (spec §4.6.3). Finished keywords are
// only considered when filter.TodoStates explicitly names them.
func GetAgendaView(files []File, unfinishedKeywords []string, viewType ViewType, filter Filter, now time.Time) View {
	from, to := viewType.Window(now)
	loc := now.Location()

	unfinished := make(map[string]struct{}, len(unfinishedKeywords))
	for _, k := range unfinishedKeywords {
		unfinished[k] = struct{}{}
	}

	var items []Item
	for fileIdx, f := range files {
		for hIdx, h := range f.Doc.Headlines {
			if !stateAllowed(h.TodoState, filter.TodoStates, unfinished) {
				continue
			}
			effective := tagset.Effective(f.Doc, hIdx)
			if filter.Tags != nil && !tagset.Match(effective, filter.Tags) {
				continue
			}
			if !priorityAllowed(h.Priority, filter.Priority) {
				continue
			}

			earliest, ok := earliestOccurrence(h, from, to, loc)
			if !ok {
				continue
			}

			item := toItem(f.Path, fileIdx, hIdx, h, effective)
			item.occurAt = earliest
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.occurAt.Equal(b.occurAt) {
			return a.occurAt.Before(b.occurAt)
		}
		if a.Priority != b.Priority {
			return a.Priority.Less(b.Priority)
		}
		if a.file != b.file {
			return a.file < b.file
		}
		return a.position < b.position
	})

	fromStr := from.Format("2006-01-02")
	toStr := to.Format("2006-01-02")
	return View{StartDate: &fromStr, EndDate: &toStr, Items: items}
}

// earliestOccurrence returns the earliest in-[from,to] occurrence among h's
// scheduled and deadline timestamps, expanding repeaters as needed.
func earliestOccurrence(h *orgast.Headline, from, to time.Time, loc *time.Location) (time.Time, bool) {
	var best time.Time
	found := false

	consider := func(ts *orgast.Timestamp) {
		if ts == nil {
			return
		}
		for _, occ := range occurrences(ts, from, to, loc) {
			if !found || occ.Before(best) {
				best = occ
				found = true
			}
		}
	}

	consider(h.Scheduled)
	consider(h.Deadline)
	return best, found
}

// occurrences expands ts within [from, to] (spec §4.6.3).
func occurrences(ts *orgast.Timestamp, from, to time.Time, loc *time.Location) []time.Time {
	base := dateTimeToTime(ts.Start, loc)

	if ts.Repeater == nil {
		if !base.Before(from) && !base.After(to) {
			return []time.Time{base}
		}
		return nil
	}

	// Occurrence i is computed from the original base, not by compounding
	// onto the previous occurrence, so a day-of-month clamp (e.g. the 31st
	// landing on a short February) never permanently drifts later
	// occurrences back toward month-end.
	var out []time.Time
	for i := 0; ; i++ {
		occ := addRepeater(base, *ts.Repeater, i)
		if occ.After(to) {
			break
		}
		if !occ.Before(from) {
			out = append(out, occ)
		}
	}
	return out
}

func dateTimeToTime(dt orgast.DateTime, loc *time.Location) time.Time {
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day, dt.Hour, dt.Minute, 0, 0, loc)
}

// addRepeater computes the i-th occurrence of base advanced by i repeater
// cadences.
func addRepeater(base time.Time, r orgast.Repeater, i int) time.Time {
	n := r.Count * i
	switch r.Unit {
	case orgast.Hour:
		return base.Add(time.Duration(n) * time.Hour)
	case orgast.Day:
		return base.AddDate(0, 0, n)
	case orgast.Week:
		return base.AddDate(0, 0, n*7)
	case orgast.Month:
		return addMonthsClamped(base, n)
	case orgast.Year:
		return addYearsClamped(base, n)
	default:
		return base.AddDate(0, 0, n)
	}
}

// addMonthsClamped advances by n months, preserving day-of-month unless the
// target month is shorter, in which case it clamps to that month's last day.
func addMonthsClamped(t time.Time, n int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
	firstOfTarget = firstOfTarget.AddDate(0, n, 0)
	last := lastDayOfMonth(firstOfTarget)
	day := t.Day()
	if day > last.Day() {
		day = last.Day()
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// addYearsClamped advances by n years, preserving month/day; Feb 29 becomes
// Feb 28 in a non-leap target year.
func addYearsClamped(t time.Time, n int) time.Time {
	if t.Month() == time.February && t.Day() == 29 {
		targetYear := t.Year() + n
		if !isLeap(targetYear) {
			return time.Date(targetYear, time.February, 28, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
		}
	}
	return t.AddDate(n, 0, 0)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
