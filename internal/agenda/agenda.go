// Package agenda computes date-windowed, repeater-expanded projections of
// TODO items across the configured agenda files (spec §4.6, the densest
// subsystem).
package agenda

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/orgerr"
)

// Item is one agenda-visible headline: a task, its timestamps, and its
// effective tags.
type Item struct {
	FilePath   string          `json:"file_path"`
	Heading    string          `json:"heading"`
	Level      int             `json:"level"`
	TodoState  string          `json:"todo_state,omitempty"`
	Priority   orgast.Priority `json:"priority,omitempty"`
	Deadline   string          `json:"deadline,omitempty"`
	Scheduled  string          `json:"scheduled,omitempty"`
	Tags       []string        `json:"tags"`
	StartPos   int             `json:"position_start"`
	EndPos     int             `json:"position_end"`
	LineNumber int             `json:"line_number"`

	file     int
	position int
	occurAt  time.Time
}

// OccurAt reports the in-window occurrence this item was anchored on by
// GetAgendaView (the earlier of SCHEDULED/DEADLINE). Zero for items
// produced by ListTasks, which has no date window to anchor against.
func (i Item) OccurAt() time.Time { return i.occurAt }

// ViewType selects the date window an agenda view is computed over.
type ViewType struct {
	kind  viewKind
	day   time.Time
	week  int
	month int
	from  time.Time
	to    time.Time
}

type viewKind int

const (
	kindToday viewKind = iota
	kindDay
	kindCurrentWeek
	kindWeek
	kindCurrentMonth
	kindMonth
	kindCustom
)

func Today() ViewType              { return ViewType{kind: kindToday} }
func Day(d time.Time) ViewType      { return ViewType{kind: kindDay, day: d} }
func CurrentWeek() ViewType         { return ViewType{kind: kindCurrentWeek} }
func WeekOfYear(n int) ViewType     { return ViewType{kind: kindWeek, week: n} }
func CurrentMonth() ViewType        { return ViewType{kind: kindCurrentMonth} }
func MonthOfYear(m int) ViewType    { return ViewType{kind: kindMonth, month: m} }
func Custom(from, to time.Time) ViewType {
	return ViewType{kind: kindCustom, from: from, to: to}
}

// Window resolves the view type into a closed [from, to] interval of local
// date-times, relative to now.
func (v ViewType) Window(now time.Time) (from, to time.Time) {
	loc := now.Location()
	switch v.kind {
	case kindToday:
		return toStartOfDay(now), toEndOfDay(now)
	case kindDay:
		return toStartOfDay(v.day), toEndOfDay(v.day)
	case kindCurrentWeek:
		return weekWindow(now)
	case kindWeek:
		jan4 := time.Date(now.Year(), time.January, 4, 0, 0, 0, 0, loc)
		monday := isoWeekStart(jan4)
		target := monday.AddDate(0, 0, (v.week-1)*7)
		return weekWindow(target)
	case kindCurrentMonth:
		return monthWindow(now)
	case kindMonth:
		first := time.Date(now.Year(), time.Month(v.month), 1, 0, 0, 0, 0, loc)
		return monthWindow(first)
	case kindCustom:
		return v.from, v.to
	default:
		return weekWindow(now)
	}
}

func weekWindow(ref time.Time) (time.Time, time.Time) {
	monday := isoWeekStart(ref)
	sunday := monday.AddDate(0, 0, 6)
	return toStartOfDay(monday), toEndOfDay(sunday)
}

func isoWeekStart(ref time.Time) time.Time {
	weekday := int(ref.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday -> 7, so Monday is day 1
	}
	return toStartOfDay(ref.AddDate(0, 0, -(weekday - 1)))
}

func monthWindow(ref time.Time) (time.Time, time.Time) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := lastDayOfMonth(first)
	return toStartOfDay(first), toEndOfDay(last)
}

// ParseViewType parses a string specifier per spec §4.6.1.
func ParseViewType(s string, now time.Time) (ViewType, error) {
	switch {
	case s == "":
		return CurrentWeek(), nil
	case s == "today":
		return Today(), nil
	case s == "week":
		return CurrentWeek(), nil
	case s == "month":
		return CurrentMonth(), nil
	case strings.HasPrefix(s, "day/"):
		d, err := ParseDateString(strings.TrimPrefix(s, "day/"), "day view")
		if err != nil {
			return ViewType{}, err
		}
		return Day(d), nil
	case strings.HasPrefix(s, "week/"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "week/"))
		if err != nil || n < 1 || n > 53 {
			return ViewType{}, orgerr.NewInvalidAgendaViewType(s)
		}
		return WeekOfYear(n), nil
	case strings.HasPrefix(s, "month/"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "month/"))
		if err != nil || n < 1 || n > 12 {
			return ViewType{}, orgerr.NewInvalidAgendaViewType(s)
		}
		return MonthOfYear(n), nil
	case strings.HasPrefix(s, "query/from/"):
		rest := strings.TrimPrefix(s, "query/from/")
		parts := strings.SplitN(rest, "/to/", 2)
		if len(parts) != 2 {
			return ViewType{}, orgerr.NewInvalidAgendaViewType(s)
		}
		from, err := ParseDateString(parts[0], "query from date")
		if err != nil {
			return ViewType{}, err
		}
		to, err := ParseDateString(parts[1], "query to date")
		if err != nil {
			return ViewType{}, err
		}
		if from.After(to) {
			return ViewType{}, orgerr.NewInvalidAgendaViewType(s)
		}
		return Custom(toStartOfDay(from), toEndOfDay(to)), nil
	default:
		return ViewType{}, orgerr.NewInvalidAgendaViewType(s)
	}
}

// ParseDateString parses a strict YYYY-MM-DD date. context is embedded in
// the error when parsing fails.
func ParseDateString(s, context string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, orgerr.NewInvalidAgendaViewType(fmt.Sprintf("%s: %s", context, s))
	}
	return t, nil
}

func toStartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func toEndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

func lastDayOfMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1)
}

// naiveDateToLocal attaches wall-clock time-of-day to a date in the local
// timezone.
func naiveDateToLocal(year, month, day, hour, minute, second int) time.Time {
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
}
