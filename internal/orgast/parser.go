package orgast

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jra3/orgmind/internal/orgerr"
)

var (
	headlineRe     = regexp.MustCompile(`^(\*+)\s+(.*)$`)
	drawerBeginRe  = regexp.MustCompile(`(?i)^\s*:PROPERTIES:\s*$`)
	drawerEndRe    = regexp.MustCompile(`(?i)^\s*:END:\s*$`)
	propertyLineRe = regexp.MustCompile(`^\s*:([^:]+):\s*(.*)$`)
	filetagsRe     = regexp.MustCompile(`(?i)^\s*#\+FILETAGS:\s*(.*)$`)
	scheduledRe    = regexp.MustCompile(`SCHEDULED:\s*(<[^>]+>|\[[^\]]+\])`)
	deadlineRe     = regexp.MustCompile(`DEADLINE:\s*(<[^>]+>|\[[^\]]+\])`)
	priorityRe     = regexp.MustCompile(`^\[#([ABCabc])\]\s*`)
	tagSegmentRe   = regexp.MustCompile(`(?:^|\s)(:[\w@#%]+(?::[\w@#%]+)*:)\s*$`)
	timestampInner = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:\s+[A-Za-z]+)?(?:\s+(\d{2}):(\d{2})(?:-(\d{2}):(\d{2}))?)?(?:\s+\+(\d+)([hdwmy]))?`)
)

// ParseFile reads path and parses it. todoKeywords is the full configured
// vocabulary (unfinished + finished); membership, not ordering, is what
// Parse needs to recognise a headline's TODO state.
func ParseFile(path string, todoKeywords []string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, orgerr.NewIoError(path, err)
	}
	return Parse(path, data, todoKeywords), nil
}

// Parse never fails: malformed or unrecognised lines are preserved as plain
// body text inside whichever headline (or the document) currently contains
// them.
func Parse(path string, src []byte, todoKeywords []string) *Document {
	source := string(src)
	lines := splitLinesWithOffsets(source)

	doc := &Document{Path: path, Source: source, Properties: map[string]string{}}

	var fileTags []string
	var headlines []*Headline
	var currentHeadline *Headline
	inDrawer := false
	var drawerTarget map[string]string

	for _, ln := range lines {
		text := ln.text
		switch {
		case filetagsRe.MatchString(text):
			m := filetagsRe.FindStringSubmatch(text)
			fileTags = append(fileTags, parseFileTagsValue(m[1])...)
		case drawerBeginRe.MatchString(text):
			inDrawer = true
			if currentHeadline != nil {
				if currentHeadline.Properties == nil {
					currentHeadline.Properties = map[string]string{}
				}
				drawerTarget = currentHeadline.Properties
			} else {
				drawerTarget = doc.Properties
			}
		case drawerEndRe.MatchString(text):
			inDrawer = false
		case inDrawer && !headlineRe.MatchString(text):
			if m := propertyLineRe.FindStringSubmatch(text); m != nil {
				drawerTarget[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
			}
		case headlineRe.MatchString(text):
			inDrawer = false
			m := headlineRe.FindStringSubmatch(text)
			level := len(m[1])
			todoState, priority, tags, titleRaw := parseHeadlineTitle(m[2], todoKeywords)
			h := &Headline{
				Level:       level,
				TitleRaw:    titleRaw,
				TodoState:   todoState,
				Priority:    priority,
				Tags:        tags,
				startOffset: ln.offset,
				lineNumber:  ln.lineNo,
				doc:         doc,
			}
			headlines = append(headlines, h)
			currentHeadline = h
		default:
			if currentHeadline == nil {
				continue
			}
			if m := scheduledRe.FindStringSubmatch(text); m != nil {
				currentHeadline.Scheduled = parseTimestamp(m[1])
			}
			if m := deadlineRe.FindStringSubmatch(text); m != nil {
				currentHeadline.Deadline = parseTimestamp(m[1])
			}
		}
	}

	for i, h := range headlines {
		end := len(source)
		for j := i + 1; j < len(headlines); j++ {
			if headlines[j].Level <= h.Level {
				end = headlines[j].startOffset
				break
			}
		}
		h.endOffset = end
	}

	doc.FileTags = fileTags
	doc.Headlines = headlines
	return doc
}

// parseHeadlineTitle splits a headline's post-stars content into its TODO
// keyword (membership-tested against todoKeywords), priority cookie, trailing
// tag segment, and the remaining title text.
func parseHeadlineTitle(content string, todoKeywords []string) (todoState string, priority Priority, tags []string, titleRaw string) {
	rest := content

	if fields := strings.Fields(rest); len(fields) > 0 {
		for _, kw := range todoKeywords {
			if kw != "|" && fields[0] == kw {
				todoState = kw
				rest = strings.TrimSpace(rest[len(fields[0]):])
				break
			}
		}
	}

	if m := priorityRe.FindStringSubmatch(rest); m != nil {
		priority = Priority(strings.ToUpper(m[1]))
		rest = rest[len(m[0]):]
	}

	if m := tagSegmentRe.FindStringSubmatch(rest); m != nil {
		tagStr := strings.Trim(m[1], ":")
		if tagStr != "" {
			tags = strings.Split(tagStr, ":")
		}
		rest = rest[:len(rest)-len(m[1])]
		rest = strings.TrimRight(rest, " \t")
	}

	titleRaw = strings.TrimSpace(rest)
	return
}

func parseFileTagsValue(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if strings.HasPrefix(v, ":") {
		v = strings.Trim(v, ":")
		if v == "" {
			return nil
		}
		return strings.Split(v, ":")
	}
	return strings.Fields(v)
}

func parseTimestamp(raw string) *Timestamp {
	isActive := strings.HasPrefix(raw, "<")
	inner := raw
	inner = strings.TrimPrefix(inner, "<")
	inner = strings.TrimPrefix(inner, "[")
	inner = strings.TrimSuffix(inner, ">")
	inner = strings.TrimSuffix(inner, "]")

	m := timestampInner.FindStringSubmatch(inner)
	if m == nil {
		return &Timestamp{Raw: raw, IsActive: isActive}
	}

	start := DateTime{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	var end *DateTime
	if m[4] != "" {
		start.Hour, start.Minute, start.HasTime = atoi(m[4]), atoi(m[5]), true
		if m[6] != "" {
			end = &DateTime{
				Year: start.Year, Month: start.Month, Day: start.Day,
				Hour: atoi(m[6]), Minute: atoi(m[7]), HasTime: true,
			}
		}
	}

	var repeater *Repeater
	if m[8] != "" {
		repeater = &Repeater{Count: atoi(m[8]), Unit: parseRepeaterUnit(m[9])}
	}

	return &Timestamp{Raw: raw, IsActive: isActive, Start: start, End: end, Repeater: repeater}
}

func parseRepeaterUnit(u string) RepeaterUnit {
	switch u {
	case "h":
		return Hour
	case "w":
		return Week
	case "m":
		return Month
	case "y":
		return Year
	default:
		return Day
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

type lineInfo struct {
	text   string
	offset int
	lineNo int
}

func splitLinesWithOffsets(s string) []lineInfo {
	var out []lineInfo
	offset := 0
	lineNo := 1
	for {
		idx := strings.IndexByte(s[offset:], '\n')
		if idx == -1 {
			if offset < len(s) {
				out = append(out, lineInfo{text: s[offset:], offset: offset, lineNo: lineNo})
			}
			return out
		}
		out = append(out, lineInfo{text: s[offset : offset+idx], offset: offset, lineNo: lineNo})
		offset += idx + 1
		lineNo++
	}
}
