// Package search implements line-oriented fuzzy matching across parsed
// documents with Unicode-safe snippet truncation and tag post-filtering
// (spec §4.5).
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/tagset"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSnippetMaxSize is used when a caller passes a negative value,
// meaning "not specified". Passing 0 explicitly is valid and yields the
// literal "..." with no preceding text.
const DefaultSnippetMaxSize = 100

// Result is one ranked hit: a single source line, scored and truncated to
// at most snippetMaxSize Unicode scalar values.
type Result struct {
	FilePath   string   `json:"file_path"`
	Snippet    string   `json:"snippet"`
	Score      int      `json:"score"`
	Tags       []string `json:"tags"`
	LineNumber int      `json:"line_number"`
}

// line is one candidate: a source line plus the effective tags of whatever
// headline encloses it (or the file tags, if the line precedes any
// headline).
type line struct {
	filePath   string
	text       string
	folded     string
	lineNumber int
	tags       []string
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold applies diacritic folding and lower-cases, so matching is both
// accent- and case-insensitive.
func fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Search ranks every source line across docs against query using
// whitespace-tokenised, diacritic-folded fuzzy atom matching, returning at
// most limit results (limit <= 0 means unlimited) ordered by descending
// score, then file path, then line number.
func Search(docs []*orgast.Document, query string, limit, snippetMaxSize int) []Result {
	return SearchWithTags(docs, query, nil, limit, snippetMaxSize)
}

// SearchWithTags additionally requires each hit's enclosing headline (or
// file, if outside any headline) to satisfy tagset.Match against tags.
func SearchWithTags(docs []*orgast.Document, query string, tags []string, limit, snippetMaxSize int) []Result {
	if snippetMaxSize < 0 {
		snippetMaxSize = DefaultSnippetMaxSize
	}
	if strings.TrimSpace(query) == "" {
		return nil
	}

	atoms := strings.Fields(fold(query))
	lines := collectLines(docs, tags)

	var results []Result
	for _, l := range lines {
		score, matched := scoreLine(l.folded, atoms)
		if !matched {
			continue
		}
		results = append(results, Result{
			FilePath:   l.filePath,
			Snippet:    truncateSnippet(l.text, snippetMaxSize),
			Score:      score,
			Tags:       l.tags,
			LineNumber: l.lineNumber,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].FilePath != results[j].FilePath {
			return results[i].FilePath < results[j].FilePath
		}
		return results[i].LineNumber < results[j].LineNumber
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// scoreLine reports whether every atom fuzzy-matches folded (a candidate
// line is only emitted when ALL atoms match), and the sum of their
// individual match scores.
func scoreLine(folded string, atoms []string) (int, bool) {
	total := 0
	for _, atom := range atoms {
		matches := fuzzy.Find(atom, []string{folded})
		if len(matches) == 0 {
			return 0, false
		}
		total += matches[0].Score
	}
	return total, true
}

// collectLines walks every document's source text line by line, tagging
// each with the effective tags of the nearest preceding headline (or the
// file tags, before the first headline), and drops lines whose tags fail
// the filter.
func collectLines(docs []*orgast.Document, filterTags []string) []line {
	var out []line

	for _, doc := range docs {
		raw := strings.Split(doc.Source, "\n")

		headlineAt := make(map[int]int, len(doc.Headlines))
		for idx, h := range doc.Headlines {
			headlineAt[h.LineNumber()] = idx
		}

		currentHeadline := -1
		for i, text := range raw {
			lineNo := i + 1
			if idx, ok := headlineAt[lineNo]; ok {
				currentHeadline = idx
			}
			if text == "" {
				continue
			}

			var effective []string
			if currentHeadline >= 0 {
				effective = tagset.Effective(doc, currentHeadline)
			} else {
				effective = doc.FileTags
			}

			if !tagset.Match(effective, filterTags) {
				continue
			}

			out = append(out, line{
				filePath:   doc.Path,
				text:       text,
				folded:     fold(text),
				lineNumber: lineNo,
				tags:       effective,
			})
		}
	}

	return out
}

// truncateSnippet truncates s to at most max Unicode scalar values,
// appending a literal "..." when truncation occurs. max == 0 yields just
// "...".
func truncateSnippet(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
