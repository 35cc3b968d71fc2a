// Package tagset computes a headline's effective tags and matches them
// against filter sets (spec §4.4).
package tagset

import "github.com/jra3/orgmind/internal/orgast"

// Effective returns the tags of doc.Headlines[idx]: its own explicit tags,
// unioned with every ancestor headline's explicit tags (found by scanning
// backward for the nearest preceding headline at each strictly lower level,
// since Document.Headlines is a flat, level-tagged stream), unioned with
// the document's file tags.
func Effective(doc *orgast.Document, idx int) []string {
	h := doc.Headlines[idx]
	seen := map[string]struct{}{}
	var out []string

	add := func(tags []string) {
		for _, t := range tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}

	add(h.Tags)

	level := h.Level
	for i := idx - 1; i >= 0 && level > 1; i-- {
		anc := doc.Headlines[i]
		if anc.Level < level {
			add(anc.Tags)
			level = anc.Level
		}
	}

	add(doc.FileTags)
	return out
}

// Match reports whether filter is a subset of tags: empty filter matches
// everything; an empty tag set only matches an empty (or unset) filter.
func Match(tags, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	for _, f := range filter {
		if _, ok := set[f]; !ok {
			return false
		}
	}
	return true
}
