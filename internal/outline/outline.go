// Package outline builds hierarchical outlines over a parsed Document and
// resolves slash-separated heading paths and ID properties (spec §4.3).
package outline

import (
	"strings"

	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/orgerr"
)

// TreeNode is one node of a built outline. The root has Level 0 and Label
// "Document"; every child's Level is strictly greater than its parent's.
type TreeNode struct {
	Label    string      `json:"label"`
	Level    int         `json:"level"`
	Children []*TreeNode `json:"children"`
}

// Build constructs the outline tree for doc using an explicit stack of
// partial nodes (spec §9 "Outline construction without borrow tangles"):
// on each headline, pop every stack entry whose level is >= the incoming
// level, then attach a fresh node for the headline as a child of the new
// top (the root once no headline is left on the stack) and push it. Nodes
// are attached when pushed, so nothing is left to flush afterwards.
func Build(doc *orgast.Document) *TreeNode {
	root := &TreeNode{Label: "Document", Level: 0}
	stack := []*TreeNode{root}

	for _, h := range doc.Headlines {
		node := &TreeNode{Label: h.TitleRaw, Level: h.Level}

		for len(stack) > 1 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return root
}

// HeadingByPath resolves a slash-separated path of exact (case-sensitive)
// headline titles, e.g. "Project/Phase 1/Setup", descending one level at a
// time from the document root, and returns the matching headline's raw
// source span.
func HeadingByPath(doc *orgast.Document, path string) (string, error) {
	h, err := findHeadline(doc, path)
	if err != nil {
		return "", err
	}
	return h.Raw(), nil
}

func findHeadline(doc *orgast.Document, path string) (*orgast.Headline, error) {
	segments := strings.Split(path, "/")
	if len(segments) == 0 || segments[0] == "" {
		return nil, orgerr.NewInvalidHeadingPath(path)
	}

	rangeStart, rangeEnd := 0, len(doc.Headlines)
	var current *orgast.Headline

	for depth, seg := range segments {
		level := depth + 1
		found := -1
		for i := rangeStart; i < rangeEnd; i++ {
			h := doc.Headlines[i]
			if h.Level == level && h.TitleRaw == seg {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, orgerr.NewInvalidHeadingPath(path)
		}

		current = doc.Headlines[found]
		subtreeEnd := rangeEnd
		for j := found + 1; j < rangeEnd; j++ {
			if doc.Headlines[j].Level <= level {
				subtreeEnd = j
				break
			}
		}
		rangeStart, rangeEnd = found+1, subtreeEnd
	}

	return current, nil
}

// ElementByID scans docs (in the given order -- normally walk order) via
// Document.Traverse for a property drawer -- a headline's or the
// document's own, before its first headline -- whose :ID: key (compared
// case-insensitively) has a value (compared case-sensitively) equal to id.
// The first match wins: a headline's raw span if the drawer belonged to a
// headline, the whole document source if it was the document-level drawer.
func ElementByID(docs []*orgast.Document, id string) (string, error) {
	for _, doc := range docs {
		v := &idFinder{id: id, doc: doc}
		doc.Traverse(v)
		if v.found {
			return v.result, nil
		}
	}
	return "", orgerr.NewInvalidElementID(id)
}

// idFinder is the orgast.Visitor ElementByID drives: it tracks the
// headline currently being entered so a matching property drawer can be
// attributed to it, or to the document itself if none is open yet.
type idFinder struct {
	orgast.NoOpVisitor
	id      string
	doc     *orgast.Document
	current *orgast.Headline
	result  string
	found   bool
}

func (f *idFinder) OnEnter(ctx *orgast.Context, ev orgast.Event) {
	switch ev.Kind {
	case orgast.KindHeadline:
		f.current = ev.Headline
	case orgast.KindPropertyDrawer:
		for k, v := range ev.Drawer {
			if strings.EqualFold(k, "id") && v == f.id {
				if f.current != nil {
					f.result = f.current.Raw()
				} else {
					f.result = f.doc.Source
				}
				f.found = true
				ctx.Stop()
				return
			}
		}
	}
}
