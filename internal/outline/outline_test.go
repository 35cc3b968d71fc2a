package outline_test

import (
	"testing"

	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/orgerr"
	"github.com/jra3/orgmind/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keywords = []string{"TODO", "DONE"}

func TestBuildOutlineShape(t *testing.T) {
	doc := orgast.Parse("t.org", []byte("* A\n** B\n** C\n* D\n"), keywords)
	root := outline.Build(doc)

	require.Equal(t, "Document", root.Label)
	require.Equal(t, 0, root.Level)
	require.Len(t, root.Children, 2)

	a := root.Children[0]
	assert.Equal(t, "A", a.Label)
	assert.Equal(t, 1, a.Level)
	require.Len(t, a.Children, 2)
	assert.Equal(t, "B", a.Children[0].Label)
	assert.Equal(t, "C", a.Children[1].Label)

	d := root.Children[1]
	assert.Equal(t, "D", d.Label)
	assert.Empty(t, d.Children)
}

func TestBuildOutlineDeepNesting(t *testing.T) {
	doc := orgast.Parse("t.org", []byte("* A\n*** skip level\n"), keywords)
	root := outline.Build(doc)

	require.Len(t, root.Children, 1)
	a := root.Children[0]
	require.Len(t, a.Children, 1)
	assert.Equal(t, "skip level", a.Children[0].Label)
	assert.Equal(t, 3, a.Children[0].Level)
}

func TestHeadingByPathRoundTrip(t *testing.T) {
	doc := orgast.Parse("t.org", []byte("* Project\n** Phase 1\n*** Setup\n"), keywords)

	raw, err := outline.HeadingByPath(doc, "Project/Phase 1/Setup")
	require.NoError(t, err)
	assert.Equal(t, "*** Setup\n", raw)
}

func TestHeadingByPathDisambiguatesSiblingBranches(t *testing.T) {
	src := "* Project\n** Phase 1\n*** Setup\nphase one setup\n** Phase 2\n*** Setup\nphase two setup\n"
	doc := orgast.Parse("t.org", []byte(src), keywords)

	raw, err := outline.HeadingByPath(doc, "Project/Phase 2/Setup")
	require.NoError(t, err)
	assert.Contains(t, raw, "phase two setup")
	assert.NotContains(t, raw, "phase one setup")
}

func TestHeadingByPathNotFound(t *testing.T) {
	doc := orgast.Parse("t.org", []byte("* A\n"), keywords)

	_, err := outline.HeadingByPath(doc, "A/Missing")
	require.Error(t, err)
	kind, ok := orgerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, orgerr.InvalidHeadingPath, kind)
}

func TestElementByIDFindsFirstMatchInWalkOrder(t *testing.T) {
	a := orgast.Parse("a.org", []byte("* TODO First\n:PROPERTIES:\n:ID: x\n:END:\n"), keywords)
	b := orgast.Parse("b.org", []byte("* TODO Second\n:PROPERTIES:\n:ID: x\n:END:\n"), keywords)

	raw, err := outline.ElementByID([]*orgast.Document{a, b}, "x")
	require.NoError(t, err)
	assert.Contains(t, raw, "First")
}

func TestElementByIDCaseInsensitiveKey(t *testing.T) {
	doc := orgast.Parse("t.org", []byte("* TODO Task\n:PROPERTIES:\n:Id: abc\n:END:\n"), keywords)

	raw, err := outline.ElementByID([]*orgast.Document{doc}, "abc")
	require.NoError(t, err)
	assert.Contains(t, raw, "Task")
}

func TestElementByIDValueIsCaseSensitive(t *testing.T) {
	doc := orgast.Parse("t.org", []byte("* TODO Task\n:PROPERTIES:\n:ID: ABC\n:END:\n"), keywords)

	_, err := outline.ElementByID([]*orgast.Document{doc}, "abc")
	require.Error(t, err)
	kind, ok := orgerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, orgerr.InvalidElementID, kind)
}

func TestElementByIDFindsDocumentLevelProperty(t *testing.T) {
	src := ":PROPERTIES:\n:ID: doc-id\n:END:\n* A\nbody text\n"
	doc := orgast.Parse("t.org", []byte(src), keywords)

	raw, err := outline.ElementByID([]*orgast.Document{doc}, "doc-id")
	require.NoError(t, err)
	assert.Equal(t, src, raw)
}

func TestElementByIDPrefersHeadlineOverLaterDocumentLevelMatch(t *testing.T) {
	a := orgast.Parse("a.org", []byte("* TODO First\n:PROPERTIES:\n:ID: x\n:END:\n"), keywords)
	b := orgast.Parse("b.org", []byte(":PROPERTIES:\n:ID: x\n:END:\n* TODO Second\n"), keywords)

	raw, err := outline.ElementByID([]*orgast.Document{a, b}, "x")
	require.NoError(t, err)
	assert.Contains(t, raw, "First")
}
