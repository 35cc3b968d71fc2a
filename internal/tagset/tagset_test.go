package tagset_test

import (
	"testing"

	"github.com/jra3/orgmind/internal/orgast"
	"github.com/jra3/orgmind/internal/tagset"
	"github.com/stretchr/testify/assert"
)

var keywords = []string{"TODO", "DONE"}

func TestEffectiveTagsIncludesOwnAncestorAndFileTags(t *testing.T) {
	src := "#+FILETAGS: :home:\n* A :project:\n** B :urgent:\n*** C :tiny:\n"
	doc := orgast.Parse("t.org", []byte(src), keywords)

	tags := tagset.Effective(doc, 2)
	assert.ElementsMatch(t, []string{"tiny", "urgent", "project", "home"}, tags)
}

func TestEffectiveTagsDeduplicates(t *testing.T) {
	src := "#+FILETAGS: :work:\n* A :work:\n** B :work:\n"
	doc := orgast.Parse("t.org", []byte(src), keywords)

	tags := tagset.Effective(doc, 1)
	assert.Equal(t, []string{"work"}, tags)
}

func TestEffectiveTagsOnlyNearestAncestorPerLevel(t *testing.T) {
	src := "* A :a:\n** B :b:\n** C :c:\n*** D :d:\n"
	doc := orgast.Parse("t.org", []byte(src), keywords)

	// D (level 3) is nested under C (level 2), not B.
	tags := tagset.Effective(doc, 3)
	assert.ElementsMatch(t, []string{"d", "c", "a"}, tags)
	assert.NotContains(t, tags, "b")
}

func TestMatchEmptyFilterMatchesEverything(t *testing.T) {
	assert.True(t, tagset.Match([]string{"a"}, nil))
	assert.True(t, tagset.Match(nil, nil))
}

func TestMatchRequiresSubset(t *testing.T) {
	assert.True(t, tagset.Match([]string{"a", "b", "c"}, []string{"a", "b"}))
	assert.False(t, tagset.Match([]string{"a"}, []string{"a", "b"}))
	assert.False(t, tagset.Match(nil, []string{"a"}))
}
