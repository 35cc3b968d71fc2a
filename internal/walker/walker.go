// Package walker enumerates .org files under a configured root and resolves
// agenda file globs rooted at the same directory.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/jra3/orgmind/internal/orgerr"
)

// FileTagsFunc returns the #+FILETAGS set for the org file at the given
// root-relative path. Supplying this to ListFiles lets tag filtering compose
// without the walker depending on the AST façade.
type FileTagsFunc func(relativePath string) (map[string]struct{}, error)

// ListFiles recursively enumerates regular ".org" files under root, in a
// stable (lexical) order. When tagsFilter is non-empty, a file is kept only
// if getTags returns a superset of tagsFilter. limit truncates the result
// after filtering; limit <= 0 means unlimited.
func ListFiles(root string, tagsFilter map[string]struct{}, getTags FileTagsFunc, limit int) ([]string, error) {
	var relPaths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return orgerr.NewWalkError(path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".org") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return orgerr.NewWalkError(path, err)
		}
		relPaths = append(relPaths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if orgErr, ok := err.(*orgerr.Error); ok {
			return nil, orgErr
		}
		return nil, orgerr.NewWalkError(root, err)
	}
	sort.Strings(relPaths)

	if len(tagsFilter) > 0 {
		filtered := relPaths[:0:0]
		for _, rel := range relPaths {
			tags, err := getTags(rel)
			if err != nil {
				return nil, err
			}
			if tagsSuperset(tags, tagsFilter) {
				filtered = append(filtered, rel)
			}
		}
		relPaths = filtered
	}

	if limit > 0 && limit < len(relPaths) {
		relPaths = relPaths[:limit]
	}
	return relPaths, nil
}

func tagsSuperset(have, want map[string]struct{}) bool {
	for w := range want {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}

// ListAgendaFiles resolves each entry of patterns against root: literal
// filenames are joined directly (missing files are skipped, not an error);
// entries containing a glob metacharacter are expanded (broken globs are
// skipped). The result preserves the order of patterns, then the sorted
// order of each pattern's own matches.
func ListAgendaFiles(root string, patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			full := filepath.Join(root, pattern)
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				out = append(out, filepath.ToSlash(pattern))
			}
			continue
		}

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}
		matches, err := expandGlob(root, g)
		if err != nil {
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

func expandGlob(root string, g glob.Glob) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if g.Match(rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	return matches, err
}
