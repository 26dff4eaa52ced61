package domain

import (
	"sort"
	"strings"
)

// TopLevelModule returns the first dotted component of an import path.
// This is the unit the discoverer tracks: "pkg.sub.mod" -> "pkg".
func TopLevelModule(importPath string) string {
	if i := strings.IndexByte(importPath, '.'); i >= 0 {
		return importPath[:i]
	}
	return importPath
}

// ModuleSet is the working state of a single discovery call: the module
// names found so far plus the files already scanned. It is created per
// call and discarded afterwards.
type ModuleSet struct {
	discovered map[string]struct{}
	visited    map[string]struct{}
}

// NewModuleSet returns an empty ModuleSet.
func NewModuleSet() *ModuleSet {
	return &ModuleSet{
		discovered: make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}
}

// Add records a module name. Duplicates are absorbed.
func (s *ModuleSet) Add(name string) {
	if name == "" {
		return
	}
	s.discovered[name] = struct{}{}
}

// Has reports whether a module name has been recorded.
func (s *ModuleSet) Has(name string) bool {
	_, ok := s.discovered[name]
	return ok
}

// MarkVisited records a file path as scanned and reports whether it had
// been scanned before. Paths should be absolute so the same file cannot
// be visited twice under different spellings.
func (s *ModuleSet) MarkVisited(path string) (already bool) {
	if _, ok := s.visited[path]; ok {
		return true
	}
	s.visited[path] = struct{}{}
	return false
}

// VisitedCount returns the number of files scanned so far.
func (s *ModuleSet) VisitedCount() int {
	return len(s.visited)
}

// Remove drops a module name from the set.
func (s *ModuleSet) Remove(name string) {
	delete(s.discovered, name)
}

// Sorted returns the discovered names in a stable sort order, so the
// caller can build reproducible invocation strings from them.
func (s *ModuleSet) Sorted() []string {
	out := make([]string, 0, len(s.discovered))
	for name := range s.discovered {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
