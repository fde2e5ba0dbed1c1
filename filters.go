package commits

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ChangeFilter is a predicate over a single Change. A change must pass ALL
// filters applied to a sequence to be included.
type ChangeFilter func(*Change) bool

// KindFilter creates a filter that includes changes of the given kinds.
func KindFilter(kinds ...ChangeKind) ChangeFilter {
	return func(change *Change) bool {
		for _, kind := range kinds {
			if change.Kind == kind {
				return true
			}
		}
		return false
	}
}

// PathFilter creates a filter that includes changes whose path matches the
// given glob pattern. Doublestar patterns are supported (e.g. "src/**/*.go").
// Both the old and new path of a rename are matched.
func PathFilter(pattern string) ChangeFilter {
	return func(change *Change) bool {
		if matched, _ := doublestar.Match(pattern, change.Path); matched {
			return true
		}
		if change.OldPath != "" {
			if matched, _ := doublestar.Match(pattern, change.OldPath); matched {
				return true
			}
		}
		return false
	}
}

// PathPrefixFilter creates a filter that includes changes with paths starting
// with the given prefix. This is useful for filtering by directory.
func PathPrefixFilter(prefix string) ChangeFilter {
	return func(change *Change) bool {
		return strings.HasPrefix(change.Path, prefix) ||
			(change.OldPath != "" && strings.HasPrefix(change.OldPath, prefix))
	}
}

// ExtensionFilter creates a filter that includes changes for files with the
// given extensions. Extensions should include the dot (e.g. ".go", ".md").
func ExtensionFilter(extensions ...string) ChangeFilter {
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}

	return func(change *Change) bool {
		if extSet[strings.ToLower(filepath.Ext(change.Path))] {
			return true
		}
		if change.OldPath != "" && extSet[strings.ToLower(filepath.Ext(change.OldPath))] {
			return true
		}
		return false
	}
}

// AndFilter combines multiple filters with AND logic - all must pass.
func AndFilter(filters ...ChangeFilter) ChangeFilter {
	return func(change *Change) bool {
		for _, filter := range filters {
			if filter != nil && !filter(change) {
				return false
			}
		}
		return true
	}
}

// OrFilter combines multiple filters with OR logic - at least one must pass.
func OrFilter(filters ...ChangeFilter) ChangeFilter {
	return func(change *Change) bool {
		for _, filter := range filters {
			if filter != nil && filter(change) {
				return true
			}
		}
		return false
	}
}

// NotFilter creates a filter that inverts the result of another filter.
func NotFilter(filter ChangeFilter) ChangeFilter {
	return func(change *Change) bool {
		return filter == nil || !filter(change)
	}
}
