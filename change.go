// Package commits provides high-level history access through a clean facade.
// This file contains the per-file change record and its kind tag.
package commits

import "fmt"

// ChangeKind tags the type of a file-level change.
type ChangeKind int

const (
	// ChangeKindAdded marks a file introduced by the commit.
	ChangeKindAdded ChangeKind = iota

	// ChangeKindModified marks a file whose content changed.
	ChangeKindModified

	// ChangeKindDeleted marks a file removed by the commit.
	ChangeKindDeleted

	// ChangeKindRenamed marks a file moved to a new path.
	ChangeKindRenamed
)

// String returns a human-readable name for the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	case ChangeKindRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter status code for the change kind,
// as seen in `git status` output (A, M, D, R).
func (k ChangeKind) Letter() byte {
	switch k {
	case ChangeKindAdded:
		return 'A'
	case ChangeKindModified:
		return 'M'
	case ChangeKindDeleted:
		return 'D'
	case ChangeKindRenamed:
		return 'R'
	default:
		return '?'
	}
}

// Symbol returns a compact symbol for the change kind (+, ~, -, >).
func (k ChangeKind) Symbol() byte {
	switch k {
	case ChangeKindAdded:
		return '+'
	case ChangeKindModified:
		return '~'
	case ChangeKindDeleted:
		return '-'
	case ChangeKindRenamed:
		return '>'
	default:
		return '?'
	}
}

// Change is a single file-level difference between a commit and its parent,
// tagged by Kind. It is produced transiently per diff entry and has no
// identity beyond the iteration that yielded it.
//
// Field applicability per kind:
//   - Added: Path, Size
//   - Modified: Path, OldSize, NewSize
//   - Deleted: Path, Size
//   - Renamed: Path (new path), OldPath, Size
type Change struct {
	// Kind tags the type of the change.
	Kind ChangeKind

	// Path is the file path after the change. For deletions it is the path
	// of the removed file.
	Path string

	// OldPath is the path before a rename. Empty for other kinds.
	OldPath string

	// Size is the blob size in bytes for added, deleted, and renamed files.
	Size int64

	// OldSize is the blob size in bytes before a modification.
	OldSize int64

	// NewSize is the blob size in bytes after a modification.
	NewSize int64
}

// String renders the change as a status line.
func (c *Change) String() string {
	switch c.Kind {
	case ChangeKindModified:
		return fmt.Sprintf("%c %s (%d -> %d bytes)", c.Kind.Letter(), c.Path, c.OldSize, c.NewSize)
	case ChangeKindRenamed:
		return fmt.Sprintf("%c %s -> %s (%d bytes)", c.Kind.Letter(), c.OldPath, c.Path, c.Size)
	default:
		return fmt.Sprintf("%c %s (%d bytes)", c.Kind.Letter(), c.Path, c.Size)
	}
}
