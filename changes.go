// Package commits provides high-level history access through a clean facade.
// This file contains the per-commit change sequence producer.
package commits

import (
	"context"
	"errors"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// ChangeIter is a lazy sequence of file changes for a single commit. It
// borrows from the Repo that produced it and must not outlive it.
type ChangeIter struct {
	repo    *Repo
	changes object.Changes
	idx     int
	pending *Change
	filters []ChangeFilter
}

// newChangeIter computes the diff of the commit against its first parent
// (or the empty tree for a root commit) and wraps it in a lazy iterator.
func newChangeIter(ctx context.Context, c *Commit) (*ChangeIter, error) {
	tree, err := c.commit.Tree()
	if err != nil {
		return nil, WrapError(err, "failed to get commit tree")
	}

	var parentTree *object.Tree
	if c.commit.NumParents() > 0 {
		parent, err := c.commit.Parent(0)
		if err != nil {
			return nil, WrapError(err, "failed to get parent commit")
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, WrapError(err, "failed to get parent tree")
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, WrapError(err, "failed to diff trees")
	}

	return &ChangeIter{repo: c.repo, changes: changes}, nil
}

// Filter restricts the sequence to changes passing all given filters.
// It returns the same iterator for chaining.
func (it *ChangeIter) Filter(filters ...ChangeFilter) *ChangeIter {
	it.filters = append(it.filters, filters...)
	return it
}

// Next returns the next change in the sequence.
// It returns nil, nil when the sequence is exhausted.
func (it *ChangeIter) Next() (*Change, error) {
	for {
		if change := it.pending; change != nil {
			it.pending = nil
			if it.matches(change) {
				return change, nil
			}
			continue
		}

		if it.idx >= len(it.changes) {
			return nil, nil
		}

		engineChange := it.changes[it.idx]
		it.idx++

		change, next, err := extractChange(it.repo, engineChange)
		if err != nil {
			return nil, err
		}
		it.pending = next

		if change == nil || !it.matches(change) {
			continue
		}
		return change, nil
	}
}

// ForEach executes the provided function for each change in the sequence.
// Iteration stops if the function returns an error; returning ErrStop ends
// the iteration without an error.
func (it *ChangeIter) ForEach(fn func(*Change) error) error {
	for {
		change, err := it.Next()
		if err != nil {
			return err
		}
		if change == nil {
			return nil
		}
		if err := fn(change); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// Close releases the iterator. Further calls to Next return nil, nil.
func (it *ChangeIter) Close() {
	it.changes = nil
	it.idx = 0
	it.pending = nil
}

func (it *ChangeIter) matches(change *Change) bool {
	for _, filter := range it.filters {
		if filter != nil && !filter(change) {
			return false
		}
	}
	return true
}

// extractChange converts an engine diff entry into a Change record. A rename
// whose content also changed yields a Modified record followed by a Renamed
// record, so the second return carries the pending follow-up. Entries without
// a backing blob on the relevant side (e.g. submodules) yield nil.
func extractChange(r *Repo, engineChange *object.Change) (*Change, *Change, error) {
	action, err := engineChange.Action()
	if err != nil {
		return nil, nil, WrapError(err, "failed to classify change")
	}

	oldPath, oldSize, oldOK := changeFile(r, engineChange.From)
	newPath, newSize, newOK := changeFile(r, engineChange.To)

	switch action {
	case merkletrie.Insert:
		if !newOK {
			return nil, nil, nil
		}
		return &Change{Kind: ChangeKindAdded, Path: newPath, Size: newSize}, nil, nil

	case merkletrie.Delete:
		if !oldOK {
			return nil, nil, nil
		}
		return &Change{Kind: ChangeKindDeleted, Path: oldPath, Size: oldSize}, nil, nil

	case merkletrie.Modify:
		if !oldOK || !newOK {
			return nil, nil, nil
		}

		if oldPath != newPath {
			renamed := &Change{Kind: ChangeKindRenamed, Path: newPath, OldPath: oldPath, Size: newSize}
			if oldSize != newSize {
				modified := &Change{Kind: ChangeKindModified, Path: newPath, OldSize: oldSize, NewSize: newSize}
				return modified, renamed, nil
			}
			return renamed, nil, nil
		}

		return &Change{Kind: ChangeKindModified, Path: newPath, OldSize: oldSize, NewSize: newSize}, nil, nil

	default:
		return nil, nil, nil
	}
}

// changeFile resolves one side of a diff entry to its path and blob size.
// ok is false when the side does not exist or is not backed by a blob.
func changeFile(r *Repo, entry object.ChangeEntry) (path string, size int64, ok bool) {
	if entry.Name == "" {
		return "", 0, false
	}
	if !entry.TreeEntry.Mode.IsFile() {
		return "", 0, false
	}

	blob, err := r.repo.BlobObject(entry.TreeEntry.Hash)
	if err != nil {
		return "", 0, false
	}

	return entry.Name, blob.Size, true
}
