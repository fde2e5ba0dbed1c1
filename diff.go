// Package commits provides high-level history access through a clean facade.
// This file contains diff-related operations for comparing revisions.
package commits

import (
	"context"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// PatchText represents unified diff text between two revisions.
type PatchText struct {
	// Text contains the unified diff in string format.
	Text string

	// IsBinary indicates whether the diff touches binary files.
	IsBinary bool

	// FileCount indicates the number of files that have changes.
	FileCount int
}

// Diff computes the diff between two revisions and returns unified diff text.
// The revisions 'a' and 'b' can be any valid revision specifiers (commit
// hashes, branch names, tags, etc.).
//
// Filters are applied progressively - a change must pass ALL filters to be
// included. If no filters are provided, all changes are included.
//
// Context cancellation is honored during the diff and patch computation.
func (r *Repo) Diff(ctx context.Context, a, b string, filters ...ChangeFilter) (*PatchText, error) {
	treeA, err := r.treeForRevision(a)
	if err != nil {
		return nil, err
	}
	treeB, err := r.treeForRevision(b)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, treeA, treeB, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, WrapError(err, "failed to compute changes")
	}

	filtered, err := filterEngineChanges(r, changes, filters)
	if err != nil {
		return nil, err
	}

	patch, err := filtered.PatchContext(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to generate patch")
	}

	isBinary := false
	for _, filePatch := range patch.FilePatches() {
		if filePatch.IsBinary() {
			isBinary = true
			break
		}
	}

	return &PatchText{
		Text:      patch.String(),
		IsBinary:  isBinary,
		FileCount: len(filtered),
	}, nil
}

// treeForRevision resolves a revision and returns its tree.
func (r *Repo) treeForRevision(rev string) (*object.Tree, error) {
	hash, err := r.resolveCommit(rev)
	if err != nil {
		return nil, err
	}

	return r.treeForHash(hash)
}

func (r *Repo) treeForHash(hash plumbing.Hash) (*object.Tree, error) {
	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, WrapError(err, "failed to get commit object")
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, WrapError(err, "failed to get tree")
	}

	return tree, nil
}

// filterEngineChanges keeps the engine diff entries whose Change record
// passes all filters. Entries that produce no record (e.g. submodules) are
// dropped along the way.
func filterEngineChanges(r *Repo, changes object.Changes, filters []ChangeFilter) (object.Changes, error) {
	if len(filters) == 0 {
		return changes, nil
	}

	var filtered object.Changes
	for _, engineChange := range changes {
		change, _, err := extractChange(r, engineChange)
		if err != nil {
			return nil, err
		}
		if change == nil {
			continue
		}
		if AndFilter(filters...)(change) {
			filtered = append(filtered, engineChange)
		}
	}
	return filtered, nil
}
