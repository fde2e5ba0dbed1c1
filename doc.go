// Package commits provides iterator-style access to the commit history of a
// git repository and to the per-file changes of each commit.
//
// This package is a thin convenience layer over go-git: repository parsing,
// diffing, tree-walking, and object storage are delegated entirely to the
// underlying engine. It operates exclusively through the project's native
// filesystem abstraction, so everything works the same on-disk and in memory.
//
// # Basic Usage
//
// Open a repository and walk its history:
//
//	repo, err := commits.OpenPath(ctx, "/path/to/repo")
//	if err != nil {
//	    // errors.Is(err, commits.ErrNotRepository) when the path isn't one
//	}
//
//	iter, err := repo.Commits(ctx, commits.Filter{})
//	if err != nil {
//	    return err
//	}
//	defer iter.Close()
//
//	for {
//	    commit, err := iter.Next()
//	    if err != nil {
//	        return err
//	    }
//	    if commit == nil {
//	        break
//	    }
//	    fmt.Printf("%s %s\n", commit.SHA()[:7], commit.Summary())
//	}
//
// # Per-Commit Changes
//
// Each commit yields a lazy sequence of file changes against its first
// parent (a root commit is diffed against the empty tree, so every file is
// reported as added):
//
//	changes, err := commit.Changes(ctx)
//	if err != nil {
//	    return err
//	}
//	err = changes.ForEach(func(change *commits.Change) error {
//	    fmt.Printf("  %s\n", change)
//	    return nil
//	})
//
// Rename detection is on: a pure rename is reported as a single Renamed
// change. A rename whose content also changed is reported as Modified
// followed by Renamed.
//
// # Filters
//
// Commit sequences accept a Filter (time window, author substring, paths,
// max count, traversal order). Change sequences and revision diffs accept
// ChangeFilter predicates:
//
//	iter, err := repo.Commits(ctx, commits.Filter{
//	    Author:   "alice",
//	    MaxCount: 10,
//	})
//
//	changes.Filter(commits.KindFilter(commits.ChangeKindAdded), commits.PathFilter("src/**/*.go"))
//
// # Error Handling
//
// Sentinel errors are checked with errors.Is:
//
//	_, err := commits.OpenPath(ctx, path)
//	if errors.Is(err, commits.ErrNotRepository) {
//	    // not a git repository
//	}
//
// Per-item failures (corrupt object, diff failure) are returned from the
// Next or ForEach call that hit them; nothing is retried.
//
// # Concurrency
//
// All operations are synchronous and blocking. A Repo and its iterators are
// not safe for concurrent use. Iterators borrow from the Repo that produced
// them and must not outlive it.
package commits
