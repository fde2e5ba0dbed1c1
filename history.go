// Package commits provides high-level history access through a clean facade.
// This file contains the commit sequence producer and its filters.
package commits

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Order selects the traversal order for commit iteration.
// The default is the underlying engine's native order.
type Order int

const (
	// OrderDefault walks the history in the engine's native order.
	OrderDefault Order = iota

	// OrderDFS walks the history depth-first from the starting commit.
	OrderDFS

	// OrderDFSPost walks the history depth-first post-order.
	OrderDFSPost

	// OrderBSF walks the history breadth-first.
	OrderBSF

	// OrderCommitterTime walks the history from newest to oldest committer time.
	OrderCommitterTime

	// OrderCommitterTimeReverse walks the history from oldest to newest
	// committer time. This buffers the remaining history before yielding
	// the first commit.
	OrderCommitterTimeReverse
)

// Filter configures which commits a sequence includes.
// The zero value includes every commit reachable from the starting point.
type Filter struct {
	// Since limits the sequence to commits after the specified time.
	Since *time.Time

	// Until limits the sequence to commits before the specified time.
	Until *time.Time

	// Author filters commits by author or committer name/email substring.
	Author string

	// Paths filters commits to those that modified the specified path(s).
	Paths []string

	// MaxCount limits the number of commits returned.
	// If 0, all matching commits are returned.
	MaxCount int

	// Order selects the traversal order.
	Order Order
}

// CommitIter is a lazy, forward-only sequence of commits. It borrows from the
// Repo that produced it and should be closed when no longer needed to free
// resources.
type CommitIter struct {
	repo *Repo
	iter object.CommitIter
}

// Next returns the next commit in the sequence.
// It returns nil, nil when the sequence is exhausted.
func (ci *CommitIter) Next() (*Commit, error) {
	commit, err := ci.iter.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, WrapError(err, "failed to get next commit")
	}
	return &Commit{repo: ci.repo, commit: commit}, nil
}

// ForEach executes the provided function for each commit in the sequence.
// Iteration stops if the function returns an error; returning ErrStop ends
// the iteration without an error.
func (ci *CommitIter) ForEach(fn func(*Commit) error) error {
	for {
		commit, err := ci.Next()
		if err != nil {
			return err
		}
		if commit == nil {
			return nil
		}
		if err := fn(commit); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// Close closes the iterator and releases any associated resources.
func (ci *CommitIter) Close() {
	ci.iter.Close()
}

// Commits returns a lazy commit sequence starting at HEAD, with the given
// filter applied. A fresh call restarts from HEAD. An empty repository yields
// an empty sequence rather than an error.
//
// Context cancellation is honored while the sequence is consumed.
func (r *Repo) Commits(ctx context.Context, f Filter) (*CommitIter, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return &CommitIter{repo: r, iter: emptyCommitIter{}}, nil
		}
		return nil, WrapError(err, "failed to resolve HEAD")
	}

	return r.log(head.Hash(), f)
}

// CommitsFrom returns a lazy commit sequence starting at the given revision
// (a commit hash, branch, tag, or any revision spec the engine understands).
func (r *Repo) CommitsFrom(ctx context.Context, rev string, f Filter) (*CommitIter, error) {
	hash, err := r.resolveCommit(rev)
	if err != nil {
		return nil, err
	}

	return r.log(hash, f)
}

// WalkCommits runs fn for every commit in the filtered sequence from HEAD.
// Returning ErrStop from fn ends the walk without an error.
func (r *Repo) WalkCommits(ctx context.Context, f Filter, fn func(*Commit) error) error {
	iter, err := r.Commits(ctx, f)
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(fn)
}

// CountCommits returns the number of commits reachable from HEAD.
func (r *Repo) CountCommits(ctx context.Context) (int, error) {
	iter, err := r.Commits(ctx, Filter{})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(*Commit) error {
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// log builds the underlying engine iterator for the given starting hash and
// decorates it per the filter.
func (r *Repo) log(from plumbing.Hash, f Filter) (*CommitIter, error) {
	logOpts := &git.LogOptions{From: from}

	if f.Since != nil {
		logOpts.Since = f.Since
	}
	if f.Until != nil {
		logOpts.Until = f.Until
	}

	if len(f.Paths) > 0 {
		paths := f.Paths
		logOpts.PathFilter = func(path string) bool {
			for _, filterPath := range paths {
				if strings.Contains(path, filterPath) {
					return true
				}
			}
			return false
		}
	}

	switch f.Order {
	case OrderDFS:
		logOpts.Order = git.LogOrderDFS
	case OrderDFSPost:
		logOpts.Order = git.LogOrderDFSPost
	case OrderBSF:
		logOpts.Order = git.LogOrderBSF
	case OrderCommitterTime, OrderCommitterTimeReverse:
		logOpts.Order = git.LogOrderCommitterTime
	}

	iter, err := r.repo.Log(logOpts)
	if err != nil {
		return nil, WrapError(err, "failed to create commit iterator")
	}

	if f.Author != "" {
		iter = &authorFilteredIter{inner: iter, author: f.Author}
	}

	if f.Order == OrderCommitterTimeReverse {
		iter = &reverseIter{inner: iter}
	}

	if f.MaxCount > 0 {
		iter = &limitedIter{inner: iter, remaining: f.MaxCount}
	}

	return &CommitIter{repo: r, iter: iter}, nil
}

// resolveCommit resolves a revision spec to a commit hash.
func (r *Repo) resolveCommit(rev string) (plumbing.Hash, error) {
	if rev == "" {
		return plumbing.ZeroHash, WrapError(ErrInvalidRef, "revision cannot be empty")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, WrapErrorf(ErrResolveFailed, "failed to resolve %q", rev)
	}

	return *hash, nil
}

// forEachCommit drives an engine iterator with go-git's ForEach contract:
// storer.ErrStop from fn ends the iteration without an error.
func forEachCommit(iter object.CommitIter, fn func(*object.Commit) error) error {
	for {
		commit, err := iter.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := fn(commit); err != nil {
			if errors.Is(err, storer.ErrStop) {
				return nil
			}
			return err
		}
	}
}

// emptyCommitIter is the engine iterator of an empty repository.
type emptyCommitIter struct{}

func (emptyCommitIter) Next() (*object.Commit, error) { return nil, io.EOF }

func (emptyCommitIter) ForEach(func(*object.Commit) error) error { return nil }

func (emptyCommitIter) Close() {}

// authorFilteredIter yields only commits whose author or committer matches
// the given name/email substring.
type authorFilteredIter struct {
	inner  object.CommitIter
	author string
}

func (a *authorFilteredIter) Next() (*object.Commit, error) {
	for {
		commit, err := a.inner.Next()
		if err != nil {
			return nil, err
		}

		authorMatch := strings.Contains(commit.Author.Name, a.author) ||
			strings.Contains(commit.Author.Email, a.author)
		committerMatch := strings.Contains(commit.Committer.Name, a.author) ||
			strings.Contains(commit.Committer.Email, a.author)

		if authorMatch || committerMatch {
			return commit, nil
		}
	}
}

func (a *authorFilteredIter) ForEach(fn func(*object.Commit) error) error {
	return forEachCommit(a, fn)
}

func (a *authorFilteredIter) Close() {
	a.inner.Close()
}

// limitedIter caps the number of commits yielded.
type limitedIter struct {
	inner     object.CommitIter
	remaining int
}

func (l *limitedIter) Next() (*object.Commit, error) {
	if l.remaining <= 0 {
		return nil, io.EOF
	}

	commit, err := l.inner.Next()
	if err != nil {
		return nil, err
	}

	l.remaining--
	return commit, nil
}

func (l *limitedIter) ForEach(fn func(*object.Commit) error) error {
	return forEachCommit(l, fn)
}

func (l *limitedIter) Close() {
	l.inner.Close()
}

// reverseIter replays the inner sequence oldest-first. The inner sequence is
// drained on the first call to Next.
type reverseIter struct {
	inner   object.CommitIter
	buf     []*object.Commit
	drained bool
}

func (v *reverseIter) Next() (*object.Commit, error) {
	if !v.drained {
		for {
			commit, err := v.inner.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, err
			}
			v.buf = append(v.buf, commit)
		}
		v.drained = true
	}

	if len(v.buf) == 0 {
		return nil, io.EOF
	}

	commit := v.buf[len(v.buf)-1]
	v.buf = v.buf[:len(v.buf)-1]
	return commit, nil
}

func (v *reverseIter) ForEach(fn func(*object.Commit) error) error {
	return forEachCommit(v, fn)
}

func (v *reverseIter) Close() {
	v.inner.Close()
}
