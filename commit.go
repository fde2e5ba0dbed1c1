// Package commits provides high-level history access through a clean facade.
// This file contains the commit snapshot type and its signatures.
package commits

import (
	"context"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is an immutable snapshot of a single commit produced during
// iteration. It stays valid only while the Repo that produced it is open.
type Commit struct {
	repo   *Repo
	commit *object.Commit
}

// SHA returns the full hex identifier of the commit.
func (c *Commit) SHA() string {
	return c.commit.Hash.String()
}

// Message returns the full commit message.
func (c *Commit) Message() string {
	return c.commit.Message
}

// Summary returns the first line of the commit message, trimmed.
func (c *Commit) Summary() string {
	msg := strings.TrimSpace(c.commit.Message)
	if idx := strings.IndexByte(msg, '\n'); idx != -1 {
		msg = msg[:idx]
	}
	return strings.TrimSpace(msg)
}

// Author returns the author signature of the commit.
func (c *Commit) Author() Signature {
	return newSignature(c.commit.Author)
}

// Committer returns the committer signature of the commit.
func (c *Commit) Committer() Signature {
	return newSignature(c.commit.Committer)
}

// When returns the committer time of the commit.
func (c *Commit) When() time.Time {
	return c.commit.Committer.When
}

// Changes returns a lazy sequence of file changes introduced by this commit,
// diffed against its first parent, or against the empty tree for a root
// commit. Rename detection is performed by the underlying engine.
//
// Context cancellation is honored during the diff computation.
func (c *Commit) Changes(ctx context.Context) (*ChangeIter, error) {
	return newChangeIter(ctx, c)
}

// Signature identifies the author or committer of a commit.
type Signature struct {
	// Name is the author's or committer's name.
	Name string

	// Email is the author's or committer's email address.
	Email string

	// When is the timestamp for the signature.
	When time.Time
}

func newSignature(sig object.Signature) Signature {
	return Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When,
	}
}

// String renders the signature in the conventional "Name <email>" form.
func (s Signature) String() string {
	return s.Name + " <" + s.Email + ">"
}
