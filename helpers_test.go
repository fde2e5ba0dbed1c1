package commits

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/require"
)

// testRepo is a helper struct that contains a test repository and its filesystem
type testRepo struct {
	repo *Repo
	fs   fs.Filesystem
	ctx  context.Context

	// clock advances one minute per commit so committer-time ordering
	// is deterministic
	clock time.Time
}

// setupTestRepo creates a new test repository with an in-memory filesystem
func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	ctx := context.Background()
	memFS := fsb.NewInMemoryFS()

	repo, err := Init(ctx, &Options{
		FS:      memFS,
		Workdir: ".",
	})
	require.NoError(t, err, "failed to initialize test repository")
	require.NotNil(t, repo, "repository should not be nil")

	return &testRepo{
		repo:  repo,
		fs:    memFS,
		ctx:   ctx,
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// setupTestRepoWithCommit creates a test repository with an initial commit
// adding test.txt
func setupTestRepoWithCommit(t *testing.T) *testRepo {
	t.Helper()

	tr := setupTestRepo(t)
	tr.writeFile(t, "test.txt", "initial content")
	tr.commitAll(t, "Initial commit")

	return tr
}

// writeFile writes a file into the worktree
func (tr *testRepo) writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := tr.fs.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write %s", path)
}

// removeFile removes a file from the worktree and stages the deletion
func (tr *testRepo) removeFile(t *testing.T, path string) {
	t.Helper()

	err := tr.fs.Remove(path)
	require.NoError(t, err, "failed to remove %s", path)

	_, err = tr.repo.worktree.Add(path)
	require.NoError(t, err, "failed to stage removal of %s", path)
}

// moveFile renames a file in the worktree and index
func (tr *testRepo) moveFile(t *testing.T, from, to string) {
	t.Helper()

	_, err := tr.repo.worktree.Move(from, to)
	require.NoError(t, err, "failed to move %s to %s", from, to)
}

// stage adds a path to the index
func (tr *testRepo) stage(t *testing.T, path string) {
	t.Helper()

	_, err := tr.repo.worktree.Add(path)
	require.NoError(t, err, "failed to add %s", path)
}

// commitAll stages everything and commits as the default test author
func (tr *testRepo) commitAll(t *testing.T, message string) string {
	t.Helper()

	err := tr.repo.worktree.AddWithOptions(&git.AddOptions{All: true})
	require.NoError(t, err, "failed to stage changes")

	return tr.commitAs(t, message, "Test Author", "author@example.com")
}

// commitAs commits the current index with the given author identity
func (tr *testRepo) commitAs(t *testing.T, message, name, email string) string {
	t.Helper()

	tr.clock = tr.clock.Add(time.Minute)
	sig := &object.Signature{Name: name, Email: email, When: tr.clock}

	hash, err := tr.repo.worktree.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	require.NoError(t, err, "failed to create commit")

	return hash.String()
}

// commitBySHA looks up a single commit through the public sequence API
func (tr *testRepo) commitBySHA(t *testing.T, sha string) *Commit {
	t.Helper()

	iter, err := tr.repo.CommitsFrom(tr.ctx, sha, Filter{MaxCount: 1})
	require.NoError(t, err, "failed to start iteration from %s", sha)
	defer iter.Close()

	commit, err := iter.Next()
	require.NoError(t, err, "failed to get commit %s", sha)
	require.NotNil(t, commit, "commit %s should exist", sha)
	require.Equal(t, sha, commit.SHA())

	return commit
}

// collectChanges drains a change sequence
func collectChanges(t *testing.T, iter *ChangeIter) []*Change {
	t.Helper()

	var changes []*Change
	err := iter.ForEach(func(change *Change) error {
		changes = append(changes, change)
		return nil
	})
	require.NoError(t, err, "failed to iterate changes")

	return changes
}

// collectCommits drains a commit sequence
func collectCommits(t *testing.T, iter *CommitIter) []*Commit {
	t.Helper()

	var result []*Commit
	err := iter.ForEach(func(commit *Commit) error {
		result = append(result, commit)
		return nil
	})
	require.NoError(t, err, "failed to iterate commits")

	return result
}
