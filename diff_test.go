package commits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T) *testRepo
		revA        string
		revB        string
		filters     []ChangeFilter
		expectError bool
		validate    func(t *testing.T, patch *PatchText)
	}{
		{
			name: "diff between commits",
			setup: func(t *testing.T) *testRepo {
				tr := setupTestRepoWithCommit(t)
				tr.writeFile(t, "test.txt", "modified content")
				tr.commitAll(t, "Second commit")
				return tr
			},
			revA: "HEAD~1",
			revB: "HEAD",
			validate: func(t *testing.T, patch *PatchText) {
				assert.Contains(t, patch.Text, "diff --git")
				assert.Contains(t, patch.Text, "test.txt")
				assert.False(t, patch.IsBinary)
				assert.Equal(t, 1, patch.FileCount)
			},
		},
		{
			name: "diff with extension filter",
			setup: func(t *testing.T) *testRepo {
				tr := setupTestRepoWithCommit(t)
				tr.writeFile(t, "file1.go", "package main\n")
				tr.writeFile(t, "file2.md", "# markdown\n")
				tr.commitAll(t, "Add multiple files")
				return tr
			},
			revA:    "HEAD~1",
			revB:    "HEAD",
			filters: []ChangeFilter{ExtensionFilter(".go")},
			validate: func(t *testing.T, patch *PatchText) {
				assert.Contains(t, patch.Text, "file1.go")
				assert.NotContains(t, patch.Text, "file2.md")
				assert.Equal(t, 1, patch.FileCount)
			},
		},
		{
			name:        "unresolvable revision",
			setup:       setupTestRepoWithCommit,
			revA:        "no-such-rev",
			revB:        "HEAD",
			expectError: true,
		},
		{
			name:        "empty revision",
			setup:       setupTestRepoWithCommit,
			revA:        "",
			revB:        "HEAD",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tt.setup(t)

			patch, err := tr.repo.Diff(tr.ctx, tt.revA, tt.revB, tt.filters...)

			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, patch)
			tt.validate(t, patch)
		})
	}
}
