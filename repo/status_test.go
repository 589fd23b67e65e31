package repo_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goabstract/picogit/repo"
)

func TestStatusReportsNewChangedAndDeleted(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r, err := repo.Init(fs, "/")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "tracked.txt", []byte("v1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "removed.txt", []byte("bye\n"), 0o644))
	require.NoError(t, r.Add([]string{"tracked.txt", "removed.txt"}))

	require.NoError(t, afero.WriteFile(fs, "tracked.txt", []byte("v2\n"), 0o644))
	require.NoError(t, fs.Remove("removed.txt"))
	require.NoError(t, afero.WriteFile(fs, "untracked.txt", []byte("new\n"), 0o644))

	changed, newFiles, deleted, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"tracked.txt"}, changed)
	assert.Equal(t, []string{"untracked.txt"}, newFiles)
	assert.Equal(t, []string{"removed.txt"}, deleted)
}

func TestStatusCleanRepoReportsNothing(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r, err := repo.Init(fs, "/")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "tracked.txt", []byte("v1\n"), 0o644))
	require.NoError(t, r.Add([]string{"tracked.txt"}))

	changed, newFiles, deleted, err := r.Status()
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Empty(t, newFiles)
	assert.Empty(t, deleted)
}

func TestDiffShowsChangedLines(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r, err := repo.Init(fs, "/")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "tracked.txt", []byte("hello\n"), 0o644))
	require.NoError(t, r.Add([]string{"tracked.txt"}))
	require.NoError(t, afero.WriteFile(fs, "tracked.txt", []byte("goodbye\n"), 0o644))

	d, err := r.Diff()
	require.NoError(t, err)
	assert.Contains(t, d, "-hello")
	assert.Contains(t, d, "+goodbye")
}

func TestDiffNoChangesIsEmpty(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r, err := repo.Init(fs, "/")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "tracked.txt", []byte("hello\n"), 0o644))
	require.NoError(t, r.Add([]string{"tracked.txt"}))

	d, err := r.Diff()
	require.NoError(t, err)
	assert.Empty(t, d)
}
