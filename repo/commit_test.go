package repo_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goabstract/picogit/repo"
)

func TestCommitWithAuthorOverride(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r, err := repo.Init(fs, "/")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "hello.txt", []byte("hello\n"), 0o644))
	require.NoError(t, r.Add([]string{"hello.txt"}))

	id, err := r.Commit(repo.CommitOptions{Message: "first commit", Author: "Ada Lovelace <ada@example.com>"})
	require.NoError(t, err)
	assert.False(t, id.IsZero())
}

func TestCommitTwiceChainsParent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r, err := repo.Init(fs, "/")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "hello.txt", []byte("v1\n"), 0o644))
	require.NoError(t, r.Add([]string{"hello.txt"}))
	first, err := r.Commit(repo.CommitOptions{Message: "first", Author: "Ada Lovelace <ada@example.com>"})
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "hello.txt", []byte("v2\n"), 0o644))
	require.NoError(t, r.Add([]string{"hello.txt"}))
	second, err := r.Commit(repo.CommitOptions{Message: "second", Author: "Ada Lovelace <ada@example.com>"})
	require.NoError(t, err)

	assert.NotEqual(t, first.String(), second.String())
}

func TestCommitMissingAuthorEnvFails(t *testing.T) {
	t.Setenv("AUTHOR_NAME", "")
	t.Setenv("AUTHOR_EMAIL", "")

	fs := afero.NewMemMapFs()
	r, err := repo.Init(fs, "/")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "hello.txt", []byte("hello\n"), 0o644))
	require.NoError(t, r.Add([]string{"hello.txt"}))

	_, err = r.Commit(repo.CommitOptions{Message: "no author"})
	require.Error(t, err)
}

func TestCommitNestedPathFails(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	r, err := repo.Init(fs, "/")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "sub/hello.txt", []byte("hello\n"), 0o644))
	require.NoError(t, r.Add([]string{"sub/hello.txt"}))

	_, err = r.WriteTree()
	require.ErrorIs(t, err, repo.ErrNestedTreeUnsupported)
}
