package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goabstract/picogit/internal/testhelper"
)

// chdirRepo creates a fresh repository in a temp directory and chdirs the
// test process into it, restoring the original working directory on
// cleanup. Tests using this helper cannot run in parallel with each other,
// since the working directory is process-global.
func chdirRepo(t *testing.T) (repoPath string) {
	t.Helper()

	dir, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)

	repoPath = filepath.Join(dir, "repo")
	require.NoError(t, initCmd(io.Discard, repoPath))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(repoPath))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(cwd))
	})

	return repoPath
}
