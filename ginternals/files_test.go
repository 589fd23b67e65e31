package ginternals_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goabstract/picogit/ginternals"
	"github.com/goabstract/picogit/ginternals/config"
)

func TestLocalBranchFullName(t *testing.T) {
	t.Parallel()

	out := ginternals.LocalBranchFullName("my-branch/nested")
	require.Equal(t, "refs/heads/my-branch/nested", out)
}

func TestRefsPath(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{GitDirPath: ".git"}
	out := ginternals.RefsPath(cfg)
	require.Equal(t, filepath.Join(".git", "refs"), out)
}

func TestDotGitPath(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{GitDirPath: ".git"}
	out := ginternals.DotGitPath(cfg)
	require.Equal(t, ".git", out)
}

func TestLocalBranchesPath(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{GitDirPath: ".git"}
	out := ginternals.LocalBranchesPath(cfg)
	require.Equal(t, filepath.Join(".git", "refs", "heads"), out)
}

func TestObjectsPath(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{ObjectDirPath: "objects"}
	out := ginternals.ObjectsPath(cfg)
	require.Equal(t, "objects", out)
}

func TestDescriptionFilePath(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{GitDirPath: ".git"}
	out := ginternals.DescriptionFilePath(cfg)
	require.Equal(t, filepath.Join(".git", "description"), out)
}

func TestLooseObjectPath(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{ObjectDirPath: "objects"}
	out := ginternals.LooseObjectPath(cfg, "fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3")
	require.Equal(t, filepath.Join("objects", "fc", "fe68a0e44e04bd7fd564fc0b75f1ae457e18b3"), out)
}
