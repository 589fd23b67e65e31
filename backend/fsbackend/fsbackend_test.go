package fsbackend_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goabstract/picogit/backend/fsbackend"
	"github.com/goabstract/picogit/ginternals"
	"github.com/goabstract/picogit/ginternals/config"
)

func TestInit(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg := config.NewConfig(fs, "/repo")
	b := fsbackend.New(fs, cfg)

	require.NoError(t, b.Init())

	exists, err := afero.DirExists(fs, ginternals.ObjectsPath(cfg))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.DirExists(fs, ginternals.LocalBranchesPath(cfg))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.Exists(fs, ginternals.DescriptionFilePath(cfg))
	require.NoError(t, err)
	assert.True(t, exists)

	head, err := afero.ReadFile(fs, cfg.GitDirPath+"/HEAD")
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/main", string(head))

	cfgData, err := afero.ReadFile(fs, cfg.LocalConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(cfgData), "[core]")
}

func TestInitTwiceDoesNotError(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg := config.NewConfig(fs, "/repo")
	b := fsbackend.New(fs, cfg)

	require.NoError(t, b.Init())
	require.NoError(t, b.Init())
}
