package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goabstract/picogit/ginternals/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	cfg := config.NewConfig(fs, "/repo")

	assert.Equal(t, "/repo/.git", cfg.GitDirPath)
	assert.Equal(t, "/repo/.git/objects", cfg.ObjectDirPath)
	assert.Equal(t, "/repo/.git/config", cfg.LocalConfigPath)
	assert.Equal(t, "/repo/.git/index", cfg.IndexPath)
}

func TestLoadFileDefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	f, err := config.LoadFile(fs, "/repo/.git/config")
	require.NoError(t, err)
	assert.Equal(t, "0", f.RepositoryFormatVersion)
	assert.True(t, f.FileMode)
	assert.False(t, f.Bare)
}

func TestFileSaveAndReload(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := "/repo/.git/config"

	f, err := config.LoadFile(fs, path)
	require.NoError(t, err)
	f.Bare = true
	require.NoError(t, f.Save())

	reloaded, err := config.LoadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, reloaded.Bare)
	assert.Equal(t, "0", reloaded.RepositoryFormatVersion)
}
