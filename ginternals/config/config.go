// Package config holds a repository's on-disk layout (.git paths) and its
// persisted settings ([core] section of .git/config).
package config

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/go-ini/ini"
	"github.com/spf13/afero"

	"github.com/goabstract/picogit/internal/gitpath"
)

// DefaultDotGitDirName is the name of the directory holding the repository's
// metadata.
const DefaultDotGitDirName = ".git"

// Config describes where a repository's files live on disk.
type Config struct {
	// FS is the filesystem used to look for files and directories.
	FS afero.Fs

	// GitDirPath is the path to the .git directory.
	GitDirPath string
	// WorkTreePath is the path to the directory containing the tracked files.
	WorkTreePath string
	// ObjectDirPath is the path to the .git/objects directory.
	ObjectDirPath string
	// LocalConfigPath is the path to the .git/config file.
	LocalConfigPath string
	// IndexPath is the path to the .git/index file.
	IndexPath string
}

// NewConfig builds a Config rooted at workTreePath, using the default
// on-disk layout (workTreePath/.git/...).
func NewConfig(fs afero.Fs, workTreePath string) *Config {
	gitDir := filepath.Join(workTreePath, DefaultDotGitDirName)
	return &Config{
		FS:              fs,
		WorkTreePath:    workTreePath,
		GitDirPath:      gitDir,
		ObjectDirPath:   filepath.Join(gitDir, gitpath.ObjectsPath),
		LocalConfigPath: filepath.Join(gitDir, gitpath.ConfigPath),
		IndexPath:       filepath.Join(gitDir, gitpath.IndexPath),
	}
}

// File represents the persisted [core] settings of .git/config.
type File struct {
	RepositoryFormatVersion string
	FileMode                bool
	Bare                    bool

	path string
	fs   afero.Fs
}

// LoadFile reads .git/config from disk. A missing file is not an error: it
// returns a File with Git's own defaults, ready to be saved.
func LoadFile(fs afero.Fs, path string) (*File, error) {
	f := &File{
		RepositoryFormatVersion: "0",
		FileMode:                true,
		path:                    path,
		fs:                      fs,
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("could not check for %s: %w", path, err)
	}
	if !exists {
		return f, nil
	}

	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	iniFile, err := ini.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	core := iniFile.Section("core")
	if v := core.Key("repositoryformatversion").String(); v != "" {
		f.RepositoryFormatVersion = v
	}
	f.FileMode = core.Key("filemode").MustBool(true)
	f.Bare = core.Key("bare").MustBool(false)

	return f, nil
}

// Save writes the [core] section back to disk.
func (f *File) Save() error {
	iniFile := ini.Empty()
	core, err := iniFile.NewSection("core")
	if err != nil {
		return fmt.Errorf("could not create core section: %w", err)
	}
	if _, err := core.NewKey("repositoryformatversion", f.RepositoryFormatVersion); err != nil {
		return fmt.Errorf("could not set repositoryformatversion: %w", err)
	}
	if _, err := core.NewKey("filemode", fmt.Sprintf("%t", f.FileMode)); err != nil {
		return fmt.Errorf("could not set filemode: %w", err)
	}
	if _, err := core.NewKey("bare", fmt.Sprintf("%t", f.Bare)); err != nil {
		return fmt.Errorf("could not set bare: %w", err)
	}

	w := new(bytes.Buffer)
	if _, err := iniFile.WriteTo(w); err != nil {
		return fmt.Errorf("could not render config: %w", err)
	}
	if err := afero.WriteFile(f.fs, f.path, w.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", f.path, err)
	}
	return nil
}
