// Package fsbackend is the on-disk object/reference store: a plain
// directory laid out the way .git is, with loose objects and plain-text
// refs. There is no packfile-backed lookup path and no object cache — per
// spec.md §5 this core is single-writer, so neither buys anything.
package fsbackend

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/goabstract/picogit/ginternals"
	"github.com/goabstract/picogit/ginternals/config"
)

// Backend stores a repository's objects and references on disk, rooted at
// cfg.GitDirPath.
type Backend struct {
	fs  afero.Fs
	cfg *config.Config
}

// New returns a Backend for the repository described by cfg.
func New(fs afero.Fs, cfg *config.Config) *Backend {
	return &Backend{fs: fs, cfg: cfg}
}

// Init creates the .git directory layout: objects/, refs/heads/, a
// description file, HEAD pointing at refs/heads/main, and a default config.
func (b *Backend) Init() error {
	if err := b.fs.MkdirAll(ginternals.ObjectsPath(b.cfg), 0o755); err != nil {
		return fmt.Errorf("could not create objects directory: %w", err)
	}
	if err := b.fs.MkdirAll(ginternals.LocalBranchesPath(b.cfg), 0o755); err != nil {
		return fmt.Errorf("could not create refs/heads directory: %w", err)
	}

	if err := afero.WriteFile(b.fs, ginternals.DescriptionFilePath(b.cfg),
		[]byte("Unnamed repository; edit this file to name it for gitweb.\n"), 0o644); err != nil {
		return fmt.Errorf("could not write description file: %w", err)
	}

	// WriteReferenceSafe, not WriteReference: a second Init on an already
	// initialized repo must not stomp on HEAD.
	head := ginternals.NewSymbolicReference(ginternals.Head, ginternals.LocalBranchFullName("main"))
	if err := b.WriteReferenceSafe(head); err != nil && !errors.Is(err, ErrRefExists) {
		return fmt.Errorf("could not write HEAD: %w", err)
	}

	cfgFile, err := config.LoadFile(b.fs, b.cfg.LocalConfigPath)
	if err != nil {
		return fmt.Errorf("could not load default config: %w", err)
	}
	if err := cfgFile.Save(); err != nil {
		return fmt.Errorf("could not persist default config: %w", err)
	}

	return nil
}
