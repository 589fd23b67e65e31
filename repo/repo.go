// Package repo orchestrates the object store, index, reachability walk,
// pack encoder, and receive-pack client into the operations the command
// surface calls: init, add, status, diff, commit, and push (spec.md §2's
// "data flow for the canonical commit and push path").
package repo

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/goabstract/picogit/backend/fsbackend"
	"github.com/goabstract/picogit/ginternals"
	"github.com/goabstract/picogit/ginternals/config"
	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/ginternals/index"
	"github.com/goabstract/picogit/internal/env"
)

// Branch is the one local branch this core ever reads or writes (spec.md
// §1 Non-goals: "no branching beyond a single fixed branch name").
const Branch = "main"

var (
	// ErrRepositoryExists is returned by Init when repoPath is already a
	// repository.
	ErrRepositoryExists = errors.New("repository already exists")
	// ErrRepositoryNotExist is returned by Open when repoPath has no .git
	// directory.
	ErrRepositoryNotExist = errors.New("repository does not exist")
	// ErrNestedTreeUnsupported is returned when a path would require the
	// tree builder to emit more than one directory level (spec.md §1
	// Non-goals: "no multi-level directory trees in the index").
	ErrNestedTreeUnsupported = errors.New("nested trees are not supported")
)

// Repository is the entry point for every picogit operation against one
// working tree + .git directory pair.
type Repository struct {
	fs      afero.Fs
	cfg     *config.Config
	backend *fsbackend.Backend
	env     *env.Env
}

// Init creates a brand-new repository rooted at workTreePath: the .git
// layout, HEAD, and a default config (spec.md §6's `init` command).
// workTreePath must already exist as an empty directory; it's the caller's
// job to create it (the CLI's `init <repo>` fails if it already exists).
func Init(fs afero.Fs, workTreePath string) (*Repository, error) {
	cfg := config.NewConfig(fs, workTreePath)
	b := fsbackend.New(fs, cfg)

	if exists, err := afero.DirExists(fs, cfg.GitDirPath); err != nil {
		return nil, fmt.Errorf("could not check for existing repository: %w", err)
	} else if exists {
		return nil, ErrRepositoryExists
	}

	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize repository: %w", err)
	}

	return &Repository{fs: fs, cfg: cfg, backend: b, env: env.NewFromOs()}, nil
}

// Open loads an existing repository rooted at workTreePath.
func Open(fs afero.Fs, workTreePath string) (*Repository, error) {
	cfg := config.NewConfig(fs, workTreePath)
	b := fsbackend.New(fs, cfg)

	if exists, err := afero.DirExists(fs, cfg.GitDirPath); err != nil {
		return nil, fmt.Errorf("could not check for repository: %w", err)
	} else if !exists {
		return nil, ErrRepositoryNotExist
	}

	return &Repository{fs: fs, cfg: cfg, backend: b, env: env.NewFromOs()}, nil
}

// index loads the staging area, returning an empty one if it hasn't been
// written yet (a brand new repository has no index file).
func (r *Repository) index() (*index.Index, error) {
	exists, err := afero.Exists(r.fs, r.cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("could not check for index: %w", err)
	}
	if !exists {
		return index.New(), nil
	}

	data, err := afero.ReadFile(r.fs, r.cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read index: %w", err)
	}
	idx, err := index.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode index: %w", err)
	}
	return idx, nil
}

// saveIndex persists idx back to .git/index.
func (r *Repository) saveIndex(idx *index.Index) error {
	data, err := idx.Encode()
	if err != nil {
		return fmt.Errorf("could not encode index: %w", err)
	}
	if err := afero.WriteFile(r.fs, r.cfg.IndexPath, data, 0o644); err != nil {
		return fmt.Errorf("could not write index: %w", err)
	}
	return nil
}

// branchTip returns the current tip of Branch, or githash.NullOid if the
// branch has no commits yet.
func (r *Repository) branchTip() (githash.Oid, error) {
	ref, err := r.backend.Reference(ginternals.LocalBranchFullName(Branch))
	if err != nil {
		if errors.Is(err, ginternals.ErrRefNotFound) {
			return githash.NullOid, nil
		}
		return githash.NullOid, fmt.Errorf("could not read branch tip: %w", err)
	}
	return ref.Target(), nil
}
