package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/goabstract/picogit/ginternals/index"
	"github.com/goabstract/picogit/ginternals/object"
	"github.com/goabstract/picogit/internal/diffutil"
)

// dotGitDirName is excluded when walking the working tree for status/diff,
// the way original_source/th.py's get_status skips ".git" by name.
const dotGitDirName = ".git"

// FileEntry describes one file tracked by ls-files.
type FileEntry struct {
	Mode  uint32
	ID    string
	Stage int
	Path  string
}

// LsFiles returns every entry currently staged in the index, in path order.
func (r *Repository) LsFiles() ([]FileEntry, error) {
	idx, err := r.index()
	if err != nil {
		return nil, err
	}

	out := make([]FileEntry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		out = append(out, FileEntry{Mode: e.Mode, ID: e.ID.String(), Path: e.Path})
	}
	return out, nil
}

// Status reports the working tree's drift from the index: files whose
// content changed, files that are untracked, and files the index has that
// the working tree no longer does (spec.md §4.B `status`).
func (r *Repository) Status() (changed, newFiles, deleted []string, err error) {
	idx, err := r.index()
	if err != nil {
		return nil, nil, nil, err
	}

	workingPaths, err := r.walkWorkingTree()
	if err != nil {
		return nil, nil, nil, err
	}

	indexed := make(map[string]index.Entry, len(idx.Entries))
	for _, e := range idx.Entries {
		indexed[e.Path] = e
	}

	for p := range workingPaths {
		e, ok := indexed[p]
		if !ok {
			newFiles = append(newFiles, p)
			continue
		}
		data, err := afero.ReadFile(r.fs, p)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not read %s: %w", p, err)
		}
		if object.New(object.TypeBlob, data).ID() != e.ID {
			changed = append(changed, p)
		}
	}
	for p := range indexed {
		if _, ok := workingPaths[p]; !ok {
			deleted = append(deleted, p)
		}
	}

	sort.Strings(changed)
	sort.Strings(newFiles)
	sort.Strings(deleted)
	return changed, newFiles, deleted, nil
}

// Diff renders a unified diff between the index's blob and the working
// copy for every changed file, separated per diffutil.Separator
// (spec.md §4.B `diff`).
func (r *Repository) Diff() (string, error) {
	changed, _, _, err := r.Status()
	if err != nil {
		return "", err
	}

	idx, err := r.index()
	if err != nil {
		return "", err
	}
	indexed := make(map[string]index.Entry, len(idx.Entries))
	for _, e := range idx.Entries {
		indexed[e.Path] = e
	}

	var out []string
	for _, p := range changed {
		o, err := r.backend.Object(indexed[p].ID)
		if err != nil {
			return "", fmt.Errorf("could not read staged blob for %s: %w", p, err)
		}
		blob, err := o.AsBlob()
		if err != nil {
			return "", fmt.Errorf("%s is not a blob: %w", p, err)
		}

		working, err := afero.ReadFile(r.fs, p)
		if err != nil {
			return "", fmt.Errorf("could not read %s: %w", p, err)
		}

		if d := diffutil.Unified(p, blob.Bytes(), working); d != "" {
			out = append(out, d)
		}
	}

	return strings.Join(out, diffutil.Separator+"\n"), nil
}

// walkWorkingTree returns the set of tracked-candidate paths under the
// working tree root, normalized to forward slashes and relative to it,
// skipping .git.
func (r *Repository) walkWorkingTree() (map[string]struct{}, error) {
	paths := map[string]struct{}{}
	err := afero.Walk(r.fs, r.cfg.WorkTreePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == dotGitDirName {
				return filepath.SkipDir
			}
			return nil
		}

		rel := strings.TrimPrefix(path, r.cfg.WorkTreePath)
		rel = strings.TrimPrefix(rel, "/")
		rel = strings.ReplaceAll(rel, `\`, "/")
		if strings.HasPrefix(rel, dotGitDirName+"/") {
			return nil
		}
		paths[rel] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk working tree: %w", err)
	}
	return paths, nil
}
