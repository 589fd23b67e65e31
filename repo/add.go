package repo

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/goabstract/picogit/ginternals/index"
	"github.com/goabstract/picogit/ginternals/object"
)

// Add stages paths: each file is read, hashed and persisted as a blob, and
// recorded in the index with its current metadata (spec.md §4.B `add`).
func (r *Repository) Add(paths []string) error {
	idx, err := r.index()
	if err != nil {
		return err
	}

	for _, p := range paths {
		p = strings.ReplaceAll(p, `\`, "/")

		data, err := afero.ReadFile(r.fs, p)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", p, err)
		}

		blob := object.New(object.TypeBlob, data)
		if _, err := r.backend.WriteObject(blob); err != nil {
			return fmt.Errorf("could not persist blob for %s: %w", p, err)
		}

		info, err := r.fs.Stat(p)
		if err != nil {
			return fmt.Errorf("could not stat %s: %w", p, err)
		}

		entry := index.Entry{
			MTimeSec: uint32(info.ModTime().Unix()),
			Mode:     uint32(entryMode(info)),
			Size:     uint32(info.Size()),
			ID:       blob.ID(),
			Path:     p,
		}
		if err := idx.Add(entry); err != nil {
			return fmt.Errorf("could not stage %s: %w", p, err)
		}
	}

	return r.saveIndex(idx)
}

// entryMode maps a file's mode bits to the git tree-entry mode this core
// understands: a regular file is either executable or not, and a symlink
// is its own kind (spec.md §3's tree-entry mode; ModeDirectory is never
// produced here since this core's index is flat).
func entryMode(info os.FileInfo) object.TreeObjectMode {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return object.ModeSymLink
	case info.Mode()&0o111 != 0:
		return object.ModeExecutable
	default:
		return object.ModeFile
	}
}
