package fsbackend

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/goabstract/picogit/ginternals"
)

// Reference reads and resolves the reference named name (ex. "HEAD" or
// "refs/heads/main"). ErrRefNotFound is returned if it doesn't exist.
//
// Unlike the teacher's packed-refs-aware lookup, this core only ever stores
// refs as loose files: there's no gc step to pack them into, so there's
// nothing else to check.
func (b *Backend) Reference(name string) (*ginternals.Reference, error) {
	finder := func(name string) ([]byte, error) {
		p := b.refPath(name)
		exists, err := afero.Exists(b.fs, p)
		if err != nil {
			return nil, fmt.Errorf("could not check for reference %q: %w", name, err)
		}
		if !exists {
			return nil, fmt.Errorf("ref %q: %w", name, ginternals.ErrRefNotFound)
		}
		return afero.ReadFile(b.fs, p)
	}
	return ginternals.ResolveReference(name, finder)
}

// refPath returns the on-disk path backing the reference named name.
func (b *Backend) refPath(name string) string {
	return filepath.Join(b.cfg.GitDirPath, filepath.FromSlash(name))
}

// WriteReference persists ref, overwriting it if it already exists.
func (b *Backend) WriteReference(ref *ginternals.Reference) error {
	if !ginternals.IsRefNameValid(ref.Name()) {
		return ginternals.ErrRefNameInvalid
	}

	var content string
	switch ref.Type() {
	case ginternals.SymbolicReference:
		// No trailing newline: spec.md §8 scenario S1 pins HEAD's content
		// to exactly "ref: refs/heads/main".
		content = fmt.Sprintf("ref: %s", ref.SymbolicTarget())
	case ginternals.OidReference:
		content = fmt.Sprintf("%s\n", ref.Target())
	default:
		return fmt.Errorf("unknown reference type %d", ref.Type())
	}

	p := b.refPath(ref.Name())
	if err := b.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("could not create directory for reference %s: %w", ref.Name(), err)
	}
	if err := afero.WriteFile(b.fs, p, []byte(content), 0o644); err != nil {
		return fmt.Errorf("could not persist reference %s: %w", ref.Name(), err)
	}
	return nil
}

// WriteReferenceSafe persists ref, refusing to overwrite an existing one.
func (b *Backend) WriteReferenceSafe(ref *ginternals.Reference) error {
	if !ginternals.IsRefNameValid(ref.Name()) {
		return ginternals.ErrRefNameInvalid
	}

	exists, err := afero.Exists(b.fs, b.refPath(ref.Name()))
	if err != nil {
		return fmt.Errorf("could not check if reference %s exists: %w", ref.Name(), err)
	}
	if exists {
		return ErrRefExists
	}

	return b.WriteReference(ref)
}

// ErrRefExists is returned by WriteReferenceSafe when the reference already
// exists on disk.
var ErrRefExists = errors.New("reference already exists")
