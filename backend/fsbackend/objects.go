package fsbackend

import (
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/spf13/afero"

	"github.com/goabstract/picogit/ginternals"
	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/ginternals/object"
	"github.com/goabstract/picogit/internal/errutil"
	"github.com/goabstract/picogit/internal/readutil"
)

// Object returns the loose object matching oid.
func (b *Backend) Object(oid githash.Oid) (*object.Object, error) {
	p := ginternals.LooseObjectPath(b.cfg, oid.String())

	exists, err := afero.Exists(b.fs, p)
	if err != nil {
		return nil, fmt.Errorf("could not check for object %s: %w", oid, err)
	}
	if !exists {
		return nil, fmt.Errorf("object %s: %w", oid, ginternals.ErrObjectNotFound)
	}

	return b.looseObject(oid, p)
}

// looseObject reads and decompresses the object at p. Objects are stored as
// "<type> <size>\x00<content>", zlib-compressed.
func (b *Backend) looseObject(oid githash.Oid, p string) (o *object.Object, err error) {
	f, err := b.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("could not open object %s at %s: %w", oid, p, err)
	}
	defer errutil.Close(f, &err)

	zlibReader, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("could not decompress object %s at %s: %w", oid, p, err)
	}
	defer errutil.Close(zlibReader, &err)

	buff, err := ioutil.ReadAll(zlibReader)
	if err != nil {
		return nil, fmt.Errorf("could not read object %s at %s: %w", oid, p, err)
	}

	pos := 0
	typ := readutil.ReadTo(buff, ' ')
	if typ == nil {
		return nil, fmt.Errorf("could not find type for object %s at %s", oid, p)
	}
	oType, err := object.NewTypeFromString(string(typ))
	if err != nil {
		return nil, fmt.Errorf("unsupported type %q for object %s at %s: %w", typ, oid, p, err)
	}
	pos += len(typ) + 1

	size := readutil.ReadTo(buff[pos:], 0)
	if size == nil {
		return nil, fmt.Errorf("could not find size for object %s at %s", oid, p)
	}
	oSize, err := strconv.Atoi(string(size))
	if err != nil {
		return nil, fmt.Errorf("invalid size %q for object %s at %s: %w", size, oid, p, err)
	}
	pos += len(size) + 1

	content := buff[pos:]
	if len(content) != oSize {
		return nil, fmt.Errorf("object %s at %s: marked as size %d, has %d", oid, p, oSize, len(content))
	}

	return object.NewWithID(oid, oType, content), nil
}

// ResolveObjectID resolves a hex prefix (minimum two characters) to the
// single loose object it names (spec.md §4.A `read_object`). The first two
// characters select the fan-out directory; the rest is matched as a prefix
// against file names in it. Prefix matching never crosses that directory
// boundary.
func (b *Backend) ResolveObjectID(prefix string) (githash.Oid, error) {
	if len(prefix) < 2 {
		return githash.NullOid, fmt.Errorf("prefix %q: %w", prefix, ginternals.ErrObjectNotFound)
	}

	dir := filepath.Join(ginternals.ObjectsPath(b.cfg), prefix[:2])
	rest := prefix[2:]

	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return githash.NullOid, fmt.Errorf("prefix %q: %w", prefix, ginternals.ErrObjectNotFound)
		}
		return githash.NullOid, fmt.Errorf("could not read %s: %w", dir, err)
	}

	var matches []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), rest) {
			matches = append(matches, e.Name())
		}
	}

	switch len(matches) {
	case 0:
		return githash.NullOid, fmt.Errorf("prefix %q: %w", prefix, ginternals.ErrObjectNotFound)
	case 1:
		return githash.NewFromHex(prefix[:2] + matches[0])
	default:
		return githash.NullOid, fmt.Errorf("prefix %q: %w", prefix, ginternals.ErrObjectAmbiguous)
	}
}

// HasObject returns whether oid exists in the loose object store.
func (b *Backend) HasObject(oid githash.Oid) (bool, error) {
	exists, err := afero.Exists(b.fs, ginternals.LooseObjectPath(b.cfg, oid.String()))
	if err != nil {
		return false, fmt.Errorf("could not check for object %s: %w", oid, err)
	}
	return exists, nil
}

// WriteObject compresses and persists o as a loose object. Writing an
// object that already exists is a no-op.
func (b *Backend) WriteObject(o *object.Object) (githash.Oid, error) {
	found, err := b.HasObject(o.ID())
	if err != nil {
		return githash.NullOid, fmt.Errorf("could not check if object %s already exists: %w", o.ID(), err)
	}
	if found {
		return o.ID(), nil
	}

	data, err := o.Compress()
	if err != nil {
		return githash.NullOid, fmt.Errorf("could not compress object %s: %w", o.ID(), err)
	}

	p := ginternals.LooseObjectPath(b.cfg, o.ID().String())
	if err := b.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return githash.NullOid, fmt.Errorf("could not create directory for object %s: %w", o.ID(), err)
	}
	// Objects are read-only once written.
	if err := afero.WriteFile(b.fs, p, data, 0o444); err != nil {
		return githash.NullOid, fmt.Errorf("could not persist object %s at %s: %w", o.ID(), p, err)
	}

	return o.ID(), nil
}

