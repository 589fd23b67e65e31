package object

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/internal/readutil"
)

// TreeObjectMode represents the mode of an object inside a tree.
// Non-standard modes are not supported.
type TreeObjectMode int32

const (
	// ModeFile is the mode for a regular file.
	ModeFile TreeObjectMode = 0o100644
	// ModeExecutable is the mode for an executable file.
	ModeExecutable TreeObjectMode = 0o100755
	// ModeDirectory is the mode for a nested tree.
	ModeDirectory TreeObjectMode = 0o040000
	// ModeSymLink is the mode for a symbolic link.
	ModeSymLink TreeObjectMode = 0o120000
)

// IsValid returns whether the mode is a supported mode.
func (m TreeObjectMode) IsValid() bool {
	switch m {
	case ModeFile, ModeExecutable, ModeDirectory, ModeSymLink:
		return true
	default:
		return false
	}
}

// ObjectType returns the object type associated with a mode.
func (m TreeObjectMode) ObjectType() Type {
	switch m {
	case ModeDirectory:
		return TypeTree
	default:
		return TypeBlob
	}
}

// Tree represents a git tree object: a flat, ordered list of path entries.
// Trees written by this core only hold one level of entries (see
// repo.ErrNestedTreeUnsupported); a parsed tree may still contain
// ModeDirectory entries, which a Tree itself does not descend into.
type Tree struct {
	rawObject *Object
	// entries is kept as a slice, not a map, so order is preserved: the
	// index this tree is built from is already sorted by path, and a tree's
	// identity depends on that order (spec.md §4.C).
	entries []TreeEntry
}

// TreeEntry represents one entry inside a git tree.
type TreeEntry struct {
	Path string
	ID   githash.Oid
	Mode TreeObjectMode
}

// NewTree returns a new tree built from the given entries. Entries are
// stored in the order given; callers are responsible for ordering them by
// path before calling this (the index already guarantees that order).
func NewTree(entries []TreeEntry) *Tree {
	t := &Tree{
		entries: entries,
	}
	t.rawObject = t.ToObject()
	return t
}

// newTreeFromObject parses a tree's payload: a back-to-back sequence of
// "{octal_mode} {path}\0{20-byte raw oid}" entries (spec.md §3).
func newTreeFromObject(o *Object) (*Tree, error) {
	entries := []TreeEntry{}

	objData := o.Bytes()
	if len(objData) > 0 {
		offset := 0
		for i := 1; ; i++ {
			entry := TreeEntry{}
			data := readutil.ReadTo(objData[offset:], ' ')
			if len(data) == 0 {
				return nil, fmt.Errorf("could not retrieve the mode of entry %d: %w", i, ErrTreeInvalid)
			}
			offset += len(data) + 1 // +1 for the space
			mode, err := strconv.ParseInt(string(data), 8, 32)
			if err != nil {
				return nil, fmt.Errorf("could not parse mode of entry %d: %s: %w", i, err.Error(), ErrTreeInvalid)
			}
			entry.Mode = TreeObjectMode(mode)

			data = readutil.ReadTo(objData[offset:], 0)
			if len(data) == 0 {
				return nil, fmt.Errorf("could not retrieve the path of entry %d: %w", i, ErrTreeInvalid)
			}
			offset += len(data) + 1 // +1 for the \0
			entry.Path = string(data)

			if offset+githash.OidSize > len(objData) {
				return nil, fmt.Errorf("not enough space to retrieve the ID of entry %d: %w", i, ErrTreeInvalid)
			}
			entry.ID, err = githash.NewFromBytes(objData[offset : offset+githash.OidSize])
			if err != nil {
				return nil, fmt.Errorf("invalid oid for entry %d: %w", i, ErrTreeInvalid)
			}
			offset += githash.OidSize

			entries = append(entries, entry)
			if len(objData) == offset {
				break
			}
		}
	}
	return &Tree{
		rawObject: o,
		entries:   entries,
	}, nil
}

// Entries returns a copy of the tree's entries, in on-disk order.
func (t *Tree) Entries() []TreeEntry {
	out := make([]TreeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// ID returns the tree's identity.
func (t *Tree) ID() githash.Oid {
	return t.rawObject.ID()
}

// ToObject returns an Object representing the tree.
func (t *Tree) ToObject() *Object {
	buf := new(bytes.Buffer)
	for _, e := range t.entries {
		buf.WriteString(strconv.FormatInt(int64(e.Mode), 8))
		buf.WriteByte(' ')
		buf.WriteString(e.Path)
		buf.WriteByte(0)
		buf.Write(e.ID.Bytes())
	}
	return New(TypeTree, buf.Bytes())
}
