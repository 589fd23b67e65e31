// Package object implements the three object kinds of the content-addressed
// store: blob, tree, and commit. An object's identity is the SHA-1 of its
// framed header plus raw payload (spec.md §3).
package object

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // sha1 is the hash mandated by spec.md §3, not used for security
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/klauspost/compress/zlib"

	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/internal/errutil"
)

var (
	// ErrObjectUnknown is returned when a kind string isn't commit/tree/blob.
	ErrObjectUnknown = errors.New("invalid object type")
	// ErrObjectInvalid is returned when an object's payload is malformed.
	ErrObjectInvalid = errors.New("invalid object")
	// ErrObjectKindMismatch is returned when a caller requests one kind
	// (ex. cat-file blob) but the stored object is of another kind.
	ErrObjectKindMismatch = errors.New("object kind mismatch")
	// ErrTreeInvalid is returned when a tree payload can't be parsed.
	ErrTreeInvalid = errors.New("invalid tree")
	// ErrCommitInvalid is returned when a commit payload can't be parsed.
	ErrCommitInvalid = errors.New("invalid commit")
)

// Type is the kind of an object, as stored in its frame header.
type Type int8

// The three kinds of object this core supports (spec.md §3).
const (
	TypeCommit Type = 1
	TypeTree   Type = 2
	TypeBlob   Type = 3
)

// String returns the kind name used in the frame header and in
// cat-file's "type" mode.
func (t Type) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	default:
		panic(fmt.Sprintf("unknown object type %d", t))
	}
}

// NewTypeFromString parses a kind name back into a Type.
func NewTypeFromString(t string) (Type, error) {
	switch t {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	default:
		return 0, ErrObjectUnknown
	}
}

// Object is a generic git object: a typed payload whose identity is derived
// from hashing its frame. Objects are immutable once built.
type Object struct {
	id      githash.Oid
	typ     Type
	content []byte

	idOnce sync.Once
}

// New creates a new in-memory object of the given kind and computes its
// identity eagerly. The object isn't persisted until it's handed to the
// object store's write path.
func New(typ Type, content []byte) *Object {
	o := &Object{typ: typ, content: content}
	o.id, _ = o.frame()
	return o
}

// NewWithID wraps an object whose identity is already known (ex. read back
// from disk, where the identity comes from the file's path).
func NewWithID(id githash.Oid, typ Type, content []byte) *Object {
	o := &Object{id: id, typ: typ, content: content}
	o.idOnce.Do(func() {})
	return o
}

// ID returns the object's 40-hex identity.
func (o *Object) ID() githash.Oid {
	o.idOnce.Do(func() {
		if o.id.IsZero() {
			o.id, _ = o.frame()
		}
	})
	return o.id
}

// Size returns the payload size, in bytes.
func (o *Object) Size() int {
	return len(o.content)
}

// Type returns the object's kind.
func (o *Object) Type() Type {
	return o.typ
}

// Bytes returns the raw payload. Never decode this as text unless the
// object is known to be a commit (spec.md §9 text-vs-bytes discipline).
func (o *Object) Bytes() []byte {
	return o.content
}

// frame builds "<kind> <size>\x00<payload>" and hashes it: this sequence,
// and nothing else, is the object's identity (spec.md §3).
func (o *Object) frame() (id githash.Oid, data []byte) {
	w := new(bytes.Buffer)
	w.WriteString(o.typ.String())
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(o.Size()))
	w.WriteByte(0)
	w.Write(o.content)

	data = w.Bytes()
	sum := sha1.Sum(data) //nolint:gosec
	id, _ = githash.NewFromBytes(sum[:])
	return id, data
}

// Compress returns the object framed and zlib-compressed, ready to be
// written as a loose object file.
func (o *Object) Compress() (data []byte, err error) {
	_, framed := o.frame()

	buf := new(bytes.Buffer)
	zw := zlib.NewWriter(buf)
	defer errutil.Close(zw, &err)

	if _, err = zw.Write(framed); err != nil {
		return nil, fmt.Errorf("could not zlib-compress object: %w", err)
	}
	return buf.Bytes(), nil
}

// AsBlob returns a Blob view over this object.
func (o *Object) AsBlob() (*Blob, error) {
	if o.typ != TypeBlob {
		return nil, fmt.Errorf("type %s is not a blob: %w", o.typ, ErrObjectKindMismatch)
	}
	return &Blob{rawObject: o}, nil
}

// AsTree parses the object's payload as a Tree (spec.md §3 tree payload).
func (o *Object) AsTree() (*Tree, error) {
	if o.typ != TypeTree {
		return nil, fmt.Errorf("type %s is not a tree: %w", o.typ, ErrObjectKindMismatch)
	}
	return newTreeFromObject(o)
}

// AsCommit parses the object's payload as a Commit (spec.md §3 commit payload).
func (o *Object) AsCommit() (*Commit, error) {
	if o.typ != TypeCommit {
		return nil, fmt.Errorf("type %s is not a commit: %w", o.typ, ErrObjectKindMismatch)
	}
	return newCommitFromObject(o)
}
