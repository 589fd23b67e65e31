package object

import "github.com/goabstract/picogit/ginternals/githash"

// Blob represents a blob object: the raw content of a tracked file.
type Blob struct {
	rawObject *Object
}

// NewBlob returns a new Blob wrapping a git Object.
func NewBlob(o *Object) *Blob {
	return &Blob{
		rawObject: o,
	}
}

// IsPersisted returns whether the blob has already been assigned an id.
func (b *Blob) IsPersisted() bool {
	return !b.rawObject.id.IsZero()
}

// ID returns the blob's identity.
func (b *Blob) ID() githash.Oid {
	return b.rawObject.id
}

// Bytes returns the blob's content.
func (b *Blob) Bytes() []byte {
	return b.rawObject.content
}

// BytesCopy returns a copy of the blob's content.
func (b *Blob) BytesCopy() []byte {
	out := make([]byte, len(b.rawObject.content))
	copy(out, b.rawObject.content)
	return out
}

// Size returns the size of the blob's content.
func (b *Blob) Size() int {
	return len(b.rawObject.content)
}

// ToObject returns the Blob's underlying Object.
func (b *Blob) ToObject() *Object {
	return b.rawObject
}
