// Package packfile encodes a set of objects into a single git pack stream,
// the format used to transmit objects to a remote with receive-pack
// (spec.md §4.D). This core only ever writes packs; it never reads one back
// (Non-goal: no packfile reading, no thin-pack delta resolution).
package packfile

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // mandated wire format, not used for security
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/goabstract/picogit/ginternals/object"
)

// magic is the 4-byte signature at the start of every pack stream.
var magic = [4]byte{'P', 'A', 'C', 'K'}

// version is the only pack format version this encoder produces.
const version = 2

// Encode writes a pack stream containing exactly the given objects, in the
// order given, to w. The stream is: magic, version, object count, each
// object's variable-length type+size header followed by its zlib-compressed
// payload, and finally a SHA-1 trailer over everything written before it.
func Encode(w *bytes.Buffer, objects []*object.Object) error {
	start := w.Len()

	if err := binary.Write(w, binary.BigEndian, magic); err != nil {
		return fmt.Errorf("could not write pack magic: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint32(version)); err != nil {
		return fmt.Errorf("could not write pack version: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(objects))); err != nil {
		return fmt.Errorf("could not write object count: %w", err)
	}

	for _, o := range objects {
		if err := encodeObject(w, o); err != nil {
			return err
		}
	}

	sum := sha1.Sum(w.Bytes()[start:]) //nolint:gosec
	w.Write(sum[:])
	return nil
}

// encodeObject writes one object's entry: a variable-length header packing
// the object's type (3 bits) and size (base 4 bits, then 7 bits per
// continuation byte), followed by the zlib-compressed payload. This mirrors
// git's own pack object header encoding.
func encodeObject(w *bytes.Buffer, o *object.Object) error {
	typeNum, err := packObjectType(o.Type())
	if err != nil {
		return err
	}

	size := o.Size()
	b := byte(typeNum<<4) | byte(size&0x0f)
	size >>= 4
	for size != 0 {
		w.WriteByte(b | 0x80)
		b = byte(size & 0x7f)
		size >>= 7
	}
	w.WriteByte(b)

	zw := zlib.NewWriter(w)
	if _, err := zw.Write(o.Bytes()); err != nil {
		return fmt.Errorf("could not compress object %s: %w", o.ID(), err)
	}
	return zw.Close()
}

// packObjectType maps this core's object.Type to the pack format's numeric
// type codes, which happen to already match (commit=1, tree=2, blob=3).
func packObjectType(t object.Type) (int, error) {
	switch t {
	case object.TypeCommit, object.TypeTree, object.TypeBlob:
		return int(t), nil
	default:
		return 0, fmt.Errorf("object type %d cannot be packed", int8(t))
	}
}
