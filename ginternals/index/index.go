// Package index implements the binary codec for .git/index (spec.md §3):
// a header, a flat list of fixed-layout entries each terminated by a
// NUL-padded path, and a trailing SHA-1 checksum over everything before it.
//
// Only the flat V2 layout this core needs is supported: no extensions, no
// split index, no sparse directory entries.
package index

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // mandated wire format, not used for security
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/goabstract/picogit/ginternals/githash"
)

var (
	// ErrIndexCorrupt is returned when the index file's signature, version,
	// or checksum doesn't match what's expected.
	ErrIndexCorrupt = errors.New("index file is corrupt")
	// ErrPathTooLong is returned when an entry's path can't fit in the
	// 12-bit length field of the flags word.
	ErrPathTooLong = errors.New("path is too long to be indexed")
)

const (
	signature = "DIRC"
	version   = 2

	// entryHeaderSize is the size, in bytes, of an entry's fixed fields,
	// before its variable-length, NUL-terminated path.
	entryHeaderSize = 62

	// maxPathLen is the largest path length the 12-bit flags field can record.
	maxPathLen = 0xfff

	checksumSize = 20
)

// Entry represents one file tracked in the index.
type Entry struct {
	CTimeSec  uint32
	CTimeNano uint32
	MTimeSec  uint32
	MTimeNano uint32
	Dev       uint32
	Ino       uint32
	Mode      uint32
	UID       uint32
	GID       uint32
	Size      uint32
	ID        githash.Oid
	Path      string
}

// Index is the in-memory, decoded form of .git/index.
type Index struct {
	Entries []Entry
}

// New returns an empty index.
func New() *Index {
	return &Index{}
}

// Add inserts or replaces the entry for path, keeping Entries sorted by path
// (spec.md §4.C: the index's path order is what makes tree-building
// order-stable).
func (idx *Index) Add(e Entry) error {
	if len(e.Path) > maxPathLen {
		return fmt.Errorf("%s: %w", e.Path, ErrPathTooLong)
	}

	i := sort.Search(len(idx.Entries), func(i int) bool { return idx.Entries[i].Path >= e.Path })
	if i < len(idx.Entries) && idx.Entries[i].Path == e.Path {
		idx.Entries[i] = e
		return nil
	}
	idx.Entries = append(idx.Entries, Entry{})
	copy(idx.Entries[i+1:], idx.Entries[i:])
	idx.Entries[i] = e
	return nil
}

// Remove drops the entry for path, if present.
func (idx *Index) Remove(path string) {
	for i, e := range idx.Entries {
		if e.Path == path {
			idx.Entries = append(idx.Entries[:i], idx.Entries[i+1:]...)
			return
		}
	}
}

// Get returns the entry for path, if tracked.
func (idx *Index) Get(path string) (Entry, bool) {
	i := sort.Search(len(idx.Entries), func(i int) bool { return idx.Entries[i].Path >= path })
	if i < len(idx.Entries) && idx.Entries[i].Path == path {
		return idx.Entries[i], true
	}
	return Entry{}, false
}

// Encode serializes the index to its on-disk binary form.
func (idx *Index) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.WriteString(signature)
	if err := binary.Write(buf, binary.BigEndian, uint32(version)); err != nil {
		return nil, fmt.Errorf("could not write index version: %w", err)
	}
	if err := binary.Write(buf, binary.BigEndian, uint32(len(idx.Entries))); err != nil {
		return nil, fmt.Errorf("could not write entry count: %w", err)
	}

	for _, e := range idx.Entries {
		if len(e.Path) > maxPathLen {
			return nil, fmt.Errorf("%s: %w", e.Path, ErrPathTooLong)
		}

		fields := []uint32{
			e.CTimeSec, e.CTimeNano, e.MTimeSec, e.MTimeNano,
			e.Dev, e.Ino, e.Mode, e.UID, e.GID, e.Size,
		}
		for _, f := range fields {
			if err := binary.Write(buf, binary.BigEndian, f); err != nil {
				return nil, fmt.Errorf("could not write entry field: %w", err)
			}
		}
		buf.Write(e.ID.Bytes())
		// Real git packs assume-valid/extended/stage bits alongside the
		// 12-bit path length here; this core tracks none of those, so the
		// flags word is just the path length.
		if err := binary.Write(buf, binary.BigEndian, uint16(len(e.Path))&maxPathLen); err != nil {
			return nil, fmt.Errorf("could not write entry flags: %w", err)
		}
		buf.WriteString(e.Path)

		entryLen := ((entryHeaderSize + len(e.Path) + 8) / 8) * 8
		pad := entryLen - entryHeaderSize - len(e.Path)
		buf.Write(make([]byte, pad))
	}

	sum := sha1.Sum(buf.Bytes()) //nolint:gosec
	buf.Write(sum[:])

	return buf.Bytes(), nil
}

// Decode parses the on-disk binary form of an index.
func Decode(data []byte) (*Index, error) {
	if len(data) < 12+checksumSize {
		return nil, fmt.Errorf("truncated index: %w", ErrIndexCorrupt)
	}

	sum := sha1.Sum(data[:len(data)-checksumSize]) //nolint:gosec
	if !bytes.Equal(sum[:], data[len(data)-checksumSize:]) {
		return nil, fmt.Errorf("checksum mismatch: %w", ErrIndexCorrupt)
	}

	if string(data[0:4]) != signature {
		return nil, fmt.Errorf("bad signature %q: %w", data[0:4], ErrIndexCorrupt)
	}
	gotVersion := binary.BigEndian.Uint32(data[4:8])
	if gotVersion != version {
		return nil, fmt.Errorf("unsupported version %d: %w", gotVersion, ErrIndexCorrupt)
	}
	numEntries := binary.BigEndian.Uint32(data[8:12])

	entryData := data[12 : len(data)-checksumSize]
	entries := make([]Entry, 0, numEntries)

	i := 0
	// Corrected per spec.md: the original `i + 62 < len(entry_data)` bound
	// silently drops the final entry when it leaves no trailing padding.
	for i+entryHeaderSize <= len(entryData) {
		fieldsEnd := i + entryHeaderSize
		fields := entryData[i:fieldsEnd]

		e := Entry{
			CTimeSec:  binary.BigEndian.Uint32(fields[0:4]),
			CTimeNano: binary.BigEndian.Uint32(fields[4:8]),
			MTimeSec:  binary.BigEndian.Uint32(fields[8:12]),
			MTimeNano: binary.BigEndian.Uint32(fields[12:16]),
			Dev:       binary.BigEndian.Uint32(fields[16:20]),
			Ino:       binary.BigEndian.Uint32(fields[20:24]),
			Mode:      binary.BigEndian.Uint32(fields[24:28]),
			UID:       binary.BigEndian.Uint32(fields[28:32]),
			GID:       binary.BigEndian.Uint32(fields[32:36]),
			Size:      binary.BigEndian.Uint32(fields[36:40]),
		}
		oid, err := githash.NewFromBytes(fields[40:60])
		if err != nil {
			return nil, fmt.Errorf("invalid oid in entry: %w", ErrIndexCorrupt)
		}
		e.ID = oid
		pathLen := int(binary.BigEndian.Uint16(fields[60:62]))

		pathEnd := fieldsEnd + pathLen
		if pathEnd > len(entryData) {
			return nil, fmt.Errorf("truncated path: %w", ErrIndexCorrupt)
		}
		e.Path = string(entryData[fieldsEnd:pathEnd])

		entryLen := ((entryHeaderSize + pathLen + 8) / 8) * 8
		i += entryLen
		entries = append(entries, e)
	}

	if uint32(len(entries)) != numEntries {
		return nil, fmt.Errorf("expected %d entries, got %d: %w", numEntries, len(entries), ErrIndexCorrupt)
	}

	return &Index{Entries: entries}, nil
}
