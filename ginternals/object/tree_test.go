package object_test

import (
	"fmt"
	"testing"

	"github.com/goabstract/picogit/ginternals/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	t.Run("round-trips through ToObject/AsTree", func(t *testing.T) {
		t.Parallel()

		blob := object.New(object.TypeBlob, []byte("hello"))
		tree := object.NewTree([]object.TreeEntry{
			{Mode: object.ModeFile, Path: "hello.txt", ID: blob.ID()},
		})

		o := tree.ToObject()
		parsed, err := o.AsTree()
		require.NoError(t, err)

		newO := parsed.ToObject()
		require.Equal(t, o.ID(), newO.ID())
		require.Equal(t, o.Bytes(), newO.Bytes())
		require.Equal(t, tree.Entries(), parsed.Entries())
	})

	t.Run("entries are returned in on-disk order", func(t *testing.T) {
		t.Parallel()

		b1 := object.New(object.TypeBlob, []byte("a"))
		b2 := object.New(object.TypeBlob, []byte("b"))
		tree := object.NewTree([]object.TreeEntry{
			{Mode: object.ModeFile, Path: "a.txt", ID: b1.ID()},
			{Mode: object.ModeFile, Path: "b.txt", ID: b2.ID()},
		})

		entries := tree.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "a.txt", entries[0].Path)
		assert.Equal(t, "b.txt", entries[1].Path)
	})

	t.Run("Entries() returns a copy", func(t *testing.T) {
		t.Parallel()

		b := object.New(object.TypeBlob, []byte("content"))
		tree := object.NewTree([]object.TreeEntry{
			{Mode: object.ModeFile, Path: "blob", ID: b.ID()},
		})

		entries := tree.Entries()
		entries[0].Path = "nope"
		assert.Equal(t, "blob", tree.Entries()[0].Path, "should not mutate the tree through the returned slice")
	})

	t.Run("empty tree has no entries", func(t *testing.T) {
		t.Parallel()

		tree := object.NewTree(nil)
		o := tree.ToObject()
		assert.Equal(t, 0, o.Size())

		parsed, err := o.AsTree()
		require.NoError(t, err)
		assert.Empty(t, parsed.Entries())
	})
}

func TestTreeObjectMode(t *testing.T) {
	t.Parallel()

	t.Run("ObjectType()", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			desc     string
			mode     object.TreeObjectMode
			expected object.Type
		}{
			{desc: "unknown mode is treated as blob", mode: 0o644, expected: object.TypeBlob},
			{desc: "ModeFile is a blob", mode: object.ModeFile, expected: object.TypeBlob},
			{desc: "ModeExecutable is a blob", mode: object.ModeExecutable, expected: object.TypeBlob},
			{desc: "ModeSymLink is a blob", mode: object.ModeSymLink, expected: object.TypeBlob},
			{desc: "ModeDirectory is a tree", mode: object.ModeDirectory, expected: object.TypeTree},
		}
		for i, tc := range testCases {
			tc := tc
			i := i
			t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
				t.Parallel()
				assert.Equal(t, tc.expected, tc.mode.ObjectType())
			})
		}
	})

	t.Run("IsValid()", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			desc    string
			mode    object.TreeObjectMode
			isValid bool
		}{
			{desc: "0o644 is not valid", mode: 0o644, isValid: false},
			{desc: "ModeFile is valid", mode: object.ModeFile, isValid: true},
			{desc: "0o100755 is valid", mode: 0o100755, isValid: true},
		}
		for i, tc := range testCases {
			tc := tc
			i := i
			t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
				t.Parallel()
				assert.Equal(t, tc.isValid, tc.mode.IsValid())
			})
		}
	})
}
