package object_test

import (
	"testing"

	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/ginternals/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTypeFromString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in       string
		expected object.Type
		wantErr  bool
	}{
		{in: "commit", expected: object.TypeCommit},
		{in: "tree", expected: object.TypeTree},
		{in: "blob", expected: object.TypeBlob},
		{in: "tag", wantErr: true},
		{in: "nope", wantErr: true},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			typ, err := object.NewTypeFromString(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, object.ErrObjectUnknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, typ)
			assert.Equal(t, tc.in, typ.String())
		})
	}
}

func TestNewComputesID(t *testing.T) {
	t.Parallel()

	o := object.New(object.TypeBlob, []byte("hello world"))
	// ID is the SHA-1 of "blob 11\x00hello world", a well-known value
	// matching git's own hash-object output for this content.
	assert.Equal(t, "95d09f2b10159347eece71399a7e2e907ea3df4f", o.ID().String())
	assert.Equal(t, 11, o.Size())
	assert.Equal(t, object.TypeBlob, o.Type())
}

func TestNewWithID(t *testing.T) {
	t.Parallel()

	id, err := githash.NewFromHex("95d09f2b10159347eece71399a7e2e907ea3df4f")
	require.NoError(t, err)

	o := object.NewWithID(id, object.TypeBlob, []byte("hello world"))
	assert.Equal(t, id, o.ID())
}

func TestCompress(t *testing.T) {
	t.Parallel()

	o := object.New(object.TypeBlob, []byte("hello world"))
	compressed, err := o.Compress()
	require.NoError(t, err)
	assert.NotEmpty(t, compressed)
	// zlib streams start with a well-known two-byte header.
	assert.Equal(t, byte(0x78), compressed[0])
}

func TestAsBlobKindMismatch(t *testing.T) {
	t.Parallel()

	o := object.New(object.TypeTree, nil)
	_, err := o.AsBlob()
	require.ErrorIs(t, err, object.ErrObjectKindMismatch)
}

func TestAsTreeKindMismatch(t *testing.T) {
	t.Parallel()

	o := object.New(object.TypeBlob, []byte("x"))
	_, err := o.AsTree()
	require.ErrorIs(t, err, object.ErrObjectKindMismatch)
}

func TestAsCommitKindMismatch(t *testing.T) {
	t.Parallel()

	o := object.New(object.TypeBlob, []byte("x"))
	_, err := o.AsCommit()
	require.ErrorIs(t, err, object.ErrObjectKindMismatch)
}
