package packfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/ginternals/object"
	"github.com/goabstract/picogit/ginternals/packfile"
)

func TestEncodeHeaderAndTrailer(t *testing.T) {
	t.Parallel()

	objs := []*object.Object{
		object.New(object.TypeBlob, []byte("hello")),
		object.New(object.TypeTree, nil),
	}

	var buf bytes.Buffer
	require.NoError(t, packfile.Encode(&buf, objs))

	data := buf.Bytes()
	require.GreaterOrEqual(t, len(data), 12+20)
	assert.Equal(t, "PACK", string(data[0:4]))
	assert.Equal(t, []byte{0, 0, 0, 2}, data[4:8], "version should be 2")
	assert.Equal(t, []byte{0, 0, 0, 2}, data[8:12], "count should match the number of objects")
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, packfile.Encode(&buf, nil))

	data := buf.Bytes()
	require.Len(t, data, 12+20)
	assert.Equal(t, []byte{0, 0, 0, 0}, data[8:12])
}

func TestEncodeRejectsUnpackableType(t *testing.T) {
	t.Parallel()

	// A zero-value Type isn't one of commit/tree/blob.
	bad := object.NewWithID(githash.NullOid, 0, nil)
	var buf bytes.Buffer
	err := packfile.Encode(&buf, []*object.Object{bad})
	require.Error(t, err)
}
