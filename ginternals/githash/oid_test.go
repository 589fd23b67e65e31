package githash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goabstract/picogit/ginternals/githash"
)

func TestNewFromHex(t *testing.T) {
	t.Parallel()

	valid := "95d09f2b10159347eece71399a7e2e907ea3df4f"
	oid, err := githash.NewFromHex(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, oid.String())

	_, err = githash.NewFromHex("too-short")
	require.ErrorIs(t, err, githash.ErrInvalidOid)

	_, err = githash.NewFromHex("zz09f2b10159347eece71399a7e2e907ea3df4x")
	require.Error(t, err)
}

func TestNewFromBytes(t *testing.T) {
	t.Parallel()

	raw := make([]byte, githash.OidSize)
	oid, err := githash.NewFromBytes(raw)
	require.NoError(t, err)
	assert.True(t, oid.IsZero())

	_, err = githash.NewFromBytes(raw[:10])
	require.ErrorIs(t, err, githash.ErrInvalidOid)
}

func TestOidIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, githash.NullOid.IsZero())

	oid, err := githash.NewFromHex("95d09f2b10159347eece71399a7e2e907ea3df4f")
	require.NoError(t, err)
	assert.False(t, oid.IsZero())
}
