package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatFileCmdModes(t *testing.T) {
	chdirRepo(t)

	require.NoError(t, os.WriteFile("hello.txt", []byte("hello\n"), 0o644))

	id := bytes.NewBufferString("")
	require.NoError(t, hashObjectCmd(id, "hello.txt", "blob", true))
	prefix := id.String()[:8]

	out := bytes.NewBufferString("")
	require.NoError(t, catFileCmd(out, "size", prefix))
	assert.Equal(t, "6\n", out.String())

	out.Reset()
	require.NoError(t, catFileCmd(out, "type", prefix))
	assert.Equal(t, "blob\n", out.String())

	out.Reset()
	require.NoError(t, catFileCmd(out, "blob", prefix))
	assert.Equal(t, "hello\n", out.String())
}

func TestCatFileCmdKindMismatchFails(t *testing.T) {
	chdirRepo(t)

	require.NoError(t, os.WriteFile("hello.txt", []byte("hello\n"), 0o644))

	id := bytes.NewBufferString("")
	require.NoError(t, hashObjectCmd(id, "hello.txt", "blob", true))
	prefix := id.String()[:8]

	err := catFileCmd(bytes.NewBufferString(""), "tree", prefix)
	require.Error(t, err)
}

func TestCatFileCmdUnknownPrefixFails(t *testing.T) {
	chdirRepo(t)

	err := catFileCmd(bytes.NewBufferString(""), "type", "deadbeef")
	require.Error(t, err)
}
