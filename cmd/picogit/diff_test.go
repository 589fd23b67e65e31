package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffCmdShowsChanges(t *testing.T) {
	chdirRepo(t)

	require.NoError(t, os.WriteFile("hello.txt", []byte("hello\n"), 0o644))
	require.NoError(t, addCmd([]string{"hello.txt"}))
	require.NoError(t, os.WriteFile("hello.txt", []byte("goodbye\n"), 0o644))

	out := bytes.NewBufferString("")
	require.NoError(t, diffCmd(out))
	assert.Contains(t, out.String(), "-hello")
	assert.Contains(t, out.String(), "+goodbye")
}

func TestDiffCmdNoChangesIsEmpty(t *testing.T) {
	chdirRepo(t)

	require.NoError(t, os.WriteFile("hello.txt", []byte("hello\n"), 0o644))
	require.NoError(t, addCmd([]string{"hello.txt"}))

	out := bytes.NewBufferString("")
	require.NoError(t, diffCmd(out))
	assert.Empty(t, out.String())
}
