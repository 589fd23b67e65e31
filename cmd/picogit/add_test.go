package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddCmdStagesFiles(t *testing.T) {
	chdirRepo(t)

	require.NoError(t, os.WriteFile("hello.txt", []byte("hello\n"), 0o644))
	require.NoError(t, addCmd([]string{"hello.txt"}))

	out := bytes.NewBufferString("")
	require.NoError(t, lsFilesCmd(out, false))
	require.Equal(t, "hello.txt\n", out.String())
}

func TestAddCmdMissingFileFails(t *testing.T) {
	chdirRepo(t)

	err := addCmd([]string{"nope.txt"})
	require.Error(t, err)
}
