package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goabstract/picogit/repo"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <directory>",
		Short: "create a new repository",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return initCmd(cmd.OutOrStdout(), args[0])
	}

	return cmd
}

func initCmd(out io.Writer, path string) error {
	fs := afero.NewOsFs()

	exists, err := afero.DirExists(fs, path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s: %w", path, repo.ErrRepositoryExists)
	}

	if err := fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}

	if _, err := repo.Init(fs, path); err != nil {
		return err
	}

	fmt.Fprintf(out, "initialized empty repository in %s\n", path)
	return nil
}
