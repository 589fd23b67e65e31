package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "show a unified diff of changed files",
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return diffCmd(cmd.OutOrStdout())
	}

	return cmd
}

func diffCmd(out io.Writer) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	d, err := r.Diff()
	if err != nil {
		return err
	}
	fmt.Fprint(out, d)
	return nil
}
