package main

import (
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <path>...",
		Short: "stage files",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return addCmd(args)
	}

	return cmd
}

func addCmd(paths []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	return r.Add(paths)
}
