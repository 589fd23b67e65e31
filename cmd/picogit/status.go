package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "show changed, new, and deleted files",
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return statusCmd(cmd.OutOrStdout())
	}

	return cmd
}

func statusCmd(out io.Writer) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	changed, newFiles, deleted, err := r.Status()
	if err != nil {
		return err
	}

	printSection(out, "changed files:", changed, pterm.FgYellow)
	printSection(out, "new files:", newFiles, pterm.FgGreen)
	printSection(out, "deleted files:", deleted, pterm.FgRed)
	return nil
}

func printSection(out io.Writer, title string, paths []string, color pterm.Color) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintln(out, title)
	for _, p := range paths {
		fmt.Fprintln(out, "   "+color.Sprint(p))
	}
}
