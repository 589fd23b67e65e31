package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newLsFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-files",
		Short: "list staged files",
	}

	stage := cmd.Flags().BoolP("stage", "s", false, "show mode, identity, and stage number")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsFilesCmd(cmd.OutOrStdout(), *stage)
	}

	return cmd
}

func lsFilesCmd(out io.Writer, stage bool) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	entries, err := r.LsFiles()
	if err != nil {
		return err
	}

	if !stage {
		for _, e := range entries {
			fmt.Fprintln(out, e.Path)
		}
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetColumnSeparator("\t")
	for _, e := range entries {
		table.Append([]string{fmt.Sprintf("%06o", e.Mode), e.ID, fmt.Sprintf("%d", e.Stage), e.Path})
	}
	table.Render()
	return nil
}
