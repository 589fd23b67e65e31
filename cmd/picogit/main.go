// Command picogit is the CLI surface described in spec.md §6: init,
// hash-object, cat-file, add, ls-files, status, diff, commit, and push.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "picogit",
		Short:         "a minimal content-addressed version control system",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newHashObjectCmd())
	cmd.AddCommand(newCatFileCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newLsFilesCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newCommitCmd())
	cmd.AddCommand(newPushCmd())

	return cmd
}
