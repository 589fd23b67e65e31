package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goabstract/picogit/repo"
)

func newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "record the staged changes as a new commit",
	}

	message := cmd.Flags().StringP("message", "m", "", "commit message")
	author := cmd.Flags().StringP("author", "a", "", `override the commit author, "Name <email>"`)
	_ = cmd.MarkFlagRequired("message")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitCmd(cmd.OutOrStdout(), *message, *author)
	}

	return cmd
}

func commitCmd(out io.Writer, message, author string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	id, err := r.Commit(repo.CommitOptions{Message: message, Author: author})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "committed to %s: %s\n", repo.Branch, id.String()[:7])
	return nil
}
