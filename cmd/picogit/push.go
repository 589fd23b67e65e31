package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goabstract/picogit/internal/env"
	"github.com/goabstract/picogit/repo"
)

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <url>",
		Short: "push the current branch to a remote",
		Args:  cobra.ExactArgs(1),
	}

	user := cmd.Flags().StringP("user", "u", "", "remote username (defaults to USERNAME)")
	pass := cmd.Flags().StringP("pass", "p", "", "remote password (defaults to PASSWORD, prompted if neither is set)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return pushCmd(cmd.OutOrStdout(), args[0], *user, *pass)
	}

	return cmd
}

func pushCmd(out io.Writer, url, user, pass string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	e := env.NewFromOs()
	if user == "" {
		user = e.Get("USERNAME")
	}
	if pass == "" {
		pass = e.Get("PASSWORD")
	}
	if pass == "" {
		// Only prompt when stdin is actually a terminal (grounded in
		// rybkr-gitvista's termcolor.IsTerminal use before touching the
		// terminal); a scripted/headless invocation gets the same
		// missing-env failure as any other unset credential.
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("PASSWORD: %w", env.ErrMissingEnv)
		}
		prompted, err := promptPassword(out)
		if err != nil {
			return err
		}
		pass = prompted
	}

	result, err := r.Push(repo.PushOptions{URL: url, Username: user, Password: pass})
	if err != nil {
		return err
	}

	from := "no commits"
	if !result.RemoteTip.IsZero() {
		from = result.RemoteTip.String()
	}
	plural := ""
	if result.Objects != 1 {
		plural = "s"
	}
	fmt.Fprintf(out, "updating remote %s from %s to %s (%d object%s)\n",
		repo.Branch, from, result.LocalTip.String(), result.Objects, plural)
	return nil
}

// promptPassword reads a password from the terminal without echoing it,
// the way `picogit push` falls back when neither -p nor PASSWORD is set.
func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return string(b), nil
}
