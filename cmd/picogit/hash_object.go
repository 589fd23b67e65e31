package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goabstract/picogit/ginternals/object"
)

func newHashObjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-object <path>",
		Short: "compute an object's identity, and optionally persist it",
		Args:  cobra.ExactArgs(1),
	}

	typ := cmd.Flags().StringP("type", "t", object.TypeBlob.String(), "object kind: commit, tree, or blob")
	write := cmd.Flags().BoolP("write", "w", false, "persist the object to the store")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return hashObjectCmd(cmd.OutOrStdout(), args[0], *typ, *write)
	}

	return cmd
}

func hashObjectCmd(out io.Writer, path, typ string, write bool) error {
	oType, err := object.NewTypeFromString(typ)
	if err != nil {
		return fmt.Errorf("unsupported object type %q: %w", typ, err)
	}

	content, err := afero.ReadFile(afero.NewOsFs(), path)
	if err != nil {
		return err
	}

	o := object.New(oType, content)
	switch oType {
	case object.TypeCommit:
		if _, err := o.AsCommit(); err != nil {
			return fmt.Errorf("invalid commit file: %w", err)
		}
	case object.TypeTree:
		if _, err := o.AsTree(); err != nil {
			return fmt.Errorf("invalid tree file: %w", err)
		}
	}

	if write {
		r, err := openRepo()
		if err != nil {
			return err
		}
		if err := r.WriteObject(o); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, o.ID().String())
	return nil
}
