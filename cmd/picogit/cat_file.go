package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goabstract/picogit/ginternals/object"
)

func newCatFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat-file <mode> <prefix>",
		Short: "display the contents, size, or kind of an object",
		Args:  cobra.ExactArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return catFileCmd(cmd.OutOrStdout(), args[0], args[1])
	}

	return cmd
}

func catFileCmd(out io.Writer, mode, prefix string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}

	o, err := r.ReadObject(prefix)
	if err != nil {
		return err
	}

	switch mode {
	case "size":
		fmt.Fprintln(out, o.Size())
	case "type":
		fmt.Fprintln(out, o.Type().String())
	case "blob", "tree", "commit":
		wantType, err := object.NewTypeFromString(mode)
		if err != nil {
			return err
		}
		if o.Type() != wantType {
			return fmt.Errorf("%s is a %s, not a %s: %w", prefix, o.Type(), mode, object.ErrObjectKindMismatch)
		}
		_, err = out.Write(o.Bytes())
		return err
	case "pretty":
		return prettyPrint(out, o)
	default:
		return fmt.Errorf("unsupported cat-file mode %q", mode)
	}
	return nil
}

// prettyPrint renders an object's payload the way `cat-file pretty` does:
// raw bytes for commit/blob, one "<mode> <kind> <oid>\t<path>" line per
// entry for tree (spec.md §4.A).
func prettyPrint(out io.Writer, o *object.Object) error {
	if o.Type() != object.TypeTree {
		_, err := out.Write(o.Bytes())
		return err
	}

	tree, err := o.AsTree()
	if err != nil {
		return err
	}
	for _, e := range tree.Entries() {
		fmt.Fprintf(out, "%06o %s %s\t%s\n", e.Mode, e.Mode.ObjectType(), e.ID, e.Path)
	}
	return nil
}
