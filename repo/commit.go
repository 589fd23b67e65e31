package repo

import (
	"fmt"
	"strings"

	"github.com/goabstract/picogit/ginternals"
	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/ginternals/object"
)

// CommitOptions carries the optional arguments to Commit.
type CommitOptions struct {
	Message string
	// Author overrides the AUTHOR_NAME/AUTHOR_EMAIL environment lookup
	// when set (the CLI's `commit -a` flag).
	Author string
}

// WriteTree flattens the current index into a tree object and persists it
// (spec.md §4.C `write_tree`). Every entry's path must be a single
// top-level name; a path containing "/" fails as ErrNestedTreeUnsupported.
func (r *Repository) WriteTree() (githash.Oid, error) {
	idx, err := r.index()
	if err != nil {
		return githash.NullOid, err
	}

	entries := make([]object.TreeEntry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		if strings.Contains(e.Path, "/") {
			return githash.NullOid, fmt.Errorf("%s: %w", e.Path, ErrNestedTreeUnsupported)
		}
		entries = append(entries, object.TreeEntry{
			Path: e.Path,
			ID:   e.ID,
			Mode: object.TreeObjectMode(e.Mode),
		})
	}

	tree := object.NewTree(entries)
	if _, err := r.backend.WriteObject(tree.ToObject()); err != nil {
		return githash.NullOid, fmt.Errorf("could not persist tree: %w", err)
	}
	return tree.ID(), nil
}

// Commit builds a tree from the current index, wraps it in a commit object
// with the current branch tip as parent (if any), advances the branch, and
// returns the new commit's identity (spec.md §4.C `commit`).
func (r *Repository) Commit(opts CommitOptions) (githash.Oid, error) {
	treeID, err := r.WriteTree()
	if err != nil {
		return githash.NullOid, err
	}

	parent, err := r.branchTip()
	if err != nil {
		return githash.NullOid, err
	}

	sig, err := r.authorSignature(opts.Author)
	if err != nil {
		return githash.NullOid, err
	}

	commitOpts := &object.CommitOptions{Message: opts.Message}
	if !parent.IsZero() {
		commitOpts.ParentsID = []githash.Oid{parent}
	}

	commit := object.NewCommit(treeID, sig, commitOpts)
	if _, err := r.backend.WriteObject(commit.ToObject()); err != nil {
		return githash.NullOid, fmt.Errorf("could not persist commit: %w", err)
	}

	ref := ginternals.NewReference(ginternals.LocalBranchFullName(Branch), commit.ID())
	if err := r.backend.WriteReference(ref); err != nil {
		return githash.NullOid, fmt.Errorf("could not advance %s: %w", Branch, err)
	}

	return commit.ID(), nil
}

// authorSignature builds the author/committer signature for a new commit.
// If author is empty, it's read from the AUTHOR_NAME/AUTHOR_EMAIL
// environment variables (spec.md §6); an unset variable is fatal.
func (r *Repository) authorSignature(author string) (object.Signature, error) {
	if author != "" {
		name, email, ok := strings.Cut(author, " <")
		if !ok || !strings.HasSuffix(email, ">") {
			return object.Signature{}, fmt.Errorf("malformed author %q, expected \"Name <email>\"", author)
		}
		return object.NewSignature(name, strings.TrimSuffix(email, ">")), nil
	}

	name, err := r.env.Require("AUTHOR_NAME")
	if err != nil {
		return object.Signature{}, err
	}
	email, err := r.env.Require("AUTHOR_EMAIL")
	if err != nil {
		return object.Signature{}, err
	}
	return object.NewSignature(name, email), nil
}
