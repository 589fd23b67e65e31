// Package reachability walks the object graph reachable from a commit
// (spec.md §4.D), computing the set of objects a push needs to send. Walks
// use an explicit work-list instead of recursion, per the Design Note in
// spec.md: deep histories would otherwise blow the Go call stack.
package reachability

import (
	"fmt"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/ginternals/object"
)

// ObjectGetter reads a single object out of the store by id.
type ObjectGetter func(githash.Oid) (*object.Object, error)

// FindTreeObjects returns the tree itself plus every blob (and nested tree,
// were nesting supported) it references. This core's trees are flat, so in
// practice this is the tree and its direct blob entries.
func FindTreeObjects(get ObjectGetter, treeID githash.Oid) ([]githash.Oid, error) {
	set := hashset.New()
	work := []githash.Oid{treeID}

	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if set.Contains(id) {
			continue
		}
		set.Add(id)

		o, err := get(id)
		if err != nil {
			return nil, fmt.Errorf("could not read tree object %s: %w", id, err)
		}
		tree, err := o.AsTree()
		if err != nil {
			return nil, fmt.Errorf("could not parse tree %s: %w", id, err)
		}
		for _, e := range tree.Entries() {
			if e.Mode.ObjectType() != object.TypeTree {
				set.Add(e.ID)
				continue
			}
			if !set.Contains(e.ID) {
				work = append(work, e.ID)
			}
		}
	}

	return oidsFromSet(set), nil
}

// FindCommitObjects returns every commit reachable from commitID, following
// parent links, plus each commit's tree and the tree's objects.
func FindCommitObjects(get ObjectGetter, commitID githash.Oid) ([]githash.Oid, error) {
	commits := hashset.New()
	work := []githash.Oid{commitID}

	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if commits.Contains(id) {
			continue
		}
		commits.Add(id)

		o, err := get(id)
		if err != nil {
			return nil, fmt.Errorf("could not read commit %s: %w", id, err)
		}
		c, err := o.AsCommit()
		if err != nil {
			return nil, fmt.Errorf("could not parse commit %s: %w", id, err)
		}
		for _, p := range c.ParentIDs() {
			if !commits.Contains(p) {
				work = append(work, p)
			}
		}
	}

	result := hashset.New()
	for _, v := range commits.Values() {
		id := v.(githash.Oid)
		result.Add(id)

		o, err := get(id)
		if err != nil {
			return nil, fmt.Errorf("could not read commit %s: %w", id, err)
		}
		c, err := o.AsCommit()
		if err != nil {
			return nil, fmt.Errorf("could not parse commit %s: %w", id, err)
		}

		treeObjs, err := FindTreeObjects(get, c.TreeID())
		if err != nil {
			return nil, err
		}
		for _, t := range treeObjs {
			result.Add(t)
		}
	}

	return oidsFromSet(result), nil
}

// FindMissing returns the objects reachable from commitID that aren't
// already present in have. Per spec.md §9, this is a plain set difference:
// it doesn't walk common ancestors, so on divergent histories it can
// over-report objects the remote already has. That's acceptable for the
// fast-forward-only push this core supports.
func FindMissing(get ObjectGetter, commitID githash.Oid, have map[githash.Oid]struct{}) ([]githash.Oid, error) {
	all, err := FindCommitObjects(get, commitID)
	if err != nil {
		return nil, err
	}

	missing := make([]githash.Oid, 0, len(all))
	for _, id := range all {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func oidsFromSet(set *hashset.Set) []githash.Oid {
	values := set.Values()
	out := make([]githash.Oid, len(values))
	for i, v := range values {
		out[i] = v.(githash.Oid)
	}
	return out
}
