package repo

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/ginternals/object"
	"github.com/goabstract/picogit/ginternals/packfile"
	"github.com/goabstract/picogit/ginternals/reachability"
	"github.com/goabstract/picogit/transport/receivepack"
)

// PushOptions carries the optional arguments to Push. Username/Password
// override the USERNAME/PASSWORD environment lookup when set (the CLI's
// `-u`/`-p` flags).
type PushOptions struct {
	URL      string
	Username string
	Password string
}

// PushResult summarizes what Push did, for the CLI to render spec.md §6's
// "updating remote <branch> from <X> to <Y> (<N> object[s])" line.
type PushResult struct {
	RemoteTip githash.Oid
	LocalTip  githash.Oid
	Objects   int
}

// Push computes the objects the remote is missing for the current branch
// and uploads them via the smart-HTTP receive-pack protocol (spec.md
// §4.E). Only a fast-forward of the remote's tip is attempted; this core
// doesn't compute a common ancestor, so it can over-send objects on a
// diverged history (spec.md §4.D), but never corrupts the remote: the
// server ignores objects it already has.
func (r *Repository) Push(opts PushOptions) (*PushResult, error) {
	username := opts.Username
	if username == "" {
		var err error
		username, err = r.env.Require("USERNAME")
		if err != nil {
			return nil, err
		}
	}
	password := opts.Password
	if password == "" {
		var err error
		password, err = r.env.Require("PASSWORD")
		if err != nil {
			return nil, err
		}
	}

	localTip, err := r.branchTip()
	if err != nil {
		return nil, err
	}

	client := receivepack.New(opts.URL, Branch, username, password)
	remoteTip, err := client.RemoteTip()
	if err != nil {
		return nil, fmt.Errorf("could not fetch remote tip: %w", err)
	}

	have := map[githash.Oid]struct{}{}
	if !remoteTip.IsZero() {
		remoteObjs, err := reachability.FindCommitObjects(r.backend.Object, remoteTip)
		if err != nil {
			return nil, fmt.Errorf("could not walk remote history: %w", err)
		}
		for _, id := range remoteObjs {
			have[id] = struct{}{}
		}
	}

	missingIDs, err := reachability.FindMissing(r.backend.Object, localTip, have)
	if err != nil {
		return nil, fmt.Errorf("could not compute missing objects: %w", err)
	}
	sort.Slice(missingIDs, func(i, j int) bool { return missingIDs[i].String() < missingIDs[j].String() })

	objects := make([]*object.Object, 0, len(missingIDs))
	for _, id := range missingIDs {
		o, err := r.backend.Object(id)
		if err != nil {
			return nil, fmt.Errorf("could not read object %s: %w", id, err)
		}
		objects = append(objects, o)
	}

	pack := new(bytes.Buffer)
	if err := packfile.Encode(pack, objects); err != nil {
		return nil, fmt.Errorf("could not build pack: %w", err)
	}

	if err := client.Push(remoteTip, localTip, pack.Bytes()); err != nil {
		return nil, fmt.Errorf("could not push: %w", err)
	}

	return &PushResult{RemoteTip: remoteTip, LocalTip: localTip, Objects: len(objects)}, nil
}
