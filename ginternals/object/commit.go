package object

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goabstract/picogit/ginternals/githash"
	"github.com/goabstract/picogit/internal/readutil"
)

// ErrSignatureInvalid is returned when an author/committer line can't be parsed.
var ErrSignatureInvalid = errors.New("commit signature is invalid")

// Signature represents the author or committer of a commit: a name, an
// email, and the time the commit was made (spec.md §3). String renders the
// UTC offset of Time's location; NewSignature uses the local machine's
// timezone at the current time.
type Signature struct {
	Time  time.Time
	Name  string
	Email string
}

// String renders the signature the way it's stored in a commit payload:
// "Name <email> seconds tz".
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.Time.Unix(), s.Time.Format("-0700"))
}

// IsZero returns whether the signature is unset.
func (s Signature) IsZero() bool {
	return s.Time.IsZero() && s.Name == "" && s.Email == ""
}

// NewSignature builds a signature at the current time, in the local
// machine's timezone.
func NewSignature(name, email string) Signature {
	return Signature{
		Name:  name,
		Email: email,
		Time:  time.Now(),
	}
}

// NewSignatureFromBytes parses a signature line of the form:
// "User Name <user.email@domain.tld> timestamp timezone"
func NewSignatureFromBytes(b []byte) (Signature, error) {
	sig := Signature{}

	data := readutil.ReadTo(b, '<')
	if len(data) == 0 {
		if len(b) == 0 {
			return sig, fmt.Errorf("couldn't retrieve the name: %w", ErrSignatureInvalid)
		}
		return sig, fmt.Errorf("signature stopped after the name: %w", ErrSignatureInvalid)
	}
	sig.Name = strings.TrimSpace(string(data))
	offset := len(data) + 1 // +1 to skip the "<"
	if offset >= len(b) {
		return sig, fmt.Errorf("signature stopped after the name: %w", ErrSignatureInvalid)
	}

	data = readutil.ReadTo(b[offset:], '>')
	if len(data) == 0 {
		return sig, fmt.Errorf("couldn't retrieve the email: %w", ErrSignatureInvalid)
	}
	sig.Email = string(data)
	offset += len(data) + 2 // +2 to skip the "> "
	if offset >= len(b) {
		return sig, fmt.Errorf("signature stopped after the email: %w", ErrSignatureInvalid)
	}

	timestamp := readutil.ReadTo(b[offset:], ' ')
	if len(timestamp) == 0 {
		return sig, fmt.Errorf("couldn't retrieve the timestamp: %w", ErrSignatureInvalid)
	}
	offset += len(timestamp) + 1 // +1 to skip the " "
	if offset >= len(b) {
		return sig, fmt.Errorf("signature stopped after the timestamp: %w", ErrSignatureInvalid)
	}

	t, err := strconv.ParseInt(string(timestamp), 10, 64)
	if err != nil {
		return sig, fmt.Errorf("invalid timestamp %s: %w", timestamp, err)
	}
	sig.Time = time.Unix(t, 0)

	timezone := b[offset:]
	tz, err := time.Parse("-0700", string(timezone))
	if err != nil {
		return sig, fmt.Errorf("invalid timezone format %s: %w", timezone, err)
	}
	sig.Time = sig.Time.In(tz.Location())
	return sig, nil
}

// CommitOptions carries the optional data needed to create a commit.
type CommitOptions struct {
	Message string
	// Committer defaults to the author when left zero.
	Committer Signature
	ParentsID []githash.Oid
}

// Commit represents a commit object: a tree, zero or more parents, an
// author/committer pair, and a message.
type Commit struct {
	rawObject *Object

	author    Signature
	committer Signature

	message string

	parentIDs []githash.Oid
	treeID    githash.Oid
}

// NewCommit creates a new Commit object. The provided tree and parent ids
// aren't verified against any store; that's the caller's responsibility.
func NewCommit(treeID githash.Oid, author Signature, opts *CommitOptions) *Commit {
	c := &Commit{
		treeID:    treeID,
		author:    author,
		committer: opts.Committer,
		message:   ensureTrailingNewline(opts.Message),
		parentIDs: opts.ParentsID,
	}

	if c.committer.IsZero() {
		c.committer = author
	}
	c.rawObject = c.ToObject()

	return c
}

// ensureTrailingNewline appends "\n" to msg if it doesn't already end with
// one, matching original_source/th.py's commit(), which always joins the
// message lines with a trailing "" before writing the payload.
func ensureTrailingNewline(msg string) string {
	if strings.HasSuffix(msg, "\n") {
		return msg
	}
	return msg + "\n"
}

// newCommitFromObject parses a commit's payload:
//
//	tree {oid}
//	parent {oid}
//	author {name} <{email}> {seconds} {tz}
//	committer {name} <{email}> {seconds} {tz}
//	{blank line}
//	{message}
//
// A commit has 0 parent lines for a root commit, 1 for a regular commit,
// and 2 or more for a merge.
func newCommitFromObject(o *Object) (*Commit, error) {
	ci := &Commit{
		rawObject: o,
	}
	offset := 0
	objData := o.Bytes()
	for {
		line := readutil.ReadTo(objData[offset:], '\n')
		offset += len(line) + 1 // +1 to count the \n

		if len(line) == 0 && offset == 1 {
			return nil, fmt.Errorf("could not find commit first line: %w", ErrCommitInvalid)
		}

		// a blank line means the rest of the payload is the message
		if len(line) == 0 {
			if offset < len(objData) {
				ci.message = string(objData[offset:])
			}
			break
		}

		kv := bytes.SplitN(line, []byte{' '}, 2)
		var err error
		switch string(kv[0]) {
		case "tree":
			ci.treeID, err = githash.NewFromChars(kv[1])
			if err != nil {
				return nil, fmt.Errorf("could not parse tree id %q: %w", kv[1], err)
			}
		case "parent":
			oid, perr := githash.NewFromChars(kv[1])
			if perr != nil {
				return nil, fmt.Errorf("could not parse parent id %q: %w", kv[1], perr)
			}
			ci.parentIDs = append(ci.parentIDs, oid)
		case "author":
			ci.author, err = NewSignatureFromBytes(kv[1])
			if err != nil {
				return nil, fmt.Errorf("could not parse author signature %q: %w", kv[1], err)
			}
		case "committer":
			ci.committer, err = NewSignatureFromBytes(kv[1])
			if err != nil {
				return nil, fmt.Errorf("could not parse committer signature %q: %w", kv[1], err)
			}
		}
	}

	if ci.author.IsZero() {
		return nil, fmt.Errorf("commit has no author: %w", ErrCommitInvalid)
	}
	if ci.treeID.IsZero() {
		return nil, fmt.Errorf("commit has no tree: %w", ErrCommitInvalid)
	}

	return ci, nil
}

// ID returns the commit's identity.
func (c *Commit) ID() githash.Oid {
	return c.rawObject.ID()
}

// Author returns the signature of the person that made the changes.
func (c *Commit) Author() Signature {
	return c.author
}

// Committer returns the signature of the person that created the commit.
func (c *Commit) Committer() Signature {
	return c.committer
}

// Message returns the commit's message.
func (c *Commit) Message() string {
	return c.message
}

// ParentIDs returns the commit's parent ids, if any.
func (c *Commit) ParentIDs() []githash.Oid {
	out := make([]githash.Oid, len(c.parentIDs))
	copy(out, c.parentIDs)
	return out
}

// TreeID returns the id of the commit's tree.
func (c *Commit) TreeID() githash.Oid {
	return c.treeID
}

// ToObject returns the underlying Object.
func (c *Commit) ToObject() *Object {
	if c.rawObject != nil {
		return c.rawObject
	}

	buf := new(bytes.Buffer)
	buf.WriteString("tree ")
	buf.WriteString(c.treeID.String())
	buf.WriteByte('\n')

	for _, p := range c.parentIDs {
		buf.WriteString("parent ")
		buf.WriteString(p.String())
		buf.WriteByte('\n')
	}

	buf.WriteString("author ")
	buf.WriteString(c.Author().String())
	buf.WriteByte('\n')

	buf.WriteString("committer ")
	buf.WriteString(c.Committer().String())
	buf.WriteByte('\n')

	buf.WriteByte('\n')
	buf.WriteString(c.message)
	return New(TypeCommit, buf.Bytes())
}
