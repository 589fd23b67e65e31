package ginternals

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goabstract/picogit/ginternals/githash"
)

// Head is the name of the reference pointing at the current branch.
const Head = "HEAD"

var (
	// ErrRefNotFound is returned when a reference doesn't exist.
	ErrRefNotFound = fmt.Errorf("reference not found")
	// ErrRefNameInvalid is returned when a reference's name doesn't satisfy
	// IsRefNameValid.
	ErrRefNameInvalid = fmt.Errorf("reference name is not valid")
	// ErrRefInvalid is returned when a reference's content can't be parsed.
	ErrRefInvalid = fmt.Errorf("reference is not valid")
)

// ReferenceType is the kind of a Reference.
type ReferenceType int8

const (
	// OidReference targets an object directly.
	OidReference ReferenceType = 1
	// SymbolicReference targets another reference (ex. HEAD -> refs/heads/main).
	SymbolicReference ReferenceType = 2
)

// Reference represents a git reference: either a name pointing directly at
// an object, or a name pointing at another reference.
// https://git-scm.com/book/en/v2/Git-Internals-Git-References
type Reference struct {
	name   string
	target string
	id     githash.Oid
	typ    ReferenceType
}

// RefContent returns the raw content of the reference with the given name.
type RefContent func(name string) ([]byte, error)

// ResolveReference follows HEAD's single level of indirection down to the
// object it ultimately points at. This core only ever has one level (HEAD ->
// refs/heads/<branch>), but the walk is written generally in case that
// changes.
func ResolveReference(name string, finder RefContent) (*Reference, error) {
	return resolveRefs(name, finder, map[string]struct{}{})
}

func resolveRefs(name string, finder RefContent, visited map[string]struct{}) (*Reference, error) {
	if _, ok := visited[name]; ok {
		return nil, fmt.Errorf("circular symbolic reference: %w", ErrRefInvalid)
	}
	visited[name] = struct{}{}

	if !IsRefNameValid(name) {
		return nil, fmt.Errorf("ref %q: %w", name, ErrRefNameInvalid)
	}

	data, err := finder(name)
	if err != nil {
		return nil, err
	}
	data = bytes.Trim(data, " \n")

	if len(data) >= 5 && string(data[0:5]) == "ref: " {
		symbolicTarget := string(data[5:])
		ref, err := resolveRefs(symbolicTarget, finder, visited)
		if err != nil {
			return nil, err
		}
		return &Reference{
			typ:    SymbolicReference,
			name:   name,
			id:     ref.id,
			target: symbolicTarget,
		}, nil
	}

	oid, err := githash.NewFromChars(data)
	if err != nil {
		return nil, ErrRefInvalid
	}
	return &Reference{
		typ:  OidReference,
		name: name,
		id:   oid,
	}, nil
}

// NewReference returns a new Reference pointing directly at an object.
func NewReference(name string, target githash.Oid) *Reference {
	return &Reference{
		typ:  OidReference,
		name: name,
		id:   target,
	}
}

// NewSymbolicReference returns a new Reference pointing at another reference.
func NewSymbolicReference(name, target string) *Reference {
	return &Reference{
		typ:    SymbolicReference,
		name:   name,
		target: target,
	}
}

// Name returns the reference's full name, ex. "refs/heads/main".
func (ref *Reference) Name() string {
	return ref.name
}

// Target returns the object id targeted by the reference.
func (ref *Reference) Target() githash.Oid {
	return ref.id
}

// Type returns the reference's type.
func (ref *Reference) Type() ReferenceType {
	return ref.typ
}

// SymbolicTarget returns the name of the reference this one points at.
func (ref *Reference) SymbolicTarget() string {
	return ref.target
}

// IsRefNameValid returns whether name is a valid reference name.
// https://stackoverflow.com/a/12093994/382879
func IsRefNameValid(name string) bool {
	if name == "" || name == "/" || name[len(name)-1] == '/' || name[len(name)-1] == '.' {
		return false
	}

	for i, c := range name {
		if c < 32 || c == 127 {
			return false
		}
		if c == '*' || c == '?' || c == '!' || c == '^' {
			return false
		}
		if c == ' ' || c == '[' || c == '\\' || c == ':' {
			return false
		}
		if i < len(name)-1 {
			substr := name[i : i+2]
			if substr == "@{" || substr == ".." {
				return false
			}
		}
	}

	segments := strings.Split(name, "/")
	for _, s := range segments {
		if s == "" || s[0] == '.' || s[len(s)-1] == '.' || strings.HasSuffix(s, ".lock") {
			return false
		}
	}

	return true
}
