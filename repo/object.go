package repo

import (
	"fmt"

	"github.com/goabstract/picogit/ginternals/object"
)

// WriteObject persists o to the object store (spec.md §4.A `hash_object`
// with persist=true). A no-op if an object with the same identity already
// exists.
func (r *Repository) WriteObject(o *object.Object) error {
	if _, err := r.backend.WriteObject(o); err != nil {
		return fmt.Errorf("could not persist object: %w", err)
	}
	return nil
}

// ReadObject resolves a hex identity prefix (minimum two characters) and
// returns the object it names (spec.md §4.A `read_object`).
func (r *Repository) ReadObject(prefix string) (*object.Object, error) {
	id, err := r.backend.ResolveObjectID(prefix)
	if err != nil {
		return nil, err
	}
	return r.backend.Object(id)
}
