package env

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingEnv is returned by Require when the requested key has no value set.
var ErrMissingEnv = errors.New("required environment variable is not set")

// Env represents the environment
type Env struct {
	env map[string]string
}

// NewFromOs builds and returns an Env using os.Environ
func NewFromOs() *Env {
	return NewFromKVList(os.Environ())
}

// NewFromKVList builds and returns an Env using a provided list of
// string in the form "key=value"
func NewFromKVList(env []string) *Env {
	e := &Env{
		make(map[string]string, len(env)),
	}
	for _, kv := range env {
		data := strings.Split(kv, "=")
		e.env[data[0]] = data[1]
	}
	return e
}

// Has returns whether the given key has a value set.
// Has is case-sensitive.
func (e *Env) Has(key string) bool {
	_, ok := e.env[key]
	return ok
}

// Get returns the value of the given key, or en empty string if the key
// has no values set.
// Get is case-sensitive.
func (e *Env) Get(key string) string {
	v, ok := e.env[key]
	if !ok {
		return ""
	}
	return v
}

// Require returns the value of key, or ErrMissingEnv if it has no value set.
// Used for credentials/signature fields that have no sane default (spec.md §6):
// AUTHOR_NAME, AUTHOR_EMAIL, USERNAME, PASSWORD.
func (e *Env) Require(key string) (string, error) {
	v, ok := e.env[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s: %w", key, ErrMissingEnv)
	}
	return v, nil
}
