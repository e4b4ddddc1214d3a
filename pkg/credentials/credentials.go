// Package credentials resolves repository credentials at publish time.
//
// A repository target names its credentials with an auth reference:
//
//	none            anonymous access (also the empty string)
//	env:NAME        NAME_TOKEN for bearer auth, or NAME_USERNAME and NAME_PASSWORD for basic auth
//
// Credentials are looked up on every publish and never written anywhere.
package credentials

import (
	"net/http"
	"os"
	"strings"

	"github.com/matzehuels/pubkit/pkg/errors"
)

// Scheme is how credentials are presented to a repository.
type Scheme int

const (
	Anonymous Scheme = iota
	Basic
	Bearer
)

// Credentials are the resolved secrets for one target.
// The zero value is anonymous.
type Credentials struct {
	Scheme   Scheme
	Username string
	Password string
	Token    string
}

// Authorize applies the credentials to req. Anonymous credentials leave req untouched.
func (c Credentials) Authorize(req *http.Request) {
	switch c.Scheme {
	case Basic:
		req.SetBasicAuth(c.Username, c.Password)
	case Bearer:
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// String never includes secrets.
func (c Credentials) String() string {
	switch c.Scheme {
	case Basic:
		return "basic(" + c.Username + ")"
	case Bearer:
		return "bearer"
	default:
		return "anonymous"
	}
}

// Store resolves an auth reference to credentials.
type Store interface {
	Resolve(ref string) (Credentials, error)
}

// EnvStore resolves "env:NAME" references from environment variables.
type EnvStore struct {
	// Lookup defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)
}

// NewEnvStore returns a store backed by the process environment.
func NewEnvStore() *EnvStore {
	return &EnvStore{Lookup: os.LookupEnv}
}

// Resolve implements Store.
func (s *EnvStore) Resolve(ref string) (Credentials, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "none" {
		return Credentials{}, nil
	}

	name, ok := strings.CutPrefix(ref, "env:")
	if !ok || name == "" {
		return Credentials{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported authRef %q (want \"env:NAME\" or \"none\")", ref)
	}

	lookup := s.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if token, ok := lookup(name + "_TOKEN"); ok && token != "" {
		return Credentials{Scheme: Bearer, Token: token}, nil
	}
	user, uok := lookup(name + "_USERNAME")
	pass, pok := lookup(name + "_PASSWORD")
	if uok && pok && user != "" {
		return Credentials{Scheme: Basic, Username: user, Password: pass}, nil
	}
	return Credentials{}, errors.New(errors.ErrCodeUnauthorized,
		"authRef %q: set %s_TOKEN or %s_USERNAME and %s_PASSWORD", ref, name, name, name)
}

// StaticStore maps auth references to fixed credentials.
type StaticStore map[string]Credentials

// Resolve implements Store. Unknown references other than "none" are unauthorized.
func (s StaticStore) Resolve(ref string) (Credentials, error) {
	if c, ok := s[ref]; ok {
		return c, nil
	}
	if ref == "" || ref == "none" {
		return Credentials{}, nil
	}
	return Credentials{}, errors.New(errors.ErrCodeUnauthorized, "no credentials for authRef %q", ref)
}
