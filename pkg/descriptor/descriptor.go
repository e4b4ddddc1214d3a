// Package descriptor binds static project metadata into the descriptor that
// accompanies every published artifact set.
//
// The descriptor carries the license, SCM locations, developer identities and
// declared dependencies. [Bind] validates the whole [Metadata] in one pass and
// reports every missing field together, so a misconfigured project can be fixed
// in a single edit.
package descriptor

import (
	stderrors "errors"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/pubkit/pkg/errors"
)

// Dependency scopes recognized in declared dependencies.
const (
	ScopeCompile  = "compile"
	ScopeRuntime  = "runtime"
	ScopeTest     = "test"
	ScopeProvided = "provided"
)

// Metadata is the static project configuration the descriptor is built from.
// Field tags double as the configuration keys reported in validation errors.
type Metadata struct {
	Name         string       `toml:"name" validate:"required"`
	Description  string       `toml:"description"`
	URL          string       `toml:"url" validate:"required,http_url"`
	License      License      `toml:"license"`
	Developers   []Developer  `toml:"developers" validate:"min=1,dive"`
	SCM          SCM          `toml:"scm"`
	Dependencies []Dependency `toml:"dependencies" validate:"dive"`
}

// License identifies the license the artifact is distributed under.
type License struct {
	Name string `toml:"name" validate:"required"`
	URL  string `toml:"url" validate:"required,http_url"`
}

// Developer is one entry of the ordered developer list.
type Developer struct {
	ID    string `toml:"id" validate:"required"`
	Name  string `toml:"name"`
	Email string `toml:"email" validate:"omitempty,email"`
}

// SCM holds the source control locations of the project.
type SCM struct {
	Connection          string `toml:"connection" validate:"required,scm"`
	DeveloperConnection string `toml:"developerConnection" validate:"required,scm"`
	URL                 string `toml:"url" validate:"required,http_url"`
}

// Dependency is a declared dependency carried into the published descriptor.
type Dependency struct {
	Group      string `toml:"group" validate:"required"`
	ArtifactID string `toml:"artifactId" validate:"required"`
	Version    string `toml:"version" validate:"required"`
	Scope      string `toml:"scope" validate:"omitempty,oneof=compile runtime test provided"`
}

// Coordinate renders the dependency as "group:artifactId:version".
func (d Dependency) Coordinate() string {
	return d.Group + ":" + d.ArtifactID + ":" + d.Version
}

// Descriptor is the validated, immutable metadata record of one publish run.
// Treat it as read-only; it is shared by all concurrent target uploads.
type Descriptor struct {
	Name         string
	Description  string
	URL          string
	License      License
	Developers   []Developer
	SCM          SCM
	Dependencies []Dependency
}

// Bind validates m and returns the Descriptor built from it.
// All missing or malformed fields are reported in one
// [errors.ErrCodeIncompleteMetadata] error.
func Bind(m Metadata) (Descriptor, error) {
	if err := validate().Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return Descriptor{}, errors.Wrap(errors.ErrCodeInternal, err, "validate metadata")
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldPath(fe))
		}
		return Descriptor{}, errors.WithFields(errors.ErrCodeIncompleteMetadata, fields, "metadata is missing or has invalid fields")
	}

	deps := slices.Clone(m.Dependencies)
	for i := range deps {
		if deps[i].Scope == "" {
			deps[i].Scope = ScopeCompile
		}
	}

	return Descriptor{
		Name:         m.Name,
		Description:  m.Description,
		URL:          m.URL,
		License:      m.License,
		Developers:   slices.Clone(m.Developers),
		SCM:          m.SCM,
		Dependencies: deps,
	}, nil
}

// RuntimeDependencies returns the dependencies a consumer needs at runtime,
// excluding test and provided scopes.
func (d Descriptor) RuntimeDependencies() []Dependency {
	var out []Dependency
	for _, dep := range d.Dependencies {
		if dep.Scope == ScopeTest || dep.Scope == ScopeProvided {
			continue
		}
		out = append(out, dep)
	}
	return out
}

var (
	vOnce sync.Once
	v     *validator.Validate
)

func validate() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		// report configuration keys instead of Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("toml")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = v.RegisterValidation("scm", func(fl validator.FieldLevel) bool {
			return strings.HasPrefix(fl.Field().String(), "scm:")
		})
	})
	return v
}

// fieldPath strips the root struct name from the validator namespace:
// "Metadata.license.url" becomes "license.url".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
