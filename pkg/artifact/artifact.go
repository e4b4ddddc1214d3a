// Package artifact assembles the named artifact set of a coordinate.
//
// A [Set] maps classifiers to payloads: the empty classifier is the primary
// binary, "sources" and "javadoc" are the usual companions. [Assemble] is pure
// in-memory composition; reading build outputs from disk is done separately by
// [LoadOutputs].
package artifact

import (
	"maps"
	"regexp"
	"slices"

	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/maven"
)

// Well-known classifiers.
const (
	Primary = ""
	Sources = "sources"
	Javadoc = "javadoc"
)

// DefaultPackaging is the file extension used when none is configured.
const DefaultPackaging = "jar"

var classifierRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Outputs maps a classifier to the payload produced by the build toolchain.
type Outputs map[string][]byte

// File is one payload of a Set together with its repository path and checksums.
type File struct {
	Classifier string
	Path       string
	Data       []byte
	Checksums  maven.Checksums
}

// Set is an assembled, immutable artifact set.
// It is safe for concurrent reads; callers must not modify the returned byte slices.
type Set struct {
	coord     coordinate.Coordinate
	packaging string
	files     map[string]File
}

// Option customizes assembly.
type Option func(*Set)

// WithPackaging sets the file extension of every classifier (default "jar").
func WithPackaging(ext string) Option {
	return func(s *Set) {
		if ext != "" {
			s.packaging = ext
		}
	}
}

// Assemble composes the artifact set of c from outputs.
// It fails with [errors.ErrCodeMissingPrimaryArtifact] when the primary
// payload is absent. Payloads are copied, so later changes to outputs do not
// affect the set.
func Assemble(c coordinate.Coordinate, outputs Outputs, opts ...Option) (*Set, error) {
	if data, ok := outputs[Primary]; !ok || data == nil {
		return nil, errors.New(errors.ErrCodeMissingPrimaryArtifact, "no primary artifact for %s", c)
	}

	s := &Set{
		coord:     c,
		packaging: DefaultPackaging,
		files:     make(map[string]File, len(outputs)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := errors.ValidateName("packaging", s.packaging); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid packaging")
	}

	for classifier, data := range outputs {
		if classifier != Primary && !classifierRegex.MatchString(classifier) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid classifier %q", classifier)
		}
		payload := slices.Clone(data)
		s.files[classifier] = File{
			Classifier: classifier,
			Path:       maven.FilePath(c, classifier, s.packaging),
			Data:       payload,
			Checksums:  maven.Compute(payload),
		}
	}
	return s, nil
}

// Coordinate returns the coordinate the set was assembled for.
func (s *Set) Coordinate() coordinate.Coordinate { return s.coord }

// Packaging returns the file extension of the set's payloads.
func (s *Set) Packaging() string { return s.packaging }

// Primary returns the primary artifact file.
func (s *Set) Primary() File { return s.files[Primary] }

// File returns the file of a classifier.
func (s *Set) File(classifier string) (File, bool) {
	f, ok := s.files[classifier]
	return f, ok
}

// Classifiers returns the classifiers in upload order: primary first, then
// the rest sorted by name.
func (s *Set) Classifiers() []string {
	keys := slices.Sorted(maps.Keys(s.files))
	return keys // "" sorts first
}

// Files returns every file in upload order.
func (s *Set) Files() []File {
	out := make([]File, 0, len(s.files))
	for _, c := range s.Classifiers() {
		out = append(out, s.files[c])
	}
	return out
}
