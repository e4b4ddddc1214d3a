package coordinate

import (
	"regexp"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/matzehuels/pubkit/pkg/errors"
)

const snapshotSuffix = "-SNAPSHOT"

// Coordinate identifies a published artifact set.
// The zero value is not a valid coordinate; obtain one through [Resolve].
type Coordinate struct {
	Group      string `json:"group"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version"`
}

// String renders the coordinate as "group:artifactId:version".
func (c Coordinate) String() string {
	return c.Group + ":" + c.ArtifactID + ":" + c.Version
}

// Module renders the version-less "group:artifactId" form.
func (c Coordinate) Module() string {
	return c.Group + ":" + c.ArtifactID
}

// IsSnapshot reports whether the version is a Maven snapshot.
func (c Coordinate) IsSnapshot() bool {
	return strings.HasSuffix(c.Version, snapshotSuffix)
}

var (
	groupRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)
	dateRegex  = regexp.MustCompile(`^(\d{4})([.-]?)(\d{2})([.-]?)(\d{2})((\.\d+)|(-[0-9A-Za-z][0-9A-Za-z.-]*))?$`)
)

// Resolve validates the raw inputs and returns the resolved Coordinate.
// Every failure carries [errors.ErrCodeInvalidCoordinate].
func Resolve(rawGroup, rawArtifactID, rawVersion string) (Coordinate, error) {
	c := Coordinate{
		Group:      strings.TrimSpace(rawGroup),
		ArtifactID: strings.TrimSpace(rawArtifactID),
		Version:    strings.TrimSpace(rawVersion),
	}

	switch {
	case c.Group == "":
		return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate, "group cannot be empty")
	case c.ArtifactID == "":
		return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate, "artifactId cannot be empty")
	case c.Version == "":
		return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate, "version cannot be empty")
	}

	if !groupRegex.MatchString(c.Group) {
		return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate, "group %q is not a dotted identifier", c.Group)
	}
	if err := errors.ValidateName("artifactId", c.ArtifactID); err != nil {
		return Coordinate{}, errors.Wrap(errors.ErrCodeInvalidCoordinate, err, "invalid artifactId")
	}
	if !ValidVersion(c.Version) {
		return Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate, "version %q is neither semantic nor date-based", c.Version)
	}
	return c, nil
}

// ValidVersion reports whether v matches the accepted version grammar.
func ValidVersion(v string) bool {
	if v == "" || strings.ContainsAny(v, "/\\ \t") {
		return false
	}
	if isDateVersion(v) {
		return true
	}
	_, err := goversion.NewVersion(v)
	return err == nil
}

func isDateVersion(v string) bool {
	m := dateRegex.FindStringSubmatch(v)
	if m == nil || m[2] != m[4] {
		return false
	}
	month, _ := strconv.Atoi(m[3])
	day, _ := strconv.Atoi(m[5])
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}
