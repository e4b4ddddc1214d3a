package maven

import (
	"encoding/xml"
	"slices"
	"time"

	goversion "github.com/hashicorp/go-version"

	"github.com/matzehuels/pubkit/pkg/coordinate"
)

// lastUpdatedLayout is the timestamp format of <lastUpdated>.
const lastUpdatedLayout = "20060102150405"

// Metadata is the artifact-level maven-metadata.xml document.
type Metadata struct {
	XMLName    xml.Name   `xml:"metadata"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Versioning Versioning `xml:"versioning"`
}

// Versioning lists the published versions of an artifact.
type Versioning struct {
	Latest      string   `xml:"latest,omitempty"`
	Release     string   `xml:"release,omitempty"`
	Versions    []string `xml:"versions>version,omitempty"`
	LastUpdated string   `xml:"lastUpdated,omitempty"`
}

// ParseMetadata decodes a maven-metadata.xml document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// HasVersion reports whether v is listed.
func (m *Metadata) HasVersion(v string) bool {
	return slices.Contains(m.Versioning.Versions, v)
}

// Merge records c's version in m. If m is nil a new document is started.
// Versions stay sorted; latest is the highest version and release the highest
// non-snapshot version.
func Merge(m *Metadata, c coordinate.Coordinate, now time.Time) *Metadata {
	if m == nil {
		m = &Metadata{}
	}
	out := &Metadata{
		GroupID:    c.Group,
		ArtifactID: c.ArtifactID,
		Versioning: Versioning{
			Versions: slices.Clone(m.Versioning.Versions),
		},
	}
	if !slices.Contains(out.Versioning.Versions, c.Version) {
		out.Versioning.Versions = append(out.Versioning.Versions, c.Version)
	}
	slices.SortStableFunc(out.Versioning.Versions, compareVersions)

	for _, v := range out.Versioning.Versions {
		out.Versioning.Latest = v
		if !(coordinate.Coordinate{Version: v}).IsSnapshot() {
			out.Versioning.Release = v
		}
	}
	out.Versioning.LastUpdated = now.UTC().Format(lastUpdatedLayout)
	return out
}

// Render serializes the metadata document.
func (m *Metadata) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// compareVersions orders parseable versions semantically and falls back to
// lexical order for the rest, which sort after parseable ones.
func compareVersions(a, b string) int {
	va, errA := goversion.NewVersion(a)
	vb, errB := goversion.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
