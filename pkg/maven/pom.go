package maven

import (
	"encoding/xml"

	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/descriptor"
)

const (
	pomNamespace      = "http://maven.apache.org/POM/4.0.0"
	pomSchemaInstance = "http://www.w3.org/2001/XMLSchema-instance"
	pomSchemaLocation = "http://maven.apache.org/POM/4.0.0 https://maven.apache.org/xsd/maven-4.0.0.xsd"
)

type pomProject struct {
	XMLName        xml.Name        `xml:"project"`
	Xmlns          string          `xml:"xmlns,attr"`
	XmlnsXSI       string          `xml:"xmlns:xsi,attr"`
	SchemaLocation string          `xml:"xsi:schemaLocation,attr"`
	ModelVersion   string          `xml:"modelVersion"`
	GroupID        string          `xml:"groupId"`
	ArtifactID     string          `xml:"artifactId"`
	Version        string          `xml:"version"`
	Packaging      string          `xml:"packaging,omitempty"`
	Name           string          `xml:"name"`
	Description    string          `xml:"description,omitempty"`
	URL            string          `xml:"url"`
	Licenses       []pomLicense    `xml:"licenses>license"`
	Developers     []pomDeveloper  `xml:"developers>developer"`
	SCM            pomSCM          `xml:"scm"`
	Dependencies   []pomDependency `xml:"dependencies>dependency,omitempty"`
}

type pomLicense struct {
	Name string `xml:"name"`
	URL  string `xml:"url"`
}

type pomDeveloper struct {
	ID    string `xml:"id"`
	Name  string `xml:"name,omitempty"`
	Email string `xml:"email,omitempty"`
}

type pomSCM struct {
	Connection          string `xml:"connection"`
	DeveloperConnection string `xml:"developerConnection"`
	URL                 string `xml:"url"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope,omitempty"`
}

// RenderPOM serializes the descriptor of c as a POM document.
// Packaging "jar" is the POM default and is omitted.
func RenderPOM(c coordinate.Coordinate, packaging string, d descriptor.Descriptor) ([]byte, error) {
	p := pomProject{
		Xmlns:          pomNamespace,
		XmlnsXSI:       pomSchemaInstance,
		SchemaLocation: pomSchemaLocation,
		ModelVersion:   "4.0.0",
		GroupID:        c.Group,
		ArtifactID:     c.ArtifactID,
		Version:        c.Version,
		Name:           d.Name,
		Description:    d.Description,
		URL:            d.URL,
		Licenses:       []pomLicense{{Name: d.License.Name, URL: d.License.URL}},
		SCM: pomSCM{
			Connection:          d.SCM.Connection,
			DeveloperConnection: d.SCM.DeveloperConnection,
			URL:                 d.SCM.URL,
		},
	}
	if packaging != "jar" {
		p.Packaging = packaging
	}
	for _, dev := range d.Developers {
		p.Developers = append(p.Developers, pomDeveloper{ID: dev.ID, Name: dev.Name, Email: dev.Email})
	}
	for _, dep := range d.Dependencies {
		scope := dep.Scope
		if scope == descriptor.ScopeCompile {
			scope = ""
		}
		p.Dependencies = append(p.Dependencies, pomDependency{
			GroupID:    dep.Group,
			ArtifactID: dep.ArtifactID,
			Version:    dep.Version,
			Scope:      scope,
		})
	}

	body, err := xml.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
