package maven

import (
	"path"
	"strings"

	"github.com/matzehuels/pubkit/pkg/coordinate"
)

// MetadataFile is the artifact-level version index.
const MetadataFile = "maven-metadata.xml"

// ChecksumAlgorithms lists the sidecar extensions written for every file, in upload order.
var ChecksumAlgorithms = []string{"sha1", "md5", "sha256", "sha512"}

// GroupPath converts "com.example" to "com/example".
func GroupPath(group string) string {
	return strings.ReplaceAll(group, ".", "/")
}

// ArtifactDir returns the directory holding every version of the artifact.
func ArtifactDir(c coordinate.Coordinate) string {
	return path.Join(GroupPath(c.Group), c.ArtifactID)
}

// VersionDir returns the directory holding the files of one version.
func VersionDir(c coordinate.Coordinate) string {
	return path.Join(ArtifactDir(c), c.Version)
}

// FileName returns the file name for a classifier and extension.
// The empty classifier names the primary artifact.
func FileName(c coordinate.Coordinate, classifier, ext string) string {
	name := c.ArtifactID + "-" + c.Version
	if classifier != "" {
		name += "-" + classifier
	}
	return name + "." + ext
}

// FilePath returns the repository-relative path of a version file.
func FilePath(c coordinate.Coordinate, classifier, ext string) string {
	return path.Join(VersionDir(c), FileName(c, classifier, ext))
}

// POMPath returns the repository-relative path of the POM.
func POMPath(c coordinate.Coordinate) string {
	return FilePath(c, "", "pom")
}

// MetadataPath returns the repository-relative path of maven-metadata.xml.
func MetadataPath(c coordinate.Coordinate) string {
	return path.Join(ArtifactDir(c), MetadataFile)
}

// ChecksumPath returns the sidecar path for a file and algorithm.
func ChecksumPath(file, algo string) string {
	return file + "." + algo
}

// IsChecksumPath reports whether p names a checksum sidecar.
func IsChecksumPath(p string) bool {
	for _, algo := range ChecksumAlgorithms {
		if strings.HasSuffix(p, "."+algo) {
			return true
		}
	}
	return false
}

// IsMetadataPath reports whether p names maven-metadata.xml or one of its sidecars.
// Metadata is the only content a repository may overwrite.
func IsMetadataPath(p string) bool {
	base := path.Base(p)
	return base == MetadataFile || strings.HasPrefix(base, MetadataFile+".")
}
