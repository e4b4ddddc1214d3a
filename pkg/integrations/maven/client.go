package maven

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/descriptor"
	pkgerrors "github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/integrations"
	"github.com/matzehuels/pubkit/pkg/maven"
)

// CentralURL is the Maven Central repository root.
const CentralURL = "https://repo1.maven.org/maven2"

// ArtifactInfo holds the published versions of one artifact in the index.
//
// Zero values: all fields empty. This struct is safe for concurrent reads
// after construction.
type ArtifactInfo struct {
	GroupID    string   `json:"group_id"`
	ArtifactID string   `json:"artifact_id"`
	Latest     string   `json:"latest,omitempty"`
	Release    string   `json:"release,omitempty"`
	Versions   []string `json:"versions"`
}

// Coordinate returns the Maven coordinate string "groupId:artifactId".
func (a *ArtifactInfo) Coordinate() string {
	return a.GroupID + ":" + a.ArtifactID
}

// HasVersion reports whether v has been published.
func (a *ArtifactInfo) HasVersion(v string) bool {
	for _, have := range a.Versions {
		if have == v {
			return true
		}
	}
	return false
}

// Client looks up artifacts in a Maven-layout package index.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an index client for Maven Central with the specified cache TTL.
// Returns an error if the cache directory cannot be created.
func NewClient(cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCacheWithNamespace("maven:", cacheTTL)
	if err != nil {
		return nil, err
	}
	return NewClientWithBase(integrations.NewClient(cache, nil), CentralURL), nil
}

// NewClientWithBase creates an index client for any Maven-layout repository.
func NewClientWithBase(c *integrations.Client, baseURL string) *Client {
	return &Client{Client: c, baseURL: baseURL}
}

// FetchArtifact retrieves the version index of "groupId:artifactId".
//
// If refresh is true, the cache is bypassed.
//
// Returns:
//   - ArtifactInfo on success
//   - [integrations.ErrNotFound] if the artifact has no maven-metadata.xml
//   - [integrations.ErrNetwork] for HTTP failures after retries
func (c *Client) FetchArtifact(ctx context.Context, group, artifactID string, refresh bool) (*ArtifactInfo, error) {
	key := group + ":" + artifactID

	var info ArtifactInfo
	err := c.Cached(ctx, key, refresh, &info, func() error {
		return c.fetch(ctx, group, artifactID, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, group, artifactID string, info *ArtifactInfo) error {
	coord := coordinate.Coordinate{Group: group, ArtifactID: artifactID}
	url := integrations.JoinURL(c.baseURL, maven.MetadataPath(coord))

	data, err := c.GetBytes(ctx, url)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: maven artifact %s:%s", integrations.ErrNotFound, group, artifactID)
		}
		return err
	}

	meta, err := maven.ParseMetadata(data)
	if err != nil {
		return fmt.Errorf("parse metadata of %s:%s: %w", group, artifactID, err)
	}

	*info = ArtifactInfo{
		GroupID:    group,
		ArtifactID: artifactID,
		Latest:     meta.Versioning.Latest,
		Release:    meta.Versioning.Release,
		Versions:   meta.Versioning.Versions,
	}
	return nil
}

// VerifyDependencies checks that every dependency exists in the index at its
// declared version. All missing dependencies are reported together in one
// [pkgerrors.ErrCodeDependencyNotFound] error; other failures are returned
// as they occur.
func (c *Client) VerifyDependencies(ctx context.Context, deps []descriptor.Dependency) error {
	var missing []string
	for _, dep := range deps {
		info, err := c.FetchArtifact(ctx, dep.Group, dep.ArtifactID, false)
		if errors.Is(err, integrations.ErrNotFound) {
			missing = append(missing, dep.Coordinate())
			continue
		}
		if err != nil {
			return err
		}
		if !info.HasVersion(dep.Version) {
			missing = append(missing, dep.Coordinate())
		}
	}
	if len(missing) > 0 {
		return pkgerrors.WithFields(pkgerrors.ErrCodeDependencyNotFound, missing, "declared dependencies are not in the package index")
	}
	return nil
}
