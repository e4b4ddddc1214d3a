// Package config loads pubkit.toml project files.
//
// A project file names the coordinate, the descriptor metadata, the build
// outputs and the repository targets:
//
//	group = "com.harleyoconnor.serdes"
//	artifactId = "SerDes"
//	version = "0.0.5"
//	name = "SerDes"
//	url = "https://github.com/Harleyoc1/${name}"
//
//	[license]
//	name = "MIT"
//	url = "https://mit-license.org"
//
//	[[developers]]
//	id = "harleyoconnor"
//
//	[scm]
//	connection = "scm:git:git://github.com/Harleyoc1/${name}.git"
//	developerConnection = "scm:git:ssh://github.com/Harleyoc1/${name}.git"
//	url = "https://github.com/Harleyoc1/${name}"
//
//	[outputs]
//	primary = "build/libs/${name}-${version}.jar"
//	sources = "build/libs/${name}-${version}-sources.jar"
//
//	[[targets]]
//	id = "harleyoconnor"
//	url = "https://harleyoconnor.com/maven"
//	authRef = "env:HARLEYOCONNOR_MAVEN"
//
// ${key} placeholders expand from [properties] and from name, group,
// artifactId and version.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pubkit/pkg/artifact"
	"github.com/matzehuels/pubkit/pkg/descriptor"
	"github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/httputil"
	"github.com/matzehuels/pubkit/pkg/pipeline"
	"github.com/matzehuels/pubkit/pkg/publish"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "pubkit.toml"

// PrimaryKey is the [outputs] key of the primary artifact.
const PrimaryKey = "primary"

// Ledger backends.
const (
	LedgerFile  = "file"
	LedgerRedis = "redis"
	LedgerNone  = "none"
)

// DefaultIndexURL is the package index used for dependency checks.
const DefaultIndexURL = "https://repo1.maven.org/maven2"

// File is a decoded project file.
type File struct {
	Group      string `toml:"group"`
	ArtifactID string `toml:"artifactId"`
	Version    string `toml:"version"`
	Packaging  string `toml:"packaging"`

	descriptor.Metadata

	Targets    []publish.Target  `toml:"targets"`
	Outputs    map[string]string `toml:"outputs"`
	Properties map[string]string `toml:"properties"`

	Retry              Retry  `toml:"retry"`
	Concurrency        int    `toml:"concurrency"`
	VerifyDependencies bool   `toml:"verifyDependencies"`
	Index              Index  `toml:"index"`
	Ledger             Ledger `toml:"ledger"`

	// dir is the directory relative output paths resolve against.
	dir string
}

// Retry configures upload retries.
type Retry struct {
	MaxAttempts  int           `toml:"maxAttempts"`
	InitialDelay time.Duration `toml:"initialDelay"`
	MaxDelay     time.Duration `toml:"maxDelay"`
}

// Index configures the package index used by the dependency preflight.
type Index struct {
	URL      string        `toml:"url"`
	CacheTTL time.Duration `toml:"cacheTTL"`
}

// Ledger configures where publish receipts are kept.
type Ledger struct {
	Backend  string `toml:"backend"`
	RedisURL string `toml:"redisURL"`
	Prefix   string `toml:"prefix"`
}

// Load reads and decodes the project file at path.
// Unknown keys are rejected so that typos do not silently drop settings.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Parse decodes a project file. Relative output paths resolve against the
// working directory.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.WithFields(errors.ErrCodeInvalidConfig, keys, "unknown configuration keys")
	}
	f.dir = "."
	return &f, nil
}

// Override replaces coordinate parts with non-empty flag values.
func (f *File) Override(group, artifactID, version string) {
	if group != "" {
		f.Group = group
	}
	if artifactID != "" {
		f.ArtifactID = artifactID
	}
	if version != "" {
		f.Version = version
	}
}

// SetDefaults fills unset options.
func (f *File) SetDefaults() {
	if f.Packaging == "" {
		f.Packaging = artifact.DefaultPackaging
	}
	def := httputil.DefaultPolicy()
	if f.Retry.MaxAttempts <= 0 {
		f.Retry.MaxAttempts = def.MaxAttempts
	}
	if f.Retry.InitialDelay <= 0 {
		f.Retry.InitialDelay = def.InitialDelay
	}
	if f.Retry.MaxDelay <= 0 {
		f.Retry.MaxDelay = def.MaxDelay
	}
	if f.Index.URL == "" {
		f.Index.URL = DefaultIndexURL
	}
	if f.Index.CacheTTL <= 0 {
		f.Index.CacheTTL = 24 * time.Hour
	}
	if f.Ledger.Backend == "" {
		f.Ledger.Backend = LedgerFile
	}
}

// Validate checks options that are not part of a run's inputs.
// Coordinate, metadata and target validation belong to the pipeline.
func (f *File) Validate() error {
	switch f.Ledger.Backend {
	case LedgerFile, LedgerNone:
	case LedgerRedis:
		if f.Ledger.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "ledger.redisURL is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown ledger backend %q", f.Ledger.Backend)
	}
	if f.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "concurrency must not be negative")
	}
	if f.Index.URL != "" {
		if err := errors.ValidateURL(f.Index.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid index.url")
		}
	}
	return nil
}

// Policy returns the retry policy.
func (f *File) Policy() httputil.Policy {
	return httputil.Policy{
		MaxAttempts:  f.Retry.MaxAttempts,
		InitialDelay: f.Retry.InitialDelay,
		MaxDelay:     f.Retry.MaxDelay,
	}
}

// OutputPaths returns classifier → path with the primary key mapped to the
// empty classifier and relative paths resolved against the file's directory.
func (f *File) OutputPaths() map[string]string {
	out := make(map[string]string, len(f.Outputs))
	for key, p := range f.Outputs {
		classifier := key
		if key == PrimaryKey {
			classifier = artifact.Primary
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(f.dir, p)
		}
		out[classifier] = p
	}
	return out
}

// Inputs reads the build outputs and returns the pipeline inputs.
func (f *File) Inputs() (pipeline.Inputs, error) {
	paths := f.OutputPaths()
	if p, ok := paths[artifact.Primary]; ok {
		if _, err := os.Stat(p); err != nil {
			return pipeline.Inputs{}, errors.Wrap(errors.ErrCodeMissingPrimaryArtifact, err, "primary artifact %s", p)
		}
	}
	outputs, err := artifact.LoadOutputs(paths)
	if err != nil {
		return pipeline.Inputs{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load build outputs")
	}
	return pipeline.Inputs{
		Group:              f.Group,
		ArtifactID:         f.ArtifactID,
		Version:            f.Version,
		Metadata:           f.Metadata,
		Outputs:            outputs,
		Packaging:          f.Packaging,
		Targets:            f.Targets,
		VerifyDependencies: f.VerifyDependencies,
	}, nil
}
