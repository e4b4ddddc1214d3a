package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/pubkit/pkg/artifact"
	"github.com/matzehuels/pubkit/pkg/errors"
)

const sample = `
group = "com.harleyoconnor.serdes"
artifactId = "SerDes"
version = "0.0.5"
name = "SerDes"
description = "Serialisation library"
url = "https://github.com/Harleyoc1/${name}"

[license]
name = "MIT"
url = "https://mit-license.org"

[[developers]]
id = "harleyoconnor"
name = "Harley O'Connor"
email = "harleyoc1@gmail.com"

[scm]
connection = "scm:git:git://github.com/Harleyoc1/${name}.git"
developerConnection = "scm:git:ssh://github.com/Harleyoc1/${name}.git"
url = "https://github.com/Harleyoc1/${name}"

[[dependencies]]
group = "com.harleyoconnor.javautilities"
artifactId = "JavaUtilities"
version = "${utilsVersion}"

[properties]
utilsVersion = "0.1.0"
libs = "build/libs"

[outputs]
primary = "${libs}/${name}-${version}.jar"
sources = "${libs}/${name}-${version}-sources.jar"

[[targets]]
id = "harleyoconnor"
url = "https://harleyoconnor.com/maven"
authRef = "env:HARLEYOCONNOR_MAVEN"

[retry]
maxAttempts = 5
initialDelay = "500ms"
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if f.Group != "com.harleyoconnor.serdes" || f.ArtifactID != "SerDes" || f.Version != "0.0.5" {
		t.Errorf("coordinate = %s:%s:%s", f.Group, f.ArtifactID, f.Version)
	}
	if f.Name != "SerDes" || f.License.Name != "MIT" || len(f.Developers) != 1 {
		t.Errorf("metadata = %+v", f.Metadata)
	}
	if len(f.Targets) != 1 || f.Targets[0].AuthRef != "env:HARLEYOCONNOR_MAVEN" {
		t.Errorf("targets = %+v", f.Targets)
	}
	if f.Retry.MaxAttempts != 5 || f.Retry.InitialDelay != 500*time.Millisecond {
		t.Errorf("retry = %+v", f.Retry)
	}
}

func TestParse_UnknownKeys(t *testing.T) {
	_, err := Parse([]byte("group = \"g\"\nartefactId = \"typo\"\n"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("Parse() error = %v, want INVALID_CONFIG", err)
	}
	if fields := errors.GetFields(err); len(fields) != 1 || fields[0] != "artefactId" {
		t.Errorf("fields = %v", fields)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("group = ")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
	}
}

func TestInterpolate(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Interpolate(); err != nil {
		t.Fatalf("Interpolate() error: %v", err)
	}
	if f.URL != "https://github.com/Harleyoc1/SerDes" {
		t.Errorf("url = %s", f.URL)
	}
	if f.SCM.Connection != "scm:git:git://github.com/Harleyoc1/SerDes.git" {
		t.Errorf("scm.connection = %s", f.SCM.Connection)
	}
	if f.Dependencies[0].Version != "0.1.0" {
		t.Errorf("dependency version = %s", f.Dependencies[0].Version)
	}
	if got := f.Outputs["primary"]; got != "build/libs/SerDes-0.0.5.jar" {
		t.Errorf("outputs.primary = %s", got)
	}
}

func TestInterpolate_UsesOverrides(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	f.Override("", "", "0.0.6")
	if err := f.Interpolate(); err != nil {
		t.Fatal(err)
	}
	if got := f.Outputs["sources"]; got != "build/libs/SerDes-0.0.6-sources.jar" {
		t.Errorf("outputs.sources = %s", got)
	}
}

func TestInterpolate_Undefined(t *testing.T) {
	f, err := Parse([]byte(`url = "https://${host}/x"` + "\n" + `description = "${host} ${other}"`))
	if err != nil {
		t.Fatal(err)
	}
	err = f.Interpolate()
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("Interpolate() error = %v", err)
	}
	if fields := errors.GetFields(err); len(fields) != 2 || fields[0] != "host" || fields[1] != "other" {
		t.Errorf("fields = %v", fields)
	}
}

func TestInterpolate_ChainedThroughBuiltins(t *testing.T) {
	f, err := Parse([]byte(`
name = "${projectName}"
url = "https://github.com/Harleyoc1/${name}"
version = "${major}.5"

[properties]
projectName = "SerDes"
major = "0.0"
jar = "${name}-${version}.jar"
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Interpolate(); err != nil {
		t.Fatalf("Interpolate() error: %v", err)
	}
	if f.Name != "SerDes" {
		t.Errorf("name = %s", f.Name)
	}
	if f.URL != "https://github.com/Harleyoc1/SerDes" {
		t.Errorf("url = %s", f.URL)
	}
	if f.Version != "0.0.5" {
		t.Errorf("version = %s", f.Version)
	}
	if got := f.Properties["jar"]; got != "SerDes-0.0.5.jar" {
		t.Errorf("properties.jar = %s", got)
	}
}

func TestInterpolate_Cycle(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   []string
	}{
		{
			name:   "mutual",
			config: "name = \"${alias}\"\n[properties]\nalias = \"${name}\"\n",
			want:   []string{"alias", "name"},
		},
		{
			name:   "self",
			config: "[properties]\nloop = \"x${loop}\"\n",
			want:   []string{"loop"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.config))
			if err != nil {
				t.Fatal(err)
			}
			err = f.Interpolate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Interpolate() error = %v", err)
			}
			if fields := errors.GetFields(err); !slices.Equal(fields, tt.want) {
				t.Errorf("fields = %v, want %v", fields, tt.want)
			}
		})
	}
}

func TestOverride(t *testing.T) {
	f := &File{Group: "g", ArtifactID: "a", Version: "1"}
	f.Override("", "b", "")
	if f.Group != "g" || f.ArtifactID != "b" || f.Version != "1" {
		t.Errorf("after Override: %+v", f)
	}
}

func TestSetDefaults(t *testing.T) {
	f := &File{Retry: Retry{MaxAttempts: 7}}
	f.SetDefaults()
	if f.Packaging != "jar" || f.Ledger.Backend != LedgerFile || f.Index.URL != DefaultIndexURL {
		t.Errorf("defaults = %+v", f)
	}
	p := f.Policy()
	if p.MaxAttempts != 7 || p.InitialDelay != time.Second || p.MaxDelay != 30*time.Second {
		t.Errorf("policy = %+v", p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		ledger Ledger
		ok     bool
	}{
		{"file", Ledger{Backend: LedgerFile}, true},
		{"none", Ledger{Backend: LedgerNone}, true},
		{"redis", Ledger{Backend: LedgerRedis, RedisURL: "redis://localhost:6379/0"}, true},
		{"redis without url", Ledger{Backend: LedgerRedis}, false},
		{"mongo", Ledger{Backend: "mongo"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Ledger: tt.ledger}
			if err := f.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestLoad_Inputs(t *testing.T) {
	dir := t.TempDir()
	libs := filepath.Join(dir, "build", "libs")
	if err := os.MkdirAll(libs, 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(libs, "SerDes-0.0.5.jar"), []byte("jar"), 0o644)
	os.WriteFile(filepath.Join(libs, "SerDes-0.0.5-sources.jar"), []byte("src"), 0o644)
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f.SetDefaults()
	if err := f.Interpolate(); err != nil {
		t.Fatal(err)
	}
	in, err := f.Inputs()
	if err != nil {
		t.Fatalf("Inputs() error: %v", err)
	}
	if string(in.Outputs[artifact.Primary]) != "jar" || string(in.Outputs[artifact.Sources]) != "src" {
		t.Errorf("outputs = %v", in.Outputs)
	}
	if in.Packaging != "jar" || len(in.Targets) != 1 {
		t.Errorf("inputs = %+v", in)
	}

	os.Remove(filepath.Join(libs, "SerDes-0.0.5.jar"))
	if _, err := f.Inputs(); !errors.Is(err, errors.ErrCodeMissingPrimaryArtifact) {
		t.Errorf("Inputs() without primary = %v, want MISSING_PRIMARY_ARTIFACT", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v", err)
	}
}
