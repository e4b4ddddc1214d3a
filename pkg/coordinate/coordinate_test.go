package coordinate

import (
	"testing"

	"github.com/matzehuels/pubkit/pkg/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name                      string
		group, artifact, version string
		wantErr                   bool
	}{
		{"semantic", "com.example", "lib", "1.2.3", false},
		{"two part", "com.example", "lib", "1.0", false},
		{"qualifier", "com.google.guava", "guava", "31.1-jre", false},
		{"prerelease and build", "io.github.user", "lib", "2.0.0-rc.1+build.5", false},
		{"snapshot", "com.example", "lib", "1.0-SNAPSHOT", false},
		{"date compact", "com.example", "lib", "20240115", false},
		{"date dotted", "com.example", "lib", "2024.01.15", false},
		{"date dashed with build", "com.example", "lib", "2024-01-15.2", false},
		{"trimmed", "  com.example ", " lib ", " 1.2.3 ", false},

		{"empty group", "", "lib", "1.2.3", true},
		{"empty artifact", "com.example", "", "1.2.3", true},
		{"empty version", "com.example", "lib", "", true},
		{"whitespace artifact", "com.example", "my lib", "1.2.3", true},
		{"slash artifact", "com.example", "my/lib", "1.2.3", true},
		{"backslash artifact", "com.example", "my\\lib", "1.2.3", true},
		{"bad group", "com..example", "lib", "1.2.3", true},
		{"group with slash", "com/example", "lib", "1.2.3", true},
		{"word version", "com.example", "lib", "latest", true},
		{"double dot version", "com.example", "lib", "1..2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Resolve(tt.group, tt.artifact, tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidCoordinate) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidCoordinate)
			}
			if err == nil && (c.Group == "" || c.ArtifactID == "" || c.Version == "") {
				t.Errorf("Resolve() returned incomplete coordinate %+v", c)
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	a, err := Resolve("com.example", "lib", "1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resolve("com.example", "lib", "1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("Resolve() not deterministic: %+v != %+v", a, b)
	}

	// Resolving an already resolved coordinate is the identity.
	c, err := Resolve(a.Group, a.ArtifactID, a.Version)
	if err != nil || c != a {
		t.Errorf("Resolve() not idempotent: %+v, %v", c, err)
	}
}

func TestIsDateVersion(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"20240115", true},
		{"2024.01.15", true},
		{"2024-01-15-hotfix", true},
		{"2024.13.01", false},
		{"2024-00-10", false},
		{"2024.01-15", false}, // mixed separators
		{"1.2.3", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := isDateVersion(tt.version); got != tt.want {
				t.Errorf("isDateVersion(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestCoordinate_String(t *testing.T) {
	c := Coordinate{Group: "com.example", ArtifactID: "lib", Version: "1.0-SNAPSHOT"}
	if got := c.String(); got != "com.example:lib:1.0-SNAPSHOT" {
		t.Errorf("String() = %q", got)
	}
	if got := c.Module(); got != "com.example:lib" {
		t.Errorf("Module() = %q", got)
	}
	if !c.IsSnapshot() {
		t.Error("IsSnapshot() = false, want true")
	}
}
