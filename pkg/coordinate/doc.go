// Package coordinate resolves and validates artifact coordinates.
//
// A [Coordinate] is the immutable (group, artifactId, version) triple that
// uniquely identifies a published artifact set, for example
// "com.harleyoconnor:serdes:1.2.3".
//
// # Resolution
//
// [Resolve] trims the raw inputs and validates them:
//
//   - group is a dotted identifier ("com.example", "io.github.user")
//   - artifactId is non-empty with no whitespace or path separators
//   - version follows a recognized grammar (see below)
//
// Resolve is a pure function: the same inputs always yield the same
// Coordinate or the same error, and it performs no I/O.
//
// # Version Grammar
//
// A version is accepted when it is either:
//
//   - a semantic or Maven-style version ("1.2.3", "1.0", "31.1-jre",
//     "2.0.0-rc.1+build.5", "1.0-SNAPSHOT"), parsed with hashicorp/go-version
//   - a date-based version ("20240115", "2024.01.15", "2024-01-15"),
//     optionally followed by a "-qualifier" or ".N" suffix
package coordinate
