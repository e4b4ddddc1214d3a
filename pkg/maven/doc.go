// Package maven implements the Maven repository wire format used for
// publishing.
//
// # Layout
//
// Files of a coordinate live under
//
//	<group with dots as slashes>/<artifactId>/<version>/
//
// and are named "<artifactId>-<version>[-<classifier>].<ext>". The POM is
// "<artifactId>-<version>.pom". Every file is accompanied by checksum sidecars
// (".sha1", ".md5", ".sha256", ".sha512").
//
// The artifact-level "maven-metadata.xml" lists all published versions and is
// the only file a publisher rewrites.
//
// # POM
//
// [RenderPOM] produces the project descriptor (license, developers, SCM and
// declared dependencies) in POM 4.0.0 form.
package maven
