// Package maven provides a package-index client for Maven-layout repositories.
//
// # Overview
//
// The client reads artifact-level maven-metadata.xml documents to learn which
// versions of an artifact exist. The publisher uses it as a preflight: every
// declared runtime dependency must resolve before anything is uploaded.
//
// # Usage
//
//	client, err := maven.NewClient(24 * time.Hour)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info, err := client.FetchArtifact(ctx, "com.google.guava", "guava", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info.Coordinate(), info.Release)
//
// # Caching
//
// Responses are cached under ~/.cache/pubkit/ in the "maven:" namespace.
// Pass refresh=true to bypass the cache.
package maven
