// Package pkg provides the core libraries for pubkit library publishing.
//
// # Overview
//
// pubkit takes a project's coordinate, the artifacts produced by its build and
// its static metadata, and publishes them to one or more Maven-layout
// repositories. The pkg directory is organized into four main areas:
//
//  1. Domain logic: [coordinate], [artifact], [descriptor], [maven]
//  2. Publishing: [publish], [credentials], [pipeline]
//  3. Infrastructure: [cache], [ledger], [httputil], [observability]
//  4. Integrations: [integrations] and the [hosted] repository server
//
// # Architecture
//
// The data flow of one run:
//
//	pubkit.toml ([config])
//	         ↓
//	    [coordinate] resolve  ┐
//	    [artifact] assemble   ├ concurrently, all local
//	    [descriptor] bind     ┘
//	         ↓
//	    [integrations/maven] optional dependency preflight
//	         ↓
//	    [publish] one upload per target, isolated and retried
//	         ↓
//	    [pipeline] Report ─→ [ledger] receipt
//
// # Quick Start
//
//	in, _ := cfg.Inputs()
//	runner := pipeline.NewRunner(publish.New(), logger)
//	report, err := runner.Run(ctx, in)
//	if err != nil {
//	    // rejected locally; nothing was uploaded
//	}
//	os.Exit(report.Outcome.ExitCode())
//
// # Main Packages
//
// [coordinate] - The group:artifactId:version triple and its validation.
//
// [artifact] - Immutable artifact sets: classified payloads with checksums.
//
// [descriptor] - Validated project metadata. All missing fields are reported
// together.
//
// [maven] - Repository layout, checksum sidecars, POM rendering and
// maven-metadata.xml merging.
//
// [publish] - Per-target upload with idempotency probing, bounded retries
// and post-upload verification.
//
// [pipeline] - Prepare then fan out across targets; computes the run outcome.
//
// [ledger] - Publish receipts on a [cache] backend (file or Redis).
//
// [hosted] - A Maven-layout repository server for local and test use.
//
// # Testing
//
//	go test ./...
//	PUBKIT_TEST_REDIS_URL=redis://localhost:6379/0 go test ./pkg/cache/...
//
// [coordinate]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/coordinate
// [artifact]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/artifact
// [descriptor]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/descriptor
// [maven]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/maven
// [publish]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/publish
// [credentials]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/credentials
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/cache
// [ledger]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/ledger
// [httputil]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/observability
// [integrations]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/integrations
// [integrations/maven]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/integrations/maven
// [hosted]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/hosted
// [config]: https://pkg.go.dev/github.com/matzehuels/pubkit/pkg/config
package pkg
