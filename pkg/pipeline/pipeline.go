// Package pipeline provides the publishing pipeline for pubkit.
//
// This package sequences the complete resolve → assemble → bind → publish
// run that the CLI drives. By centralizing this logic the CLI commands
// (publish, validate) share one notion of what a valid run is.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Prepare: resolve the coordinate, assemble the artifact set and bind
//     the descriptor. The three steps are independent and run concurrently.
//     Any failure here is a local validation error and aborts the run
//     before network I/O.
//  2. Publish: fan out one upload per repository target. Targets never
//     affect each other; results come back in target order.
//
// # Usage
//
//	runner := pipeline.NewRunner(publish.New(publish.WithLogger(logger)), logger)
//	report, err := runner.Run(ctx, pipeline.Inputs{
//	    Group:      "com.example",
//	    ArtifactID: "lib",
//	    Version:    "1.2.3",
//	    Metadata:   meta,
//	    Outputs:    artifact.Outputs{artifact.Primary: jar},
//	    Targets:    []publish.Target{{ID: "central", URL: url}},
//	})
//	if err != nil {
//	    // validation failure, nothing was uploaded
//	}
//	os.Exit(report.Outcome.ExitCode())
package pipeline

import (
	"github.com/matzehuels/pubkit/pkg/artifact"
	"github.com/matzehuels/pubkit/pkg/descriptor"
	"github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/publish"
)

// Inputs is everything one run needs. Inputs are not modified by the run.
type Inputs struct {
	// Raw coordinate parts; whitespace is trimmed during resolution.
	Group      string
	ArtifactID string
	Version    string

	Metadata  descriptor.Metadata
	Outputs   artifact.Outputs
	Packaging string // defaults to "jar"

	Targets []publish.Target

	// VerifyDependencies checks declared runtime dependencies against the
	// package index before anything is uploaded. Requires Runner.Index.
	VerifyDependencies bool
}

// ValidateTargets checks that at least one target is configured, that
// every target is valid and that target IDs are unique.
func (in Inputs) ValidateTargets() error {
	if len(in.Targets) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no repository targets configured")
	}
	seen := make(map[string]bool, len(in.Targets))
	for _, t := range in.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate target id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
