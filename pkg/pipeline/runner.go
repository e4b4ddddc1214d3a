package pipeline

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pubkit/pkg/artifact"
	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/descriptor"
	"github.com/matzehuels/pubkit/pkg/observability"
	"github.com/matzehuels/pubkit/pkg/publish"
)

// DependencyIndex checks that declared dependencies exist in a package index.
type DependencyIndex interface {
	VerifyDependencies(ctx context.Context, deps []descriptor.Dependency) error
}

// Recorder stores finished reports.
type Recorder interface {
	Record(ctx context.Context, r *Report) error
}

// Runner executes publishing runs.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different inputs.
type Runner struct {
	Publisher *publish.Publisher
	Logger    *log.Logger

	// Index is consulted when Inputs.VerifyDependencies is set.
	Index DependencyIndex

	// Recorder, if set, receives every report. Recording errors are logged.
	Recorder Recorder

	// Concurrency bounds parallel target uploads; 0 means one per target.
	Concurrency int

	now func() time.Time
}

// NewRunner creates a runner. A nil publisher gets [publish.New] defaults and
// a nil logger discards.
func NewRunner(p *publish.Publisher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if p == nil {
		p = publish.New(publish.WithLogger(logger))
	}
	return &Runner{Publisher: p, Logger: logger, now: time.Now}
}

// Prepared is the output of the prepare stage.
type Prepared struct {
	Coordinate coordinate.Coordinate
	Set        *artifact.Set
	Descriptor descriptor.Descriptor
}

// Prepare resolves, assembles and binds concurrently. It performs no network
// I/O except the optional dependency preflight.
func (r *Runner) Prepare(ctx context.Context, in Inputs) (*Prepared, error) {
	hooks := observability.Pipeline()
	stage := func(name string, fn func() error) func() error {
		return func() error {
			hooks.OnStageStart(ctx, name)
			start := time.Now()
			err := fn()
			hooks.OnStageComplete(ctx, name, time.Since(start), err)
			return err
		}
	}

	// Trimmed here too so assembly can run alongside resolution; if
	// Resolve accepts the parts, the two coordinates are equal.
	raw := coordinate.Coordinate{
		Group:      strings.TrimSpace(in.Group),
		ArtifactID: strings.TrimSpace(in.ArtifactID),
		Version:    strings.TrimSpace(in.Version),
	}

	var (
		p                                Prepared
		g                                errgroup.Group
		resolveErr, assembleErr, bindErr error
	)
	g.Go(stage("resolve", func() error {
		p.Coordinate, resolveErr = coordinate.Resolve(in.Group, in.ArtifactID, in.Version)
		return resolveErr
	}))
	g.Go(stage("assemble", func() error {
		p.Set, assembleErr = artifact.Assemble(raw, in.Outputs, artifact.WithPackaging(in.Packaging))
		return assembleErr
	}))
	g.Go(stage("bind", func() error {
		p.Descriptor, bindErr = descriptor.Bind(in.Metadata)
		return bindErr
	}))
	_ = g.Wait()

	// Report in a fixed order so the same inputs always yield the same error.
	for _, err := range []error{resolveErr, assembleErr, bindErr} {
		if err != nil {
			return nil, err
		}
	}
	if err := in.ValidateTargets(); err != nil {
		return nil, err
	}

	if in.VerifyDependencies && r.Index != nil {
		deps := p.Descriptor.RuntimeDependencies()
		err := stage("verify", func() error { return r.Index.VerifyDependencies(ctx, deps) })()
		if err != nil {
			return nil, err
		}
		r.Logger.Info("verified dependencies", "count", len(deps))
	}

	r.Logger.Info("prepared",
		"coordinate", p.Coordinate,
		"classifiers", len(p.Set.Classifiers()),
		"developers", len(p.Descriptor.Developers))
	return &p, nil
}

// Run prepares the inputs and publishes them to every target.
//
// A non-nil error means the run was rejected during preparation and nothing
// was uploaded. Otherwise the report carries one result per target, in
// target order, and never aborts remaining targets because one failed.
func (r *Runner) Run(ctx context.Context, in Inputs) (*Report, error) {
	now := r.now
	if now == nil {
		now = time.Now
	}
	start := now()

	p, err := r.Prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:      uuid.NewString(),
		Coordinate: p.Coordinate,
		StartedAt:  start,
	}
	report.Results = r.publishAll(ctx, p, in.Targets)
	report.Outcome = outcomeOf(report.Results)
	report.Duration = now().Sub(start)

	r.Logger.Info("run complete",
		"run", report.RunID,
		"outcome", report.Outcome,
		"failed", len(report.Failed()),
		"duration", report.Duration)

	if r.Recorder != nil {
		if err := r.Recorder.Record(context.WithoutCancel(ctx), report); err != nil {
			r.Logger.Warn("failed to record report", "run", report.RunID, "error", err)
		}
	}
	return report, nil
}

// publishAll fans out across targets. Each goroutine writes only its own
// slot, so results stay aligned with targets regardless of completion order.
func (r *Runner) publishAll(ctx context.Context, p *Prepared, targets []publish.Target) []publish.Result {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, "publish")
	start := time.Now()

	results := make([]publish.Result, len(targets))
	limit := r.Concurrency
	if limit <= 0 {
		limit = len(targets)
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			results[i] = publish.Cancelled(t, p.Coordinate, err)
			continue
		}
		g.Go(func() error {
			// A target queued behind the limit may start after cancellation.
			if err := ctx.Err(); err != nil {
				results[i] = publish.Cancelled(t, p.Coordinate, err)
				return nil
			}
			results[i] = r.Publisher.Publish(ctx, p.Set, p.Descriptor, t)
			return nil
		})
	}
	_ = g.Wait()

	hooks.OnStageComplete(ctx, "publish", time.Since(start), nil)
	return results
}
