package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/pubkit/pkg/cache"
	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/pipeline"
	"github.com/matzehuels/pubkit/pkg/publish"
)

func report(runID string) *pipeline.Report {
	coord := coordinate.Coordinate{Group: "com.example", ArtifactID: "lib", Version: "1.2.3"}
	return &pipeline.Report{
		RunID:      runID,
		Coordinate: coord,
		Outcome:    pipeline.PartialFailure,
		StartedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:   3 * time.Second,
		Results: []publish.Result{
			{Target: publish.Target{ID: "central"}, Coordinate: coord, Outcome: publish.Success, Attempts: 1},
			{Target: publish.Target{ID: "mirror"}, Coordinate: coord, Outcome: publish.Failure,
				Code: errors.ErrCodeVersionConflict, Message: "conflict", Attempts: 1},
		},
	}
}

func TestLedger_RecordAndLoad(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	l := New(c, nil, 0)

	if _, ok, err := l.Last(ctx, "com.example:lib:1.2.3"); ok || err != nil {
		t.Fatalf("Last() on empty ledger = %v, %v", ok, err)
	}

	if err := l.Record(ctx, report("run-1")); err != nil {
		t.Fatal(err)
	}
	if err := l.Record(ctx, report("run-2")); err != nil {
		t.Fatal(err)
	}

	last, ok, err := l.Last(ctx, "com.example:lib:1.2.3")
	if err != nil || !ok {
		t.Fatalf("Last() = %v, %v", ok, err)
	}
	if last.RunID != "run-2" {
		t.Errorf("latest run = %s, want run-2", last.RunID)
	}
	if len(last.Results) != 2 || last.Results[1].Code != errors.ErrCodeVersionConflict {
		t.Errorf("results = %+v", last.Results)
	}

	first, ok, err := l.Run(ctx, "run-1")
	if err != nil || !ok || first.Outcome != pipeline.PartialFailure {
		t.Errorf("Run(run-1) = %+v, %v, %v", first, ok, err)
	}
}

func TestLedger_NullCacheForgets(t *testing.T) {
	ctx := context.Background()
	l := New(cache.NewNullCache(), cache.NewScopedKeyer(nil, "pubkit:"), time.Hour)
	if err := l.Record(ctx, report("run-1")); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := l.Run(ctx, "run-1"); ok {
		t.Error("null cache returned a receipt")
	}
}
