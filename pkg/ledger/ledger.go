// Package ledger keeps publish receipts: the report of every run, and the
// latest report per coordinate, stored in a [cache.Cache] backend.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/pubkit/pkg/cache"
	"github.com/matzehuels/pubkit/pkg/pipeline"
)

// DefaultRetention is how long receipts are kept.
const DefaultRetention = 90 * 24 * time.Hour

// Ledger records pipeline reports. It implements [pipeline.Recorder].
type Ledger struct {
	cache     cache.Cache
	keyer     cache.Keyer
	retention time.Duration
}

// New creates a ledger over c. A nil keyer uses [cache.NewDefaultKeyer];
// a retention of 0 uses [DefaultRetention].
func New(c cache.Cache, keyer cache.Keyer, retention time.Duration) *Ledger {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Ledger{cache: c, keyer: keyer, retention: retention}
}

// Record stores r under its run ID and as the latest receipt of its coordinate.
func (l *Ledger) Record(ctx context.Context, r *pipeline.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := l.cache.Set(ctx, l.keyer.RunKey(r.RunID), data, l.retention); err != nil {
		return fmt.Errorf("store run %s: %w", r.RunID, err)
	}
	if err := l.cache.Set(ctx, l.keyer.ReceiptKey(r.Coordinate.String()), data, l.retention); err != nil {
		return fmt.Errorf("store receipt %s: %w", r.Coordinate, err)
	}
	return nil
}

// Last returns the latest report of coordinate ("group:artifactId:version").
// ok is false when no receipt exists.
func (l *Ledger) Last(ctx context.Context, coordinate string) (r *pipeline.Report, ok bool, err error) {
	return l.load(ctx, l.keyer.ReceiptKey(coordinate))
}

// Run returns the report of one run.
func (l *Ledger) Run(ctx context.Context, runID string) (r *pipeline.Report, ok bool, err error) {
	return l.load(ctx, l.keyer.RunKey(runID))
}

func (l *Ledger) load(ctx context.Context, key string) (*pipeline.Report, bool, error) {
	data, ok, err := l.cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var r pipeline.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false, fmt.Errorf("decode receipt %s: %w", key, err)
	}
	return &r, true, nil
}

var _ pipeline.Recorder = (*Ledger)(nil)
