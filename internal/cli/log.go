package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pubkit/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Prepared com.example:lib:1.0.0 (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports pipeline stages and upload attempts through the logger.
// All events are debug-level and only show with --verbose.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.PublishHooks  = logHooks{}
)

// installHooks registers logger-backed pipeline and publish hooks.
func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetPublishHooks(h)
}

func (h logHooks) OnStageStart(_ context.Context, stage string) {
	h.logger.Debug("stage started", "stage", stage)
}

func (h logHooks) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "stage", stage, "duration", d.Round(time.Millisecond), "error", err)
		return
	}
	h.logger.Debug("stage done", "stage", stage, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnTargetStart(_ context.Context, target, coordinate string) {
	h.logger.Debug("target started", "target", target, "coordinate", coordinate)
}

func (h logHooks) OnAttempt(_ context.Context, target, path string, attempt int, err error) {
	if err != nil {
		h.logger.Debug("upload failed", "target", target, "path", path, "attempt", attempt, "error", err)
		return
	}
	h.logger.Debug("uploaded", "target", target, "path", path, "attempt", attempt)
}

func (h logHooks) OnTargetComplete(_ context.Context, target, outcome string, attempts int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("target finished", "target", target, "outcome", outcome, "attempts", attempts, "duration", d.Round(time.Millisecond), "error", err)
		return
	}
	h.logger.Debug("target finished", "target", target, "outcome", outcome, "attempts", attempts, "duration", d.Round(time.Millisecond))
}
