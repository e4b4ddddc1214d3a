package pipeline

import (
	"time"

	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/publish"
)

// Outcome summarizes a run across all targets.
type Outcome string

const (
	Success        Outcome = "SUCCESS"
	PartialFailure Outcome = "PARTIAL_FAILURE"
	Failure        Outcome = "FAILURE"
)

// Process exit codes for each outcome. Validation and configuration errors
// exit with 1, interrupts with 130.
const (
	ExitSuccess        = 0
	ExitPartialFailure = 2
	ExitFailure        = 3
)

// ExitCode maps the outcome to the CLI exit status.
func (o Outcome) ExitCode() int {
	switch o {
	case Success:
		return ExitSuccess
	case PartialFailure:
		return ExitPartialFailure
	default:
		return ExitFailure
	}
}

// Report is the terminal output of one run.
// Results[i] is the result of Inputs.Targets[i].
type Report struct {
	RunID      string                `json:"runId"`
	Coordinate coordinate.Coordinate `json:"coordinate"`
	Results    []publish.Result      `json:"results"`
	Outcome    Outcome               `json:"outcome"`
	StartedAt  time.Time             `json:"startedAt"`
	Duration   time.Duration         `json:"duration"`
}

// Failed returns the failed results in target order.
func (r *Report) Failed() []publish.Result {
	var out []publish.Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// outcomeOf is Success when every result succeeded, Failure when none did,
// and PartialFailure otherwise.
func outcomeOf(results []publish.Result) Outcome {
	ok := 0
	for _, r := range results {
		if r.OK() {
			ok++
		}
	}
	switch ok {
	case len(results):
		return Success
	case 0:
		return Failure
	default:
		return PartialFailure
	}
}
