package publish

import (
	"time"

	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/errors"
)

// Target is one remote repository.
type Target struct {
	ID      string `json:"id" toml:"id"`
	URL     string `json:"url" toml:"url"`
	AuthRef string `json:"authRef,omitempty" toml:"authRef"`
}

// Validate checks the target ID and URL.
func (t Target) Validate() error {
	if err := errors.ValidateName("target id", t.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid target")
	}
	if err := errors.ValidateURL(t.URL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid target %s", t.ID)
	}
	return nil
}

// Outcome of one target publish.
type Outcome string

const (
	Success Outcome = "SUCCESS"
	Failure Outcome = "FAILURE"
)

// Result is the outcome of publishing one artifact set to one target.
type Result struct {
	Target         Target                `json:"target"`
	Coordinate     coordinate.Coordinate `json:"coordinate"`
	Outcome        Outcome               `json:"outcome"`
	Code           errors.Code           `json:"code,omitempty"`
	Message        string                `json:"message,omitempty"`
	Attempts       int                   `json:"attempts"`
	AlreadyPresent bool                  `json:"alreadyPresent,omitempty"`
	Duration       time.Duration         `json:"duration"`

	// Err is the coded failure; nil on success. Not serialized.
	Err error `json:"-"`
}

// OK reports whether the publish succeeded.
func (r Result) OK() bool { return r.Outcome == Success }

// Cancelled returns the result of a target whose publish never started.
func Cancelled(t Target, c coordinate.Coordinate, cause error) Result {
	r := Result{Target: t, Coordinate: c}
	r.fail(errors.Wrap(errors.ErrCodeCancelled, cause, "publish to %s not started", t.ID))
	return r
}

func (r *Result) fail(err error) {
	code := classify(err)
	if errors.GetCode(err) != code {
		err = errors.Wrap(code, err, "publish to %s", r.Target.ID)
	}
	r.Outcome = Failure
	r.Err = err
	r.Code = code
	r.Message = err.Error()
}
