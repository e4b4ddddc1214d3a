package publish

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pubkit/pkg/artifact"
	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/credentials"
	"github.com/matzehuels/pubkit/pkg/descriptor"
	"github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/httputil"
	"github.com/matzehuels/pubkit/pkg/integrations"
	"github.com/matzehuels/pubkit/pkg/maven"
	"github.com/matzehuels/pubkit/pkg/observability"
)

// Publisher uploads artifact sets to repository targets.
//
// A Publisher holds only immutable configuration and may publish to many
// targets concurrently.
type Publisher struct {
	Policy      httputil.Policy
	Credentials credentials.Store
	Logger      *log.Logger

	client *integrations.Client
	now    func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithPolicy sets the retry policy.
func WithPolicy(p httputil.Policy) Option { return func(pub *Publisher) { pub.Policy = p } }

// WithCredentials sets the credential store used to resolve target auth references.
func WithCredentials(s credentials.Store) Option {
	return func(pub *Publisher) { pub.Credentials = s }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(pub *Publisher) { pub.Logger = l } }

// WithClient sets the HTTP client used for every repository request.
func WithClient(c *integrations.Client) Option { return func(pub *Publisher) { pub.client = c } }

// WithClock sets the time source for durations and metadata timestamps.
func WithClock(now func() time.Time) Option { return func(pub *Publisher) { pub.now = now } }

// New creates a Publisher. Defaults: [httputil.DefaultPolicy], environment
// credentials, a discard logger, and an uncached repository client.
func New(opts ...Option) *Publisher {
	p := &Publisher{
		Policy:      httputil.DefaultPolicy(),
		Credentials: credentials.NewEnvStore(),
		Logger:      log.New(io.Discard),
		client:      integrations.NewClient(nil, nil),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// upload is one file PUT to the repository.
type upload struct {
	path        string
	data        []byte
	contentType string
	sha1        string // digest to verify after upload; empty for sidecars
	algo        string // checksum algorithm of a sidecar; empty for payloads
}

// job is the per-target state of one Publish call. Only the goroutine
// running Publish touches it.
type job struct {
	target  Target
	coord   coordinate.Coordinate
	client  *integrations.Client
	files   []upload
	sent    []bool
	probed  bool
	checked bool
	present bool
}

// Publish pushes set and its descriptor to target and reports the outcome.
// It never returns a nil-outcome Result.
func (p *Publisher) Publish(ctx context.Context, set *artifact.Set, d descriptor.Descriptor, target Target) (res Result) {
	coord := set.Coordinate()
	start := p.now()
	res = Result{Target: target, Coordinate: coord, Outcome: Success}
	logger := p.Logger.With("target", target.ID)

	hooks := observability.Publish()
	hooks.OnTargetStart(ctx, target.ID, coord.String())
	defer func() {
		res.Duration = p.now().Sub(start)
		hooks.OnTargetComplete(ctx, target.ID, string(res.Outcome), res.Attempts, res.Duration, res.Err)
	}()

	if err := ctx.Err(); err != nil {
		res.fail(err)
		return res
	}
	if err := target.Validate(); err != nil {
		res.fail(err)
		return res
	}
	creds, err := p.Credentials.Resolve(target.AuthRef)
	if err != nil {
		res.fail(err)
		return res
	}
	files, err := layout(set, d)
	if err != nil {
		res.fail(errors.Wrap(errors.ErrCodeInternal, err, "render files"))
		return res
	}

	j := &job{
		target: target,
		coord:  coord,
		client: p.client.WithAuth(creds),
		files:  files,
		sent:   make([]bool, len(files)),
	}
	logger.Debug("publishing", "coordinate", coord, "files", len(files), "auth", creds)

	attempts, err := httputil.Retry(ctx, p.Policy, func(attempt int) error {
		err := p.attempt(ctx, j, attempt)
		if err != nil && httputil.IsRetryable(err) {
			logger.Warn("attempt failed", "attempt", attempt, "error", err)
		}
		return err
	})
	res.Attempts = attempts
	if err != nil {
		res.fail(err)
		logger.Error("publish failed", "code", res.Code, "attempts", attempts)
		return res
	}
	res.AlreadyPresent = j.present
	logger.Info("published", "coordinate", coord, "attempts", attempts, "alreadyPresent", j.present)
	return res
}

// attempt performs one pass: probe, pending uploads, verification and
// metadata. Completed steps are skipped on later attempts.
func (p *Publisher) attempt(ctx context.Context, j *job, n int) error {
	// In-flight requests outlive cancellation; checks between requests stop new ones.
	reqCtx := context.WithoutCancel(ctx)

	if !j.probed {
		present, err := p.probe(reqCtx, j)
		if err != nil {
			return err
		}
		j.probed, j.present = true, present
	}
	if j.present {
		return nil
	}

	hooks := observability.Publish()
	for i, f := range j.files {
		if j.sent[i] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err := j.client.Put(reqCtx, integrations.JoinURL(j.target.URL, f.path), f.data, f.contentType)
		hooks.OnAttempt(ctx, j.target.ID, f.path, n, err)
		if err != nil {
			return err
		}
		j.sent[i] = true
	}

	if !j.checked {
		if err := p.verify(ctx, reqCtx, j); err != nil {
			return err
		}
		j.checked = true
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return p.updateMetadata(reqCtx, j)
}

// probe reports whether the whole set is already published with the same
// content. A missing primary means nothing was published. Otherwise every
// file and sidecar is checked: the ones already present are marked sent so
// that an interrupted earlier run is completed rather than reported present.
// Any remote digest that differs from the local one is a version conflict.
func (p *Publisher) probe(ctx context.Context, j *job) (bool, error) {
	primary := j.files[0]
	remote, err := p.fetchDigest(ctx, j, primary.path)
	if stderrors.Is(err, integrations.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if remote != primary.sha1 {
		return false, errors.New(errors.ErrCodeVersionConflict,
			"%s already holds %s with different content (sha1 %s)", j.target.ID, j.coord, remote)
	}

	complete := true
	for i, f := range j.files {
		if f.algo != "" {
			continue
		}
		found, err := p.probeFile(ctx, j, i)
		if err != nil {
			return false, err
		}
		complete = complete && found
	}
	if !complete {
		return false, nil
	}

	body, err := j.client.GetBytes(ctx, integrations.JoinURL(j.target.URL, maven.MetadataPath(j.coord)))
	switch {
	case stderrors.Is(err, integrations.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	meta, err := maven.ParseMetadata(body)
	if err != nil || !meta.HasVersion(j.coord.Version) {
		return false, nil
	}
	return true, nil
}

// probeFile checks the payload at index i and its sidecars, marking the
// present ones as sent. It reports whether all of them were present.
func (p *Publisher) probeFile(ctx context.Context, j *job, i int) (bool, error) {
	f := j.files[i]
	remote, err := p.fetchDigest(ctx, j, f.path)
	if stderrors.Is(err, integrations.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if remote != f.sha1 {
		return false, errors.New(errors.ErrCodeVersionConflict,
			"%s already holds %s with different content (sha1 %s)", j.target.ID, f.path, remote)
	}
	// The sha1 sidecar exists, so its payload was accepted before it.
	j.sent[i] = true

	found := true
	for k := i + 1; k < len(j.files) && j.files[k].algo != ""; k++ {
		side := j.files[k]
		if side.algo == "sha1" {
			j.sent[k] = true
			continue
		}
		body, err := j.client.GetBytes(ctx, integrations.JoinURL(j.target.URL, side.path))
		switch {
		case stderrors.Is(err, integrations.ErrNotFound):
			found = false
			continue
		case err != nil:
			return false, err
		}
		if maven.ParseChecksum(string(body)) != string(side.data) {
			return false, errors.New(errors.ErrCodeVersionConflict,
				"%s already holds %s with different content", j.target.ID, side.path)
		}
		j.sent[k] = true
	}
	return found, nil
}

// verify re-fetches the sha1 sidecar of every uploaded file.
// Targets that do not serve sidecars (404) are not verified.
func (p *Publisher) verify(ctx, reqCtx context.Context, j *job) error {
	for _, f := range j.files {
		if f.sha1 == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		remote, err := p.fetchDigest(reqCtx, j, f.path)
		if stderrors.Is(err, integrations.ErrNotFound) {
			p.Logger.Debug("target does not serve checksums, skipping verification", "target", j.target.ID)
			return nil
		}
		if err != nil {
			return err
		}
		if remote != f.sha1 {
			return errors.New(errors.ErrCodeIntegrityFailure,
				"%s: remote sha1 %s does not match local %s", f.path, remote, f.sha1)
		}
	}
	return nil
}

func (p *Publisher) fetchDigest(ctx context.Context, j *job, path string) (string, error) {
	body, err := j.client.GetBytes(ctx, integrations.JoinURL(j.target.URL, maven.ChecksumPath(path, "sha1")))
	if err != nil {
		return "", err
	}
	return maven.ParseChecksum(string(body)), nil
}

// updateMetadata merges the coordinate's version into the artifact-level
// maven-metadata.xml and uploads it with its sidecars.
func (p *Publisher) updateMetadata(ctx context.Context, j *job) error {
	url := integrations.JoinURL(j.target.URL, maven.MetadataPath(j.coord))

	var current *maven.Metadata
	body, err := j.client.GetBytes(ctx, url)
	switch {
	case err == nil:
		if current, err = maven.ParseMetadata(body); err != nil {
			p.Logger.Warn("replacing unreadable metadata", "target", j.target.ID, "error", err)
			current = nil
		}
	case !stderrors.Is(err, integrations.ErrNotFound):
		return err
	}

	data, err := maven.Merge(current, j.coord, p.now()).Render()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render metadata")
	}
	for _, f := range withSidecars(maven.MetadataPath(j.coord), data, "application/xml", maven.Compute(data)) {
		if err := j.client.Put(ctx, integrations.JoinURL(j.target.URL, f.path), f.data, f.contentType); err != nil {
			if httputil.IsRetryable(err) {
				return err
			}
			return errors.Wrap(errors.ErrCodeUploadRejected, err, "update %s", maven.MetadataFile)
		}
	}
	return nil
}

// layout lists every file of the set in upload order: the primary artifact
// first, then other classifiers, then the POM, each followed by its sidecars.
func layout(set *artifact.Set, d descriptor.Descriptor) ([]upload, error) {
	var out []upload
	for _, f := range set.Files() {
		out = append(out, withSidecars(f.Path, f.Data, "application/octet-stream", f.Checksums)...)
	}
	pom, err := maven.RenderPOM(set.Coordinate(), set.Packaging(), d)
	if err != nil {
		return nil, fmt.Errorf("render pom: %w", err)
	}
	return append(out, withSidecars(maven.POMPath(set.Coordinate()), pom, "application/xml", maven.Compute(pom))...), nil
}

func withSidecars(path string, data []byte, contentType string, sums maven.Checksums) []upload {
	out := []upload{{path: path, data: data, contentType: contentType, sha1: sums["sha1"]}}
	for _, algo := range maven.ChecksumAlgorithms {
		out = append(out, upload{
			path:        maven.ChecksumPath(path, algo),
			data:        []byte(sums[algo]),
			contentType: "text/plain",
			algo:        algo,
		})
	}
	return out
}

// classify maps a publish failure to its error code.
func classify(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.ErrCodeCancelled
	case stderrors.Is(err, integrations.ErrConflict):
		return errors.ErrCodeVersionConflict
	case stderrors.Is(err, integrations.ErrUnauthorized):
		return errors.ErrCodeUnauthorized
	case httputil.IsRetryable(err), stderrors.Is(err, integrations.ErrNetwork):
		return errors.ErrCodeTransientUpload
	default:
		return errors.ErrCodeUploadRejected
	}
}
