package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubkit/pkg/config"
	"github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/pipeline"
	"github.com/matzehuels/pubkit/pkg/publish"
)

// ExitError reports a finished run whose outcome was not a full success.
// The report has already been printed; main exits with Code.
type ExitError struct {
	Outcome pipeline.Outcome
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("publish finished with outcome %s", e.Outcome)
}

// publishOptions holds the flags of the publish command.
type publishOptions struct {
	project    projectFlags
	targets    []string
	verifyDeps bool
	noLedger   bool
	jsonOutput bool
}

// publishCommand creates the publish command.
func (c *CLI) publishCommand() *cobra.Command {
	opts := publishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the project's artifacts to every configured repository",
		Long: `Publish reads pubkit.toml, validates the coordinate, metadata and build
outputs, and uploads the artifact set with checksums to every configured
target. Targets are independent: a failure on one never stops the others.

Exit status is 0 when every target succeeded, 2 when some failed, 3 when
all failed and 1 when the inputs were rejected before any upload.`,
		Example: `  # Publish using ./pubkit.toml
  pubkit publish

  # Release a specific version to staging only
  pubkit publish --version 1.4.0 --target staging`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPublish(cmd, opts)
		},
	}

	opts.project.register(cmd)
	cmd.Flags().StringSliceVarP(&opts.targets, "target", "t", nil, "publish only to these target ids")
	_ = cmd.RegisterFlagCompletionFunc("target", completeTargets(&opts.project.configPath))
	cmd.Flags().BoolVar(&opts.verifyDeps, "verify-deps", false, "check declared dependencies against the package index first")
	cmd.Flags().BoolVar(&opts.noLedger, "no-ledger", false, "do not record a receipt for this run")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the report as JSON")

	return cmd
}

func (c *CLI) runPublish(cmd *cobra.Command, opts publishOptions) error {
	ctx := cmd.Context()

	cfg, err := opts.project.load()
	if err != nil {
		return err
	}
	if opts.verifyDeps {
		cfg.VerifyDependencies = true
	}
	if cfg.Targets, err = selectTargets(cfg.Targets, opts.targets); err != nil {
		return err
	}

	in, err := cfg.Inputs()
	if err != nil {
		return err
	}

	installHooks(c.Logger)
	runner, closeFn, err := c.newRunner(ctx, cfg, opts.noLedger)
	if err != nil {
		return err
	}
	defer closeFn()

	prog := newProgress(c.Logger)
	report, err := runner.Run(ctx, in)
	if err != nil {
		return err
	}
	if report.Outcome == pipeline.Success {
		prog.done(fmt.Sprintf("Published %s", report.Coordinate))
	} else {
		c.Logger.Warn("Publish incomplete", "coordinate", report.Coordinate, "outcome", report.Outcome, "failed", len(report.Failed()))
	}

	if err := writeReport(cmd.OutOrStdout(), report, opts.jsonOutput); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if report.Outcome != pipeline.Success {
		return &ExitError{Outcome: report.Outcome, Code: report.Outcome.ExitCode()}
	}
	return nil
}

// selectTargets keeps the targets named in ids, in configuration order.
// An empty ids keeps all targets.
func selectTargets(all []publish.Target, ids []string) ([]publish.Target, error) {
	if len(ids) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []publish.Target
	for _, t := range all {
		if want[t.ID] {
			out = append(out, t)
			delete(want, t.ID)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for _, id := range ids {
			if want[id] {
				unknown = append(unknown, id)
			}
		}
		return nil, errors.WithFields(errors.ErrCodeInvalidConfig, unknown, "unknown targets in %s", config.DefaultFile)
	}
	return out, nil
}

func writeReport(w io.Writer, r *pipeline.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	_, err := io.WriteString(w, renderReport(r))
	return err
}
