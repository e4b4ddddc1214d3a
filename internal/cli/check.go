package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubkit/pkg/descriptor"
	pkgerrors "github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/integrations"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		project projectFlags
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check declared dependencies against the package index",
		Long: `Check looks up every runtime dependency declared in pubkit.toml in the
configured package index and reports the ones that are not published at the
declared version. Responses are cached; use --refresh to bypass the cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := project.load()
			if err != nil {
				return err
			}
			d, err := descriptor.Bind(cfg.Metadata)
			if err != nil {
				return err
			}
			idx, err := newIndex(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			deps := d.RuntimeDependencies()
			if len(deps) == 0 {
				printInfo(out, "No runtime dependencies declared")
				return nil
			}

			spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Querying "+cfg.Index.URL)
			spinner.Start()

			var missing []string
			for _, dep := range deps {
				info, err := idx.FetchArtifact(ctx, dep.Group, dep.ArtifactID, refresh)
				switch {
				case errors.Is(err, integrations.ErrNotFound):
					missing = append(missing, dep.Coordinate())
					continue
				case err != nil:
					spinner.Stop()
					return err
				case !info.HasVersion(dep.Version):
					missing = append(missing, dep.Coordinate())
				}
			}
			spinner.Stop()
			if err := ctx.Err(); err != nil {
				return err
			}

			isMissing := make(map[string]bool, len(missing))
			for _, m := range missing {
				isMissing[m] = true
			}
			for _, dep := range deps {
				if isMissing[dep.Coordinate()] {
					printError(out, "%s", dep.Coordinate())
				} else {
					printSuccess(out, "%s", dep.Coordinate())
				}
			}

			if len(missing) > 0 {
				return pkgerrors.WithFields(pkgerrors.ErrCodeDependencyNotFound, missing, "declared dependencies are not in the package index")
			}
			return nil
		},
	}

	project.register(cmd)
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the index cache")

	return cmd
}
