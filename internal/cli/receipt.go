package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubkit/pkg/config"
	"github.com/matzehuels/pubkit/pkg/coordinate"
	"github.com/matzehuels/pubkit/pkg/errors"
	"github.com/matzehuels/pubkit/pkg/ledger"
	"github.com/matzehuels/pubkit/pkg/pipeline"
)

// receiptCommand creates the receipt command.
func (c *CLI) receiptCommand() *cobra.Command {
	var (
		configPath string
		runID      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "receipt [group:artifactId:version]",
		Short: "Show the recorded report of a previous publish",
		Long: `Receipt prints the report recorded for the last publish of a coordinate, or
for one run with --run. Without an argument the coordinate is read from the
project file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadOptional(configPath)
			if err != nil {
				return err
			}
			store, err := newLedgerCache(ctx, cfg.Ledger)
			if err != nil {
				return err
			}
			defer store.Close()
			l := ledger.New(store, keyerFor(cfg.Ledger), 0)

			var (
				report *pipeline.Report
				found  bool
				what   string
			)
			if runID != "" {
				what = "run " + runID
				report, found, err = l.Run(ctx, runID)
			} else {
				coord, cerr := receiptCoordinate(cfg, args)
				if cerr != nil {
					return cerr
				}
				what = coord.String()
				report, found, err = l.Last(ctx, coord.String())
			}
			if err != nil {
				return err
			}
			if !found {
				printWarning(cmd.OutOrStdout(), "No receipt for %s", what)
				return nil
			}
			return writeReport(cmd.OutOrStdout(), report, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFile, "project file")
	cmd.Flags().StringVar(&runID, "run", "", "show the report of this run id")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")

	return cmd
}

// loadOptional loads the project file at path, or returns defaults when it
// does not exist.
func loadOptional(path string) (*config.File, error) {
	var cfg *config.File
	if _, err := os.Stat(path); err == nil {
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	} else {
		cfg = &config.File{}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// receiptCoordinate returns the coordinate named by args, or the project's.
func receiptCoordinate(cfg *config.File, args []string) (coordinate.Coordinate, error) {
	if len(args) == 1 {
		parts := strings.Split(args[0], ":")
		if len(parts) != 3 {
			return coordinate.Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate, "expected group:artifactId:version, got %q", args[0])
		}
		return coordinate.Resolve(parts[0], parts[1], parts[2])
	}
	if err := cfg.Interpolate(); err != nil {
		return coordinate.Coordinate{}, err
	}
	return coordinate.Resolve(cfg.Group, cfg.ArtifactID, cfg.Version)
}
