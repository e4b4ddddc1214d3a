package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pubkit/pkg/maven"
	"github.com/matzehuels/pubkit/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		project    projectFlags
		verifyDeps bool
		showPOM    bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the project without uploading anything",
		Long: `Validate runs every local check of a publish (coordinate, metadata, build
outputs and targets) and lists the files that would be uploaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := project.load()
			if err != nil {
				return err
			}
			if verifyDeps {
				cfg.VerifyDependencies = true
			}
			in, err := cfg.Inputs()
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, c.Logger)
			if cfg.VerifyDependencies {
				if runner.Index, err = newIndex(cfg); err != nil {
					return err
				}
			}

			prepared, err := runner.Prepare(ctx, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showPOM {
				pom, err := maven.RenderPOM(prepared.Coordinate, prepared.Set.Packaging(), prepared.Descriptor)
				if err != nil {
					return err
				}
				_, err = out.Write(pom)
				return err
			}

			printSuccess(out, "%s is ready to publish", StyleTitle.Render(prepared.Coordinate.String()))
			printKeyValue(out, "packaging", prepared.Set.Packaging())
			printKeyValue(out, "artifacts", fmt.Sprintf("%d", len(prepared.Set.Files())))
			for _, f := range prepared.Set.Files() {
				printFile(out, f.Path)
			}
			printFile(out, maven.POMPath(prepared.Coordinate))
			printKeyValue(out, "targets", fmt.Sprintf("%d", len(in.Targets)))
			for _, t := range in.Targets {
				printDetail(out, "%s %s", t.ID, t.URL)
			}
			if prepared.Coordinate.IsSnapshot() {
				printWarning(out, "%s is a snapshot version", prepared.Coordinate.Version)
			}
			return nil
		},
	}

	project.register(cmd)
	cmd.Flags().BoolVar(&verifyDeps, "verify-deps", false, "check declared dependencies against the package index")
	cmd.Flags().BoolVar(&showPOM, "pom", false, "print the generated POM instead of the summary")

	return cmd
}
