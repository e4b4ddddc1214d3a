package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pubkit/pkg/credentials"
	"github.com/matzehuels/pubkit/pkg/hosted"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		dir     string
		authRef string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local Maven-layout repository",
		Long: `Serve runs a Maven-layout repository that pubkit (or any Maven client) can
publish to. Released files are immutable; only maven-metadata.xml and its
checksums may be replaced. Reads are public. When --auth-ref is set, uploads
require the credentials it resolves to.`,
		Example: `  # In-memory repository for a dry run
  pubkit serve --addr :8081

  # Persistent repository with basic auth from LOCAL_USERNAME/LOCAL_PASSWORD
  pubkit serve --dir ./repo --auth-ref env:LOCAL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var store hosted.Storage = hosted.NewMemoryStorage()
			if dir != "" {
				ds, err := hosted.NewDirStorage(dir)
				if err != nil {
					return err
				}
				store = ds
			}

			creds, err := c.Credentials.Resolve(authRef)
			if err != nil {
				return err
			}
			opts := hosted.Options{Logger: c.Logger}
			switch creds.Scheme {
			case credentials.Basic:
				opts.Username, opts.Password = creds.Username, creds.Password
			case credentials.Bearer:
				opts.Token = creds.Token
			default:
				c.Logger.Warn("uploads are not authenticated")
			}

			if dir != "" {
				c.Logger.Info("serving repository", "dir", dir)
			} else {
				c.Logger.Info("serving in-memory repository")
			}
			return hosted.NewServer(store, opts).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8081", "listen address")
	cmd.Flags().StringVar(&dir, "dir", "", "store files in this directory (default: in memory)")
	cmd.Flags().StringVar(&authRef, "auth-ref", "", "credential reference for uploads, e.g. env:LOCAL")

	return cmd
}
