// Package cli implements the pubkit command-line interface.
//
// The CLI reads a pubkit.toml project file and drives the publishing
// pipeline. It is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - publish: Upload the artifact set to every configured repository
//   - validate: Run all local checks without uploading
//   - check: Look up declared dependencies in the package index
//   - serve: Run a local Maven-layout repository
//   - receipt: Show the recorded report of a previous publish
//   - cache: Manage the package-index cache and local receipts
//
// # Exit Status
//
// publish exits 0 when every target succeeded, 2 on partial failure and 3
// when every target failed. Rejected inputs exit 1 and interrupts 130.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pubkit/pkg/buildinfo"
	"github.com/matzehuels/pubkit/pkg/cache"
	"github.com/matzehuels/pubkit/pkg/config"
	"github.com/matzehuels/pubkit/pkg/credentials"
	"github.com/matzehuels/pubkit/pkg/httputil"
	"github.com/matzehuels/pubkit/pkg/integrations"
	"github.com/matzehuels/pubkit/pkg/integrations/maven"
	"github.com/matzehuels/pubkit/pkg/ledger"
	"github.com/matzehuels/pubkit/pkg/pipeline"
	"github.com/matzehuels/pubkit/pkg/publish"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pubkit"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Credentials resolves target authRefs. Defaults to the environment.
	Credentials credentials.Store
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		Credentials: credentials.NewEnvStore(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "pubkit publishes library artifacts to Maven repositories",
		Long:          `pubkit takes a project's coordinate, built artifacts and static metadata, and publishes them to one or more Maven-layout repositories with retries, idempotency checks and per-target failure isolation.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.publishCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.receiptCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Project Loading
// =============================================================================

// projectFlags are the flags shared by commands that read pubkit.toml.
type projectFlags struct {
	configPath string
	group      string
	artifactID string
	version    string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", config.DefaultFile, "project file")
	cmd.Flags().StringVar(&f.group, "group", "", "override the group")
	cmd.Flags().StringVar(&f.artifactID, "artifact-id", "", "override the artifactId")
	cmd.Flags().StringVar(&f.version, "version", "", "override the version")
}

// load reads the project file and applies overrides, defaults and interpolation.
func (f *projectFlags) load() (*config.File, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Override(f.group, f.artifactID, f.version)
	cfg.SetDefaults()
	if err := cfg.Interpolate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.File, noLedger bool) (*pipeline.Runner, func(), error) {
	p := publish.New(
		publish.WithPolicy(cfg.Policy()),
		publish.WithCredentials(c.Credentials),
		publish.WithLogger(c.Logger),
	)
	r := pipeline.NewRunner(p, c.Logger)
	r.Concurrency = cfg.Concurrency

	if cfg.VerifyDependencies {
		idx, err := newIndex(cfg)
		if err != nil {
			return nil, nil, err
		}
		r.Index = idx
	}

	closeFn := func() {}
	if !noLedger {
		store, err := newLedgerCache(ctx, cfg.Ledger)
		if err != nil {
			return nil, nil, err
		}
		r.Recorder = ledger.New(store, keyerFor(cfg.Ledger), 0)
		closeFn = func() { _ = store.Close() }
	}
	return r, closeFn, nil
}

// newIndex creates the package-index client with a file cache under the
// CLI cache directory.
func newIndex(cfg *config.File) (*maven.Client, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	hc, err := httputil.NewCache(filepath.Join(dir, indexDir), cfg.Index.CacheTTL)
	if err != nil {
		return nil, err
	}
	return maven.NewClientWithBase(integrations.NewClient(hc.Namespace("maven:"), nil), cfg.Index.URL), nil
}

func newLedgerCache(ctx context.Context, lc config.Ledger) (cache.Cache, error) {
	switch lc.Backend {
	case config.LedgerNone:
		return cache.NewNullCache(), nil
	case config.LedgerRedis:
		return cache.NewRedisCache(ctx, lc.RedisURL)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(filepath.Join(dir, ledgerDir))
	}
}

func keyerFor(lc config.Ledger) cache.Keyer {
	if lc.Prefix != "" {
		return cache.NewScopedKeyer(nil, lc.Prefix)
	}
	return cache.NewDefaultKeyer()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pubkit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
