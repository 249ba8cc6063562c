// Package cli implements the gdlkit command-line interface.
//
// Commands read a graph description (JSON, YAML or TOML, from a file, a URL
// or stdin), build the GDL document it describes and write, render, show or
// serve it. The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - dump: write the GDL document (.vcg)
//   - render: write the document and Graphviz previews (dot, svg, pdf, png)
//   - view: open the document in a VCG viewer
//   - inspect: print the graph tree, or browse it interactively
//   - serve: run the HTTP API
//   - cache: manage the artifact and download caches
//   - config: show the active configuration
//
// # Configuration
//
// Settings come from a TOML file found by [config.Find] or named by
// --config. Command-line flags override it.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gdlkit/internal/config"
	"github.com/matzehuels/gdlkit/pkg/buildinfo"
	"github.com/matzehuels/gdlkit/pkg/cache"
	"github.com/matzehuels/gdlkit/pkg/errors"
	"github.com/matzehuels/gdlkit/pkg/httputil"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
	"github.com/matzehuels/gdlkit/pkg/pipeline"
	"github.com/matzehuels/gdlkit/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gdlkit"

	// docExt is the extension of written GDL documents.
	docExt = ".vcg"

	// stdinArg names standard input as the description source.
	stdinArg = "-"
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

	// Config is loaded before any command runs.
	Config *config.Config

	configPath string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gdlkit builds and previews GDL graph documents",
		Long: `gdlkit turns declarative graph descriptions into GDL (VCG) documents
that graph viewers such as vcgview and aiSee can display, and renders
Graphviz previews of them.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $"+config.EnvConfig+", ./gdlkit.toml or ~/.config/gdlkit/config.toml)")

	root.AddCommand(c.dumpCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The document store is
// opened only when withStore is set.
func (c *CLI) newRunner(ctx context.Context, noCache, withStore bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var s store.Store
	if withStore {
		if s, err = c.newStore(ctx); err != nil {
			ch.Close()
			return nil, err
		}
	}

	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns+":")
	}
	r := pipeline.NewRunner(ch, keyer, s, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

// newCache opens the configured artifact cache: Redis when a URL is set,
// otherwise files under the cache directory.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis")
		}
		return rc, nil
	}
	dir, err := c.artifactDir()
	if err != nil {
		c.Logger.Warn("artifact cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the configured document store: MongoDB when a URI is set,
// otherwise JSON files under the data directory.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Store
	if cfg.MongoURI != "" {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	}
	dir, err := c.Config.StoreDir()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "locate document store")
	}
	return store.NewFileStore(dir)
}

// =============================================================================
// Paths
// =============================================================================

// artifactDir holds serialized documents and previews.
func (c *CLI) artifactDir() (string, error) {
	dir, err := c.Config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "artifacts"), nil
}

// downloadDir holds descriptions fetched over HTTP.
func (c *CLI) downloadDir() (string, error) {
	dir, err := c.Config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "http"), nil
}

// outputPath returns where a document built from input is written in the
// given format: output when set, otherwise the input's base name with the
// format's extension inside the configured output directory.
func (c *CLI) outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	name := appName
	if input != stdinArg {
		base := input
		if httputil.IsURL(input) {
			base = input[strings.LastIndex(input, "/")+1:]
		}
		if base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base)); base != "" && base != "." {
			name = base
		}
	}
	return filepath.Join(c.Config.OutputDir, name+extension(format))
}

// =============================================================================
// Input
// =============================================================================

// loadDescription reads the description named by arg: "-" for stdin in
// stdinFormat, an http(s) URL, or a file path.
func (c *CLI) loadDescription(ctx context.Context, arg string, stdinFormat string, refresh bool) (*gdlio.Description, error) {
	switch {
	case arg == stdinArg:
		format, err := gdlio.ParseFormat(stdinFormat)
		if err != nil {
			return nil, err
		}
		return gdlio.Read(c.stdin, format)

	case httputil.IsURL(arg):
		var rc *httputil.ResponseCache
		if dir, err := c.downloadDir(); err == nil {
			if rc, err = httputil.NewResponseCache(dir, c.Config.Cache.TTL.Duration); err != nil {
				c.Logger.Warn("download cache disabled", "err", err)
				rc = nil
			}
		}
		prog := newProgress(c.Logger)
		resp, err := httputil.NewFetcher(rc).Fetch(ctx, arg, refresh)
		if err != nil {
			return nil, err
		}
		prog.done("fetched description", "url", arg, "bytes", len(resp.Body))
		return resp.Description()

	default:
		return gdlio.Import(arg)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatGDL}
	}
	parts := strings.Split(s, ",")
	formats := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}
