// Package cli implements the tagcloud command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kokodio/tdd/internal/config"
	"github.com/kokodio/tdd/pkg/buildinfo"
	"github.com/kokodio/tdd/pkg/cache"
	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/observability"
	"github.com/kokodio/tdd/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tagcloud"

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
	Config config.Config

	out        io.Writer
	configPath string
	logFile    string
	logCloser  io.Closer
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The file configuration is loaded before each command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    w,
	}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and HTTP hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// Close releases the log file, if any.
func (c *CLI) Close() error {
	if c.logCloser == nil {
		return nil
	}
	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tagcloud packs rectangles into a dense circular cloud",
		Long: `Tagcloud places rectangles one at a time around a center point so that
the result forms a dense, roughly circular cloud with no overlaps. Layouts can
be rendered to PNG, SVG, PDF or JSON, or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/tagcloud/config.yaml)")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "also write logs to a rotating file")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	for _, cmd := range root.Commands() {
		registerValueCompletions(cmd)
	}

	return root
}

// loadConfig reads the configuration file and applies its log settings.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if c.Logger.GetLevel() > level {
		c.SetLogLevel(level)
	}

	file := c.logFile
	if file == "" {
		file = cfg.Log.File
	}
	if file != "" && c.logCloser == nil {
		c.attachLogFile(file)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Keys are scoped by the
// layout document version so a format change never reads stale entries.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), fmt.Sprintf("v%d:", cloud.LayoutVersion))
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

// newCache picks the backend: none, Redis when an address is configured,
// otherwise the file cache. An unreachable Redis falls back to files.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || !cfg.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "addr", cfg.RedisAddr, "error", err)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/tagcloud/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input (or uses fallback
// when there is no input). A known format extension on output is stripped.
func basePath(output, input, fallback string) string {
	if output == "" {
		if input == "" {
			return fallback
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	fallback  string
}

// writeArtifacts writes each artifact next to its base path and prints the
// resulting files. A single format with an explicit output is written
// verbatim to that path.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	base := basePath(p.output, p.input, p.fallback)

	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("missing %s artifact", format)
		}
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	for _, path := range paths {
		printFile(path)
	}
	return paths, nil
}
