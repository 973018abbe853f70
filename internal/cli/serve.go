package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kokodio/tdd/internal/config"
	"github.com/kokodio/tdd/internal/server"
	"github.com/kokodio/tdd/pkg/session"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		sessionDir string
		sessionDB  string
		sessionTTL time.Duration
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement engine over HTTP",
		Long: `Serve the placement engine over HTTP.

One-shot layouts are posted to /api/layouts. Sessions under /api/sessions keep
an engine alive between requests so rectangles can be placed one at a time.
Sessions live in memory unless --session-dir or --session-db is given, in
which case they survive restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("session-dir") {
				cfg.SessionDir = sessionDir
			}
			if cmd.Flags().Changed("session-db") {
				cfg.SessionDB = sessionDB
			}
			if cmd.Flags().Changed("session-ttl") {
				cfg.SessionTTL = sessionTTL
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&sessionDir, "session-dir", "", "persist sessions in this directory")
	cmd.Flags().StringVar(&sessionDB, "session-db", "", "persist sessions in this SQLite file")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", session.DefaultTTL, "idle time before a session expires")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the runner and the session store into the server and
// blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.ServerConfig, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, where, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	srv := server.New(server.Config{
		Addr:       cfg.Addr,
		Runner:     runner,
		Sessions:   store,
		SessionTTL: cfg.SessionTTL,
		Logger:     c.Logger,
	})

	printSuccess("Listening on %s", StyleLink.Render("http://"+cfg.Addr))
	if where != "" {
		printDetail("Sessions: %s", where)
	}
	return srv.ListenAndServe(ctx)
}

// newSessionStore picks the SQLite store, the file store or memory, in
// that order, and reports where sessions are kept.
func newSessionStore(ctx context.Context, cfg config.ServerConfig) (session.Store, string, error) {
	switch {
	case cfg.SessionDB != "":
		store, err := session.NewSQLiteStore(ctx, cfg.SessionDB)
		if err != nil {
			return nil, "", fmt.Errorf("open session db: %w", err)
		}
		return store, store.Path(), nil
	case cfg.SessionDir != "":
		store, err := session.NewFileStore(cfg.SessionDir)
		if err != nil {
			return nil, "", fmt.Errorf("open session dir: %w", err)
		}
		return store, store.Path(), nil
	}
	return session.NewMemoryStore(), "", nil
}
