package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goplus/gqlls/gql"
	"github.com/goplus/gqlls/internal/config"
	"github.com/goplus/gqlls/internal/logger"
	"github.com/goplus/gqlls/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var wsAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server",
		Long: `Run the language server over stdio, or over WebSocket with --ws.

The schema files configured in .graphqlrc are loaded at startup and
reloaded when they change on disk (server.watch).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg, wsAddr)
		},
	}
	cmd.Flags().StringVar(&wsAddr, "ws", "", "serve over WebSocket on this address instead of stdio")
	return cmd
}

// loadProject creates a project holding the configured schema files.
func loadProject(cfg *config.Config) (*gql.Project, error) {
	paths, err := cfg.SchemaPaths()
	if err != nil {
		return nil, err
	}
	files, err := gql.ReadFiles(paths)
	if err != nil {
		return nil, err
	}
	return gql.NewProject(files, gql.FeatAll), nil
}

func runServe(ctx context.Context, cfg *config.Config, wsAddr string) error {
	log := logger.Logger
	proj, err := loadProject(cfg)
	if err != nil {
		return err
	}
	if _, err := proj.Schema(); err != nil {
		// Serve anyway, the schema may be fixed while the server runs.
		log.Errorw("failed to load schema", "error", err)
	}

	srv := server.New(proj, server.Options{
		MaxDocuments: cfg.Server.MaxDocuments,
		Version:      version,
		Logger:       log,
		IsSchemaPath: cfg.IsSchemaPath,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Server.Watch {
		go func() {
			if err := srv.WatchSchema(ctx, cfg.SchemaDirs(), cfg.Server.ReloadDebounce); err != nil {
				log.Errorw("schema watcher stopped", "error", err)
			}
		}()
	}

	if wsAddr == "" {
		// The client ends a stdio session by closing the stream.
		return srv.RunStdio()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.RunWebSocket(ctx, wsAddr)
}
