// Command gqlls is a GraphQL language server providing schema-aware
// completion for query documents.
package main

import (
	"fmt"
	"os"

	"github.com/goplus/gqlls/internal/config"
	"github.com/goplus/gqlls/internal/logger"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "devel"

// cfg is the configuration loaded before any command runs.
var cfg *config.Config

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gqlls",
		Short: "GraphQL language server",
		Long: `gqlls - GraphQL language server.

Serves schema-aware completion for GraphQL documents over LSP, and answers
one-shot completion queries from the command line.

Configuration is read from .graphqlrc (YAML, or .graphqlrc.yaml, .json,
.toml) in the workspace directory. Environment variables with the GQLLS_
prefix override it, e.g. GQLLS_LOG_LEVEL=debug.

Examples:
  gqlls serve                                   # LSP over stdio
  gqlls serve --ws :4000                        # LSP over WebSocket
  gqlls complete --line 2 --character 4 q.graphql`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			overrides := make(map[string]any)
			if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
				overrides["log.level"] = f.Value.String()
			}
			if f := cmd.Flags().Lookup("log-json"); f != nil && f.Changed {
				overrides["log.json"] = f.Value.String() == "true"
			}

			var err error
			if cfg, err = config.Load(dir, overrides); err != nil {
				return err
			}
			if err := logger.Initialize(cfg.Log.Level, cfg.Log.JSON); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.Logger.Debugw("configuration loaded", "dir", cfg.Dir, "file", cfg.File, "schema", cfg.Schema)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("dir", "C", ".", "workspace directory")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "log in JSON")

	rootCmd.AddCommand(newServeCmd(), newCompleteCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gqlls:", err)
		os.Exit(1)
	}
}
