package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdomkit/internal/config"
	"github.com/vango-dev/vdomkit/pkg/server"
	"github.com/vango-dev/vdomkit/pkg/store"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live reconciliation server",
		Long: `Run the HTTP server of live sessions.

Configuration is read from --config, or from vdomkit.yaml in the current
directory when present, and defaults otherwise. VDOMKIT_ADDR and
VDOMKIT_LOG_LEVEL override the file.

Examples:
  vdomkit serve
  vdomkit serve --addr :9000
  vdomkit serve --config /etc/vdomkit.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, addr, os.LookupEnv)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to vdomkit.yaml")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")

	return cmd
}

// loadConfig resolves the configuration: file, then environment, then
// flags.
func loadConfig(path, addr string, lookup func(string) (string, bool)) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case config.Exists("."):
		cfg, err = config.Load(".")
	default:
		cfg = config.New()
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(lookup)
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cfg *config.Config) error {
	logger := cfg.Log.NewLogger(os.Stderr)

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Info("store opened", "backend", cfg.Store.Backend)
	srv := server.New(cfg, st, server.WithLogger(logger.With("component", "server")))
	return srv.Run()
}
