package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pokedex/internal/server"
)

var (
	serveHost   string
	servePort   string
	waitBackend time.Duration
	noWatch     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Pokedex front end",
	Long: `Start the Pokedex HTTP front end.

The backend URL comes from api.base_url, then $POKEDEX_API_URL, then the
build default. UI settings in the config file are reloaded on change.

The server provides:
  - /pokemon       - List page (?page=1&size=3)
  - /pokemon/{id}  - Detail page with evolution chain
  - /health        - Basic server health check
  - /ready         - Readiness check (includes backend status)
  - /metrics       - Prometheus metrics

Examples:
  pokedex serve                          # Start on default port 3000
  pokedex serve --port 8000              # Start on custom port
  pokedex serve --host 0.0.0.0           # Bind to all interfaces
  pokedex serve --wait-backend 30s       # Wait for the backend first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !noWatch && configMgr.ConfigFile() != "" {
			configMgr.WatchConfig()
			logger.Info("watching config", "file", configMgr.ConfigFile())
		}

		// Create server
		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			ConfigManager: configMgr,
			Logger:        logger,
			WaitBackend:   waitBackend,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default: server.port)")
	serveCmd.Flags().DurationVar(&waitBackend, "wait-backend", 0, "Wait up to this long for the backend before serving")
	serveCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file on change")

	rootCmd.AddCommand(serveCmd)
}
