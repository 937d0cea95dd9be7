// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-scout/internal/history"
	"github.com/pdiddy/signal-scout/internal/platform"
	"github.com/pdiddy/signal-scout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the search pipeline over HTTP",
	Long: `Serve starts an HTTP server with POST /api/search, GET /api/history,
GET /healthz, and Prometheus metrics on GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		cfg := loadConfig()
		if addr != "" {
			cfg.Server.Addr = addr
		}

		reg := platform.NewRegistry(cfg.Search)

		hist, err := history.NewStore(cfg.History)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
			hist = nil
		} else {
			defer hist.Close()
		}

		logger.WithField("addr", cfg.Server.Addr).Info("starting server")
		return server.New(cfg, reg, hist, logger).Run()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
