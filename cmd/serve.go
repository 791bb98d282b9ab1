/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/RepoWing/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Start the JSON HTTP API.

Endpoints:
  POST /api/analyze        analyze a GitHub repository
  POST /api/compare        compare a task plan with a repository
  POST /api/project-type   classify a repository or a supplied report
  GET  /api/reports        list saved reports
  GET  /api/reports/{id}   fetch one saved report
  GET  /api/health         liveness and version`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		srv := server.New(server.Config{
			Port:    cfg.Server.Port,
			Origins: cfg.Server.Origins,
			Version: GetVersion(),
			Engine:  newAnalyzer(cfg, newGitHubFetcher(cfg)),
			Store:   store,
			Logger:  slog.Default(),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var wg sync.WaitGroup
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)
		fmt.Fprintf(cmd.ErrOrStderr(), "RepoWing API on http://localhost%s (Ctrl+C to stop)\n", srv.Addr())

		select {
		case err = <-errChan:
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			slog.Warn("server shutdown", "error", shutdownErr)
		}
		wg.Wait()
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config, 7777)")
}
