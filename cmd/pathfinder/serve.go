package main

import (
	"fmt"

	"github.com/jonathan/pathfinder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing GET /api/health, POST /api/generate and
POST /api/compare. The port defaults to $PORT, then 8080.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:     cfg.Port,
		Resolver: a.Resolver,
		Logger:   logger.Named("http"),
		Timeout:  timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}
