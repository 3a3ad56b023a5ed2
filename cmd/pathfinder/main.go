// Package main provides the entry point for the PathFinder API server and CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/pathfinder/internal/app"
	"github.com/jonathan/pathfinder/internal/config"
	"github.com/jonathan/pathfinder/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "PathFinder career roadmap service",
	Long: `PathFinder turns a job title into a career roadmap (skills, courses, duration and
salary range) and compares two roles side by side. Curated roadmaps are served from a
local table; everything else is generated by a Gemini model.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if debug {
			cfg.LogLevel = "debug"
		}

		logger, err = logging.New(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// newApp builds the application from the loaded configuration
func newApp(ctx context.Context) (*app.App, error) {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return a, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
