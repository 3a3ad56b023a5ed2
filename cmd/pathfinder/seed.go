package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/pathfinder/internal/db"
	"github.com/jonathan/pathfinder/internal/roadmap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedFile string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the roadmap file into PostgreSQL",
	Long: `Create the roadmaps table if needed and upsert every entry of the roadmap file
under its normalized role key. Requires DATABASE_URL.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Roadmap JSON file (defaults to JOBS_PATH)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	path := seedFile
	if path == "" {
		path = cfg.JobsPath
	}

	entries, err := seedEntries(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := seedRoadmaps(ctx, database, entries)
	if err != nil {
		return err
	}

	logger.Info("seeded roadmaps", zap.String("file", path), zap.Int("count", n))
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d roadmaps from %s\n", n, path)
	return nil
}

// seedEntries reads path and re-keys its entries by normalized role
func seedEntries(path string) (map[roadmap.RoleKey]json.RawMessage, error) {
	raw, err := roadmap.ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	// NewTable rejects colliding keys and non-object entries
	if _, err := roadmap.NewTable(raw); err != nil {
		return nil, &roadmap.TableLoadError{Source: path, Message: "invalid entries", Cause: err}
	}

	entries := make(map[roadmap.RoleKey]json.RawMessage, len(raw))
	for k, v := range raw {
		entries[roadmap.NormalizeKey(k)] = v
	}
	return entries, nil
}

// roadmapStore is the part of *db.DB used for seeding
type roadmapStore interface {
	EnsureSchema(ctx context.Context) error
	UpsertRoadmap(ctx context.Context, roleKey string, roadmap json.RawMessage) error
}

func seedRoadmaps(ctx context.Context, store roadmapStore, entries map[roadmap.RoleKey]json.RawMessage) (int, error) {
	if err := store.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	for key, raw := range entries {
		if err := store.UpsertRoadmap(ctx, string(key), raw); err != nil {
			return 0, fmt.Errorf("role %q: %w", key, err)
		}
	}
	return len(entries), nil
}
