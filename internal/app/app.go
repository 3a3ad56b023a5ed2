// Package app assembles the PathFinder components from configuration.
package app

import (
	"context"
	"encoding/json"

	"github.com/jonathan/pathfinder/internal/config"
	"github.com/jonathan/pathfinder/internal/db"
	"github.com/jonathan/pathfinder/internal/llm"
	"github.com/jonathan/pathfinder/internal/roadmap"
	"go.uber.org/zap"
)

// App holds the long-lived components shared by the CLI commands and the server
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Table    *roadmap.Table
	Resolver *roadmap.Resolver

	client llm.Client
}

// New loads the roadmap table and connects the model client.
//
// The table comes from cfg.JobsPath, overlaid with rows from Postgres when
// cfg.DatabaseURL is set. A model client that cannot be created is logged
// and left out: table hits still work and misses return fallback records.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	table, err := loadTable(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	llmConfig := cfg.LLMConfig()
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		logger.Warn("model client unavailable; only curated roadmaps will be served",
			zap.String("provider", string(llmConfig.Provider)),
			zap.Error(err))
		client = nil
	} else {
		logger.Info("model client ready",
			zap.String("provider", string(llmConfig.Provider)),
			zap.String("roadmap_model", llmConfig.GetModel(llm.TierStandard)),
			zap.String("compare_model", llmConfig.GetModel(llm.TierLite)))
	}

	resolver := roadmap.NewResolver(table, client, roadmap.Options{
		RoadmapTier: llm.TierStandard,
		CompareTier: llm.TierLite,
		Timeout:     timeout,
		Logger:      logger.Named("resolver"),
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		Table:    table,
		Resolver: resolver,
		client:   client,
	}, nil
}

// Close releases the model client
func (a *App) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

// loadTable builds the roadmap table from the file and the optional database
func loadTable(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*roadmap.Table, error) {
	entries, err := roadmap.ReadTableFile(cfg.JobsPath)
	if err != nil {
		return nil, err
	}
	// Validate the file on its own so key collisions are reported against it
	if _, err := roadmap.NewTable(entries); err != nil {
		return nil, &roadmap.TableLoadError{Source: cfg.JobsPath, Message: "invalid entries", Cause: err}
	}

	if cfg.DatabaseURL != "" {
		rows, err := readRoadmapRows(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		entries = overlay(entries, rows)
		logger.Info("loaded roadmaps from database", zap.Int("rows", len(rows)))
	}

	table, err := roadmap.NewTable(entries)
	if err != nil {
		return nil, &roadmap.TableLoadError{Source: "merged table", Message: "invalid entries", Cause: err}
	}

	logger.Info("roadmap table loaded",
		zap.String("path", cfg.JobsPath),
		zap.Int("entries", table.Len()))
	return table, nil
}

func readRoadmapRows(ctx context.Context, databaseURL string) ([]db.RoadmapRow, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, &roadmap.TableLoadError{Source: "database", Message: "failed to connect", Cause: err}
	}
	defer database.Close()

	rows, err := database.ListRoadmaps(ctx)
	if err != nil {
		return nil, &roadmap.TableLoadError{Source: "database", Message: "failed to list roadmaps", Cause: err}
	}
	return rows, nil
}

// overlay returns file entries re-keyed by normalized role with database rows
// replacing entries that share a key.
func overlay(file map[string]json.RawMessage, rows []db.RoadmapRow) map[string]json.RawMessage {
	merged := make(map[string]json.RawMessage, len(file)+len(rows))
	for k, v := range file {
		merged[string(roadmap.NormalizeKey(k))] = v
	}
	for _, row := range rows {
		merged[string(roadmap.NormalizeKey(row.RoleKey))] = row.Roadmap
	}
	return merged
}
