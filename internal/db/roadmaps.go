package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RoadmapsTableDDL creates the table read by ListRoadmaps
const RoadmapsTableDDL = `CREATE TABLE IF NOT EXISTS roadmaps (
	role_key   TEXT PRIMARY KEY,
	roadmap    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// RoadmapRow is a pre-authored roadmap stored in Postgres
type RoadmapRow struct {
	RoleKey   string
	Roadmap   json.RawMessage
	UpdatedAt time.Time
}

// ListRoadmaps returns every stored roadmap ordered by key
func (db *DB) ListRoadmaps(ctx context.Context) ([]RoadmapRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT role_key, roadmap, updated_at FROM roadmaps ORDER BY role_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}
	defer rows.Close()

	var roadmaps []RoadmapRow
	for rows.Next() {
		var r RoadmapRow
		var raw []byte
		if err := rows.Scan(&r.RoleKey, &raw, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roadmap: %w", err)
		}
		r.Roadmap = json.RawMessage(raw)
		roadmaps = append(roadmaps, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roadmaps: %w", err)
	}
	return roadmaps, nil
}

// UpsertRoadmap stores a roadmap under roleKey, replacing any existing entry
func (db *DB) UpsertRoadmap(ctx context.Context, roleKey string, roadmap json.RawMessage) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO roadmaps (role_key, roadmap) VALUES ($1, $2)
		 ON CONFLICT (role_key) DO UPDATE SET roadmap = $2, updated_at = NOW()`,
		roleKey, []byte(roadmap),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert roadmap: %w", err)
	}
	return nil
}

// EnsureSchema creates the roadmaps table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, RoadmapsTableDDL); err != nil {
		return fmt.Errorf("failed to create roadmaps table: %w", err)
	}
	return nil
}
