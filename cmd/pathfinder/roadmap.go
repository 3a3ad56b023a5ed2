package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/pathfinder/internal/observability"
	"github.com/jonathan/pathfinder/internal/roadmap"
	"github.com/jonathan/pathfinder/internal/server"
	"github.com/jonathan/pathfinder/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentRoles bounds simultaneous model calls from one command
const maxConcurrentRoles = 4

var (
	roadmapJSON bool
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <role> [role...]",
	Short: "Print the career roadmap for one or more roles",
	Long: `Resolve each role against the curated table, falling back to the model for
unknown roles. Roles are resolved concurrently and printed in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoadmap,
}

func init() {
	roadmapCmd.Flags().BoolVar(&roadmapJSON, "json", false, "Print records as JSON")
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, args []string) error {
	roles, err := normalizeRoles(args)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	records, err := resolveRoles(cmd.Context(), a.Resolver, roles)
	if err != nil {
		return err
	}

	if roadmapJSON {
		if len(records) == 1 {
			return writeJSON(cmd.OutOrStdout(), records[0])
		}
		return writeJSON(cmd.OutOrStdout(), records)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, rec := range records {
		printer.PrintRoadmap(rec)
	}
	return nil
}

// normalizeRoles trims every role and rejects empty ones
func normalizeRoles(args []string) ([]string, error) {
	roles := make([]string, len(args))
	for i, arg := range args {
		req := types.GenerateRequest{JobTitle: arg}
		req.Trim()
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("role %d: %s", i+1, server.MsgJobTitleRequired)
		}
		roles[i] = req.JobTitle
	}
	return roles, nil
}

// resolveRoles resolves roles concurrently and returns records in input order
func resolveRoles(ctx context.Context, resolver server.Resolver, roles []string) ([]roadmap.Record, error) {
	records := make([]roadmap.Record, len(roles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRoles)
	for i, role := range roles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = resolver.Resolve(ctx, role)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
