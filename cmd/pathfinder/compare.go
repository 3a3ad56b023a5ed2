package main

import (
	"github.com/jonathan/pathfinder/internal/observability"
	"github.com/jonathan/pathfinder/internal/server"
	"github.com/jonathan/pathfinder/internal/types"
	"github.com/spf13/cobra"
)

var (
	compareJSON bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <role-a> <role-b>",
	Short: "Compare two roles side by side",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the record as JSON")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	req := types.CompareRequest{RoleA: args[0], RoleB: args[1]}
	req.Trim()
	if err := req.Validate(); err != nil {
		return &server.ErrValidation{Field: "role", Message: server.MsgRolesRequired}
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	rec := a.Resolver.Compare(cmd.Context(), req.RoleA, req.RoleB)

	if compareJSON {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintComparison(rec)
	return nil
}
