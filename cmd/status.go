/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/orien/stackpreview/internal/inventory"
	"github.com/spf13/cobra"
)

var (
	// inventoryQuery can be injected for testing
	inventoryQuery inventory.Query
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <identifier>",
	Short: "Show the stacks and outputs of a preview environment",
	Long: `Show every stack belonging to a pull request identifier, with its status,
creation time and outputs.

Examples:
  stackpreview status 42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context(), cmd, args[0])
	},
}

// SetInventoryQuery allows injection of an inventory query (for testing)
func SetInventoryQuery(q inventory.Query) {
	inventoryQuery = q
}

func getInventoryQuery(ctx context.Context, s *session) (inventory.Query, error) {
	if inventoryQuery != nil {
		return inventoryQuery, nil
	}

	client, err := s.awsClient(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.NewStackQuery(client.NewCloudFormationOperations(), s.naming(), s.logger), nil
}

func runStatus(ctx context.Context, cmd *cobra.Command, identifier string) error {
	s, err := newSession(ctx, identifier, false)
	if err != nil {
		return err
	}

	q, err := getInventoryQuery(ctx, s)
	if err != nil {
		return err
	}

	entries, err := q.List(ctx, identifier)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), newFormatter().Inventory(identifier, entries))
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
