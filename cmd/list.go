/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stacks of every preview environment",
	Long: `List every stack whose name starts with the configured prefix, across all
pull request identifiers, without fetching outputs.

Examples:
  stackpreview list
  stackpreview list --region eu-west-1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), cmd)
	},
}

func runList(ctx context.Context, cmd *cobra.Command) error {
	s, err := newSession(ctx, "", false)
	if err != nil {
		return err
	}

	q, err := getInventoryQuery(ctx, s)
	if err != nil {
		return err
	}

	entries, err := q.Match(ctx, "")
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), newFormatter().Summary(entries))
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
