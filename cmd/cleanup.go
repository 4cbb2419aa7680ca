/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/orien/stackpreview/internal/aws"
	"github.com/orien/stackpreview/internal/cleanup"
	"github.com/orien/stackpreview/internal/inventory"
	"github.com/spf13/cobra"
)

var (
	// cleaner can be injected for testing
	cleaner cleanup.Cleaner

	cleanupOpts struct {
		timeout time.Duration
	}
)

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup <identifier>",
	Short: "Delete every stack of a preview environment",
	Long: `Delete every stack belonging to a pull request identifier.

Stacks are deleted newest first, one at a time, waiting for each deletion to
finish. A stack that fails to delete does not stop the others. Running cleanup
for an identifier without stacks succeeds and reports that nothing was found.

Examples:
  stackpreview cleanup 42
  stackpreview cleanup 42 --timeout 45m`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCleanup(cmd.Context(), cmd, args[0])
	},
}

// SetCleaner allows injection of a cleaner (for testing)
func SetCleaner(c cleanup.Cleaner) {
	cleaner = c
}

func getCleaner(ctx context.Context, s *session, wait aws.WaitOptions) (cleanup.Cleaner, error) {
	if cleaner != nil {
		return cleaner, nil
	}

	client, err := s.awsClient(ctx)
	if err != nil {
		return nil, err
	}

	cfn := client.NewCloudFormationOperations()
	query := inventory.NewStackQuery(cfn, s.naming(), s.logger)
	return cleanup.NewStackCleaner(cfn, query, s.naming(), wait, s.logger), nil
}

func runCleanup(ctx context.Context, cmd *cobra.Command, identifier string) error {
	if cmd.Flags().Changed("timeout") && cleanupOpts.timeout <= 0 {
		return fmt.Errorf("--timeout must be positive, got %s", cleanupOpts.timeout)
	}

	s, err := newSession(ctx, identifier, false)
	if err != nil {
		return err
	}

	wait := aws.WaitOptions{Timeout: s.cfg.Cleanup.Timeout, PollInterval: s.cfg.Cleanup.PollInterval}
	if cmd.Flags().Changed("timeout") {
		wait.Timeout = cleanupOpts.timeout
	}

	c, err := getCleaner(ctx, s, wait)
	if err != nil {
		return err
	}

	result, err := c.Cleanup(ctx, identifier)
	if result != nil {
		printResult(cmd.OutOrStdout(), newFormatter().Cleanup(result))
	}
	return err
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().DurationVar(&cleanupOpts.timeout, "timeout", 0, "maximum wait for each stack deletion (overrides cleanup.timeout)")
}
