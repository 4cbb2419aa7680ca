/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orien/stackpreview/internal/bucket"
	"github.com/orien/stackpreview/internal/deploy"
	"github.com/orien/stackpreview/internal/model"
	"github.com/orien/stackpreview/internal/packager"
	"github.com/orien/stackpreview/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	// deployer can be injected for testing
	deployer deploy.Deployer

	deployOpts struct {
		retries    int
		retryDelay time.Duration
	}
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy <identifier>",
	Short: "Create or update the preview environment of a pull request",
	Long: `Deploy every component of the preview environment for a pull request identifier.

Components are deployed one after another in alphabetical order. A component that
fails does not stop the others; the command reports every failed component and
exits non-zero. Re-running deploy is safe: unchanged stacks report no changes.

Before anything is deployed, the stack name of every component is checked against
the CloudFormation length limits. If any name is too long, nothing is deployed.

Examples:
  stackpreview deploy 42
  stackpreview deploy 42 --retries 3 --retry-delay 1m`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeploy(cmd.Context(), cmd, args[0])
	},
}

// SetDeployer allows injection of a deployer (for testing)
func SetDeployer(d deploy.Deployer) {
	deployer = d
}

// getDeployer returns the deployer instance, creating a default one if none is set
func getDeployer(ctx context.Context, s *session) (deploy.Deployer, error) {
	if deployer != nil {
		return deployer, nil
	}

	client, err := s.awsClient(ctx)
	if err != nil {
		return nil, err
	}

	pkg, err := packager.New(s.cfg, client, packager.NewExecRunner(s.logger), s.logger)
	if err != nil {
		return nil, err
	}

	buckets := bucket.NewResolver(client.NewS3Operations(), s.cfg.Prefix, s.cfg.ArtifactBucket, s.logger)
	return deploy.NewPreviewDeployer(s.cfg, resolve.NewComponentResolver(s.cfg), pkg, buckets, s.logger), nil
}

func runDeploy(ctx context.Context, cmd *cobra.Command, identifier string) error {
	if err := checkDeployFlags(cmd); err != nil {
		return err
	}

	f := newFormatter()

	s, err := newSession(ctx, identifier, true)
	if errors.Is(err, model.ErrNameTooLong) || errors.Is(err, model.ErrInvalidIdentifier) {
		printResult(cmd.OutOrStdout(), f.DeploymentAborted(identifier, err))
		return err
	}
	if err != nil {
		return err
	}

	d, err := getDeployer(ctx, s)
	if err != nil {
		return err
	}

	policy := deploy.RetryPolicy{Attempts: s.cfg.Retry.Attempts, Delay: s.cfg.Retry.Delay}
	if cmd.Flags().Changed("retries") {
		policy.Attempts = deployOpts.retries
	}
	if cmd.Flags().Changed("retry-delay") {
		policy.Delay = deployOpts.retryDelay
	}

	result, err := deploy.Retry(ctx, policy, d, identifier, s.logger)

	if result == nil {
		if err != nil {
			printResult(cmd.OutOrStdout(), f.DeploymentAborted(identifier, err))
		}
		return err
	}

	printResult(cmd.OutOrStdout(), f.Deployment(result))
	return err
}

// checkDeployFlags applies the configuration file's rules to the retry overrides
func checkDeployFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("retries") && deployOpts.retries < 1 {
		return fmt.Errorf("--retries must be at least 1, got %d", deployOpts.retries)
	}
	if cmd.Flags().Changed("retry-delay") && deployOpts.retryDelay < 0 {
		return fmt.Errorf("--retry-delay must not be negative, got %s", deployOpts.retryDelay)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().IntVar(&deployOpts.retries, "retries", 0, "attempts for the whole batch (overrides retry.attempts)")
	deployCmd.Flags().DurationVar(&deployOpts.retryDelay, "retry-delay", 0, "delay between attempts (overrides retry.delay)")
}
