/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/orien/stackpreview/internal/resolve"
	"github.com/orien/stackpreview/internal/validate"
	"github.com/spf13/cobra"
)

var (
	// validator can be injected for testing
	validator validate.Validator
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <identifier>",
	Short: "Check stack names and templates without deploying",
	Long: `Validate the preview environment of a pull request identifier without changing
any stack.

For every component the stack name is checked against the CloudFormation length
limits and the template is validated with the CloudFormation ValidateTemplate API.
With the cloudformation packager the template is rendered first, exactly as deploy
would render it.

Examples:
  stackpreview validate 42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), cmd, args[0])
	},
}

// SetValidator allows injection of a validator (for testing)
func SetValidator(v validate.Validator) {
	validator = v
}

func getValidator(ctx context.Context, s *session) (validate.Validator, error) {
	if validator != nil {
		return validator, nil
	}

	client, err := s.awsClient(ctx)
	if err != nil {
		return nil, err
	}
	return validate.NewTemplateValidator(s.cfg, resolve.NewComponentResolver(s.cfg), client.NewCloudFormationOperations(), s.logger), nil
}

func runValidate(ctx context.Context, cmd *cobra.Command, identifier string) error {
	s, err := newSession(ctx, identifier, false)
	if err != nil {
		return err
	}

	v, err := getValidator(ctx, s)
	if err != nil {
		return err
	}

	report, err := v.Validate(ctx, identifier)
	if report != nil {
		printResult(cmd.OutOrStdout(), newFormatter().Validation(report))
	}
	return err
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
