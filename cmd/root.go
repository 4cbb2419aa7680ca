/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/orien/stackpreview/internal/version"
	"github.com/spf13/cobra"
)

// globalOptions holds the values of the persistent flags
type globalOptions struct {
	configFile string
	envFile    string
	region     string
	profile    string
	verbose    bool
}

var globalOpts globalOptions

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackpreview",
	Short: "Manage pull request preview environments on AWS CloudFormation",
	Long: `stackpreview deploys, inspects and tears down preview environments for pull requests.

Each pull request identifier maps to a family of CloudFormation stacks, one per
component found in the components directory. Stack names follow the pattern
<prefix>-<identifier>-<environment>-<component>, so every command can find the
stacks of an identifier without keeping any local state.

• deploy creates or updates every component stack
• status and list show what is running
• validate checks names and templates without deploying
• cleanup deletes every stack of an identifier, newest first`,
	Version:       version.Short(),
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are rendered by fang and returned so the caller
// can set the exit status.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.GitCommit),
	)
}

// RootCommand returns the root command, for documentation generation
func RootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&globalOpts.configFile, "config", "c", "stackpreview.yaml", "configuration file")
	flags.StringVar(&globalOpts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&globalOpts.region, "region", "", "AWS region (overrides config and environment)")
	flags.StringVar(&globalOpts.profile, "profile", "", "AWS shared config profile (overrides config)")
	flags.BoolVarP(&globalOpts.verbose, "verbose", "v", false, "verbose output")
}
