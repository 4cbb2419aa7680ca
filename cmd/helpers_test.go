/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/orien/stackpreview/internal/config"
	"github.com/orien/stackpreview/internal/prereq"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testConfig = `
prefix: milaliso-pr
environment: dev
region: us-east-1
retry:
  attempts: 1
  delay: 1s
`

type cmdFixture struct {
	dir     string
	checker *prereq.MockChecker
}

// newCmdFixture writes a config file and replaces every injected dependency;
// all of them are restored when the test ends
func newCmdFixture(t *testing.T, configContent string) *cmdFixture {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stackpreview.yaml"), []byte(configContent), 0o644))

	for _, key := range []string{
		config.EnvPrefix, config.EnvEnvironment, config.EnvRegion, config.EnvAWSRegion,
		config.EnvArtifactBucket, config.EnvPackager,
	} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")

	f := &cmdFixture{dir: dir, checker: &prereq.MockChecker{}}
	f.checker.On("Check", mock.Anything).Return(nil).Maybe()

	SetPrerequisiteChecker(f.checker)
	SetLogger(zap.NewNop())
	resetFlags(rootCmd)

	t.Cleanup(func() {
		SetPrerequisiteChecker(nil)
		SetLogger(nil)
		SetConfigProvider(nil)
		SetAWSClient(nil)
		SetDeployer(nil)
		SetCleaner(nil)
		SetInventoryQuery(nil)
		SetValidator(nil)
		resetFlags(rootCmd)
	})
	return f
}

// execute runs the root command against the fixture's config and returns its output
func (f *cmdFixture) execute(args ...string) (string, error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args,
		"--config", filepath.Join(f.dir, "stackpreview.yaml"),
		"--env-file", filepath.Join(f.dir, ".env"),
	))

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so flag state does not leak between tests
func resetFlags(cmd *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func findCommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestLoadConfig_Layering(t *testing.T) {
	f := newCmdFixture(t, testConfig)
	globalOpts.configFile = filepath.Join(f.dir, "stackpreview.yaml")
	globalOpts.envFile = filepath.Join(f.dir, ".env")

	cfg, err := loadConfig(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "milaliso-pr", cfg.Prefix)
	assert.Equal(t, "us-east-1", cfg.Region)

	t.Setenv(config.EnvRegion, "eu-west-1")
	cfg, err = loadConfig(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)

	globalOpts.region = "ap-southeast-2"
	globalOpts.profile = "ci"
	cfg, err = loadConfig(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.Region)
	assert.Equal(t, "ci", cfg.Profile)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	f := newCmdFixture(t, testConfig)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, ".env"),
		[]byte("STACKPREVIEW_ENVIRONMENT=staging\nSTACKPREVIEW_ARTIFACT_BUCKET=shared-artifacts\n"), 0o644))

	// registered for restore, then unset so the dotenv file can provide them
	t.Setenv(config.EnvEnvironment, "")
	require.NoError(t, os.Unsetenv(config.EnvEnvironment))
	t.Setenv(config.EnvArtifactBucket, "")
	require.NoError(t, os.Unsetenv(config.EnvArtifactBucket))

	globalOpts.configFile = filepath.Join(f.dir, "stackpreview.yaml")
	globalOpts.envFile = filepath.Join(f.dir, ".env")

	cfg, err := loadConfig(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "shared-artifacts", cfg.ArtifactBucket)
}

func TestLoadConfig_MissingEnvFileIgnored(t *testing.T) {
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, loadEnvFile(""))
}

func TestLoadConfig_Invalid(t *testing.T) {
	f := newCmdFixture(t, "prefix: milaliso-pr\n")
	globalOpts.configFile = filepath.Join(f.dir, "stackpreview.yaml")
	globalOpts.envFile = ""

	_, err := loadConfig(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region must be set")
}

func TestLoadConfig_ProviderError(t *testing.T) {
	newCmdFixture(t, testConfig)
	provider := &config.MockConfigProvider{}
	provider.On("LoadConfig", mock.Anything).Return(nil, errors.New("unreadable"))
	SetConfigProvider(provider)
	globalOpts.envFile = ""

	_, err := loadConfig(t.Context())
	assert.EqualError(t, err, "failed to load configuration: unreadable")
}
