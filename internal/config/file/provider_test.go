/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orien/stackpreview/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stackpreview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProvider_LoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	provider := NewProvider(filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := provider.LoadConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestProvider_LoadConfig_ParsesFullConfiguration(t *testing.T) {
	path := createTempConfigFile(t, `
prefix: milaliso-pr
environment: dev
region: us-east-1
components_dir: components
packager: cloudformation
scope_parameter: Stage
artifact_bucket: shared-artifacts
parameters:
  LogLevel: INFO
  Subnets:
    - subnet-a
    - subnet-b
tags:
  Team: platform
capabilities:
  - CAPABILITY_IAM
components:
  sample-component:
    parameters:
      MemorySize: 256
    tags:
      Service: sample
cleanup:
  timeout: 45m
  poll_interval: 15s
retry:
  attempts: 3
  delay: 1m
`)

	cfg, err := NewProvider(path).LoadConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "milaliso-pr", cfg.Prefix)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "components"), cfg.ComponentsDir)
	assert.Equal(t, config.PackagerCloudFormation, cfg.Packager)
	assert.Equal(t, "Stage", cfg.ScopeParameter)
	assert.Equal(t, "shared-artifacts", cfg.ArtifactBucket)
	assert.Equal(t, map[string]string{"LogLevel": "INFO", "Subnets": "subnet-a,subnet-b"}, cfg.Parameters)
	assert.Equal(t, map[string]string{"Team": "platform"}, cfg.Tags)
	assert.Equal(t, []string{"CAPABILITY_IAM"}, cfg.Capabilities)
	assert.Equal(t, 45*time.Minute, cfg.Cleanup.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Cleanup.PollInterval)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, time.Minute, cfg.Retry.Delay)

	require.Contains(t, cfg.Components, "sample-component")
	settings := cfg.ComponentSettings("sample-component")
	assert.Equal(t, "256", settings.Parameters["MemorySize"])
	assert.Equal(t, "INFO", settings.Parameters["LogLevel"])
	assert.Equal(t, "sample", settings.Tags["Service"])
}

func TestProvider_LoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := createTempConfigFile(t, `
prefix: team-pr
cleanup:
  timeout: 5m
`)

	cfg, err := NewProvider(path).LoadConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "team-pr", cfg.Prefix)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, config.PackagerSAM, cfg.Packager)
	assert.Equal(t, "components", cfg.ComponentsDir)
	assert.Equal(t, 5*time.Minute, cfg.Cleanup.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Cleanup.PollInterval)
	assert.Equal(t, 2, cfg.Retry.Attempts)
}

func TestProvider_LoadConfig_AbsoluteComponentsDir(t *testing.T) {
	dir := t.TempDir()
	path := createTempConfigFile(t, "components_dir: "+dir+"\n")

	cfg, err := NewProvider(path).LoadConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ComponentsDir)
}

func TestProvider_LoadConfig_InvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "prefix: [unterminated\n")

	cfg, err := NewProvider(path).LoadConfig(context.Background())

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse YAML config file")
}

func TestProvider_LoadConfig_RejectsNestedParameterValues(t *testing.T) {
	path := createTempConfigFile(t, `
parameters:
  Database:
    engine: postgres
`)

	_, err := NewProvider(path).LoadConfig(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a scalar or a list of scalars")
}

func TestProvider_LoadConfig_InvalidDuration(t *testing.T) {
	path := createTempConfigFile(t, `
cleanup:
  timeout: soon
`)

	_, err := NewProvider(path).LoadConfig(context.Background())

	assert.Error(t, err)
}

func TestProvider_LoadConfig_ReturnsFreshConfigEachTime(t *testing.T) {
	path := createTempConfigFile(t, "parameters:\n  LogLevel: INFO\n")
	provider := NewProvider(path)

	first, err := provider.LoadConfig(context.Background())
	require.NoError(t, err)
	first.Parameters["LogLevel"] = "DEBUG"

	second, err := provider.LoadConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INFO", second.Parameters["LogLevel"])
}
