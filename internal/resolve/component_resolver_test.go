/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/orien/stackpreview/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(componentsDir string) *config.Config {
	cfg := config.Defaults()
	cfg.Region = "us-east-1"
	cfg.ComponentsDir = componentsDir
	cfg.Parameters = map[string]string{"LogLevel": "INFO"}
	cfg.Components = map[string]*config.ComponentConfig{
		"sample-component": {Parameters: map[string]string{"MemorySize": "256"}},
	}
	return cfg
}

func TestComponentResolver_Resolve_FromDisk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sample-component", "template.yaml"), "Resources: {}")
	writeFile(t, filepath.Join(root, "api", "template.yaml"), "Resources: {}")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))

	resolver := NewComponentResolver(testConfig(root))
	components, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	require.Len(t, components, 3)

	assert.Equal(t, "api", components[0].Name)
	assert.True(t, components[0].HasTemplate)
	assert.Equal(t, map[string]string{"LogLevel": "INFO"}, components[0].Parameters)

	assert.Equal(t, "docs", components[1].Name)
	assert.False(t, components[1].HasTemplate)

	sample := components[2]
	assert.Equal(t, "sample-component", sample.Name)
	assert.Equal(t, filepath.Join(root, "sample-component"), sample.Dir)
	assert.Equal(t, filepath.Join(root, "sample-component", "template.yaml"), sample.TemplatePath)
	assert.Equal(t, map[string]string{"LogLevel": "INFO", "MemorySize": "256"}, sample.Parameters)
	assert.Equal(t, config.Defaults().Capabilities, sample.Capabilities)
}

func TestComponentResolver_Resolve_ListError(t *testing.T) {
	mockFS := &MockFileSystemResolver{}
	mockFS.On("ListDirectories", "components").Return(nil, errors.New("permission denied"))

	resolver := NewComponentResolver(testConfig("components"))
	resolver.SetFileSystemResolver(mockFS)

	_, err := resolver.Resolve(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestComponentResolver_Resolve_StatError(t *testing.T) {
	mockFS := &MockFileSystemResolver{}
	mockFS.On("ListDirectories", "components").Return([]string{"api"}, nil)
	mockFS.On("FileExists", filepath.Join("components", "api", "template.yaml")).Return(false, errors.New("io error"))

	resolver := NewComponentResolver(testConfig("components"))
	resolver.SetFileSystemResolver(mockFS)

	_, err := resolver.Resolve(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to inspect component api")
}

func TestComponentResolver_Resolve_EmptyDirectory(t *testing.T) {
	resolver := NewComponentResolver(testConfig(t.TempDir()))

	components, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Empty(t, components)
}
