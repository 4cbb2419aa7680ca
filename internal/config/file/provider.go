/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/orien/stackpreview/internal/config"
	"gopkg.in/yaml.v3"
)

// Provider implements config.ConfigProvider by reading from a YAML file
type Provider struct {
	filename  string
	rawConfig *Config
}

var _ config.ConfigProvider = (*Provider)(nil)

// NewProvider creates a new file-based ConfigProvider for the given filename
func NewProvider(filename string) *Provider {
	return &Provider{
		filename: filename,
	}
}

// LoadConfig applies the file on top of config.Defaults. A missing file is not an error.
// Relative directories in the file are resolved against the file's directory.
func (fp *Provider) LoadConfig(ctx context.Context) (*config.Config, error) {
	if err := fp.ensureLoaded(); err != nil {
		return nil, err
	}

	cfg := config.Defaults()
	raw := fp.rawConfig

	setString(&cfg.Prefix, raw.Prefix)
	setString(&cfg.Environment, raw.Environment)
	setString(&cfg.Region, raw.Region)
	setString(&cfg.Profile, raw.Profile)
	setString(&cfg.ComponentsDir, fp.resolvePath(raw.ComponentsDir))
	setString(&cfg.TemplateFile, raw.TemplateFile)
	setString(&cfg.BuildDir, fp.resolvePath(raw.BuildDir))
	setString(&cfg.Packager, strings.ToLower(raw.Packager))
	setString(&cfg.ScopeParameter, raw.ScopeParameter)
	setString(&cfg.ArtifactBucket, raw.ArtifactBucket)

	if raw.Parameters != nil {
		cfg.Parameters = toStringMap(raw.Parameters)
	}
	if raw.Tags != nil {
		cfg.Tags = copyStringMap(raw.Tags)
	}
	if raw.Capabilities != nil {
		cfg.Capabilities = copyStringSlice(raw.Capabilities)
	}

	for name, component := range raw.Components {
		if component == nil {
			continue
		}
		cfg.Components[name] = &config.ComponentConfig{
			Parameters:   toStringMap(component.Parameters),
			Tags:         copyStringMap(component.Tags),
			Capabilities: copyStringSlice(component.Capabilities),
		}
	}

	if raw.Cleanup != nil {
		if raw.Cleanup.Timeout != nil {
			cfg.Cleanup.Timeout = *raw.Cleanup.Timeout
		}
		if raw.Cleanup.PollInterval != nil {
			cfg.Cleanup.PollInterval = *raw.Cleanup.PollInterval
		}
	}

	if raw.Retry != nil {
		if raw.Retry.Attempts != nil {
			cfg.Retry.Attempts = *raw.Retry.Attempts
		}
		if raw.Retry.Delay != nil {
			cfg.Retry.Delay = *raw.Retry.Delay
		}
	}

	return cfg, nil
}

// ensureLoaded loads the raw configuration from file if not already loaded
func (fp *Provider) ensureLoaded() error {
	if fp.rawConfig != nil {
		return nil
	}

	data, err := os.ReadFile(fp.filename)
	if errors.Is(err, fs.ErrNotExist) {
		fp.rawConfig = &Config{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", fp.filename, err)
	}

	var rawConfig Config
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return fmt.Errorf("failed to parse YAML config file '%s': %w", fp.filename, err)
	}

	fp.rawConfig = &rawConfig
	return nil
}

// resolvePath resolves a path relative to the config file directory
func (fp *Provider) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(filepath.Dir(fp.filename), path)
}

func setString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func copyStringMap(source map[string]string) map[string]string {
	if source == nil {
		return nil
	}

	result := make(map[string]string, len(source))
	for k, v := range source {
		result[k] = v
	}
	return result
}

func copyStringSlice(source []string) []string {
	if source == nil {
		return nil
	}

	result := make([]string, len(source))
	copy(result, source)
	return result
}
