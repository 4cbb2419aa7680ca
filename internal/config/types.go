/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Supported packagers
const (
	PackagerSAM            = "sam"
	PackagerCloudFormation = "cloudformation"
)

// Environment variables that override file values
const (
	EnvPrefix         = "STACKPREVIEW_PREFIX"
	EnvEnvironment    = "STACKPREVIEW_ENVIRONMENT"
	EnvRegion         = "STACKPREVIEW_REGION"
	EnvAWSRegion      = "AWS_REGION"
	EnvArtifactBucket = "STACKPREVIEW_ARTIFACT_BUCKET"
	EnvPackager       = "STACKPREVIEW_PACKAGER"
)

// ConfigProvider defines the interface for loading configuration
type ConfigProvider interface {
	// LoadConfig loads the configuration, falling back to defaults for anything unset
	LoadConfig(ctx context.Context) (*Config, error)
}

// Config represents the resolved configuration for one invocation
type Config struct {
	Prefix         string
	Environment    string
	Region         string
	Profile        string
	ComponentsDir  string
	TemplateFile   string
	BuildDir       string
	Packager       string
	ScopeParameter string
	ArtifactBucket string

	// Environment-wide defaults, overridden per component
	Parameters   map[string]string
	Tags         map[string]string
	Capabilities []string

	Components map[string]*ComponentConfig

	Cleanup CleanupConfig
	Retry   RetryConfig
}

// ComponentConfig holds per-component overrides
type ComponentConfig struct {
	Parameters   map[string]string
	Tags         map[string]string
	Capabilities []string
}

// CleanupConfig bounds the delete wait
type CleanupConfig struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// RetryConfig controls whole-batch deploy retries
type RetryConfig struct {
	Attempts int
	Delay    time.Duration
}

// Defaults returns the configuration used when nothing else is set
func Defaults() *Config {
	return &Config{
		Prefix:         "preview",
		Environment:    "dev",
		ComponentsDir:  "components",
		TemplateFile:   "template.yaml",
		BuildDir:       ".aws-sam/build",
		Packager:       PackagerSAM,
		ScopeParameter: "Environment",
		Parameters:     map[string]string{},
		Tags:           map[string]string{},
		Capabilities:   []string{"CAPABILITY_IAM", "CAPABILITY_NAMED_IAM", "CAPABILITY_AUTO_EXPAND"},
		Components:     map[string]*ComponentConfig{},
		Cleanup: CleanupConfig{
			Timeout:      30 * time.Minute,
			PollInterval: 10 * time.Second,
		},
		Retry: RetryConfig{
			Attempts: 2,
			Delay:    30 * time.Second,
		},
	}
}

// ApplyEnvironment overrides file values with environment variables.
// lookup has the signature of os.LookupEnv.
func ApplyEnvironment(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := nonEmpty(lookup, EnvPrefix); ok {
		cfg.Prefix = v
	}
	if v, ok := nonEmpty(lookup, EnvEnvironment); ok {
		cfg.Environment = v
	}
	if v, ok := nonEmpty(lookup, EnvRegion); ok {
		cfg.Region = v
	} else if cfg.Region == "" {
		if v, ok := nonEmpty(lookup, EnvAWSRegion); ok {
			cfg.Region = v
		}
	}
	if v, ok := nonEmpty(lookup, EnvArtifactBucket); ok {
		cfg.ArtifactBucket = v
	}
	if v, ok := nonEmpty(lookup, EnvPackager); ok {
		cfg.Packager = strings.ToLower(v)
	}
}

func nonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate checks the configuration for consistency and errors
func (c *Config) Validate() error {
	var errs []error

	if c.Prefix == "" {
		errs = append(errs, errors.New("prefix must not be empty"))
	}
	if c.Environment == "" {
		errs = append(errs, errors.New("environment must not be empty"))
	}
	if c.Region == "" {
		errs = append(errs, fmt.Errorf("region must be set (config file, --region, %s or %s)", EnvRegion, EnvAWSRegion))
	}
	if c.ComponentsDir == "" {
		errs = append(errs, errors.New("components_dir must not be empty"))
	}
	if c.TemplateFile == "" {
		errs = append(errs, errors.New("template_file must not be empty"))
	}
	if c.ScopeParameter == "" {
		errs = append(errs, errors.New("scope_parameter must not be empty"))
	}

	switch c.Packager {
	case PackagerSAM, PackagerCloudFormation:
	default:
		errs = append(errs, fmt.Errorf("unknown packager %s: expected %s or %s",
			strconv.Quote(c.Packager), PackagerSAM, PackagerCloudFormation))
	}

	if c.Cleanup.Timeout <= 0 {
		errs = append(errs, errors.New("cleanup.timeout must be positive"))
	}
	if c.Cleanup.PollInterval <= 0 {
		errs = append(errs, errors.New("cleanup.poll_interval must be positive"))
	}
	if c.Retry.Attempts < 1 {
		errs = append(errs, errors.New("retry.attempts must be at least 1"))
	}
	if c.Retry.Delay < 0 {
		errs = append(errs, errors.New("retry.delay must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ComponentSettings merges environment-wide defaults with the component's overrides.
// Component values take precedence; capabilities are replaced rather than merged.
func (c *Config) ComponentSettings(name string) ComponentConfig {
	settings := ComponentConfig{
		Parameters:   copyStringMap(c.Parameters),
		Tags:         copyStringMap(c.Tags),
		Capabilities: copyStringSlice(c.Capabilities),
	}

	override, exists := c.Components[name]
	if !exists || override == nil {
		return settings
	}

	for k, v := range override.Parameters {
		settings.Parameters[k] = v
	}
	for k, v := range override.Tags {
		settings.Tags[k] = v
	}
	if override.Capabilities != nil {
		settings.Capabilities = copyStringSlice(override.Capabilities)
	}

	return settings
}

func copyStringMap(source map[string]string) map[string]string {
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
