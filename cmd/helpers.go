/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/orien/stackpreview/internal/aws"
	"github.com/orien/stackpreview/internal/config"
	"github.com/orien/stackpreview/internal/config/file"
	"github.com/orien/stackpreview/internal/logging"
	"github.com/orien/stackpreview/internal/naming"
	"github.com/orien/stackpreview/internal/output"
	"github.com/orien/stackpreview/internal/packager"
	"github.com/orien/stackpreview/internal/prereq"
	"go.uber.org/zap"
)

var (
	// These can be injected for testing
	configProvider config.ConfigProvider
	awsClient      aws.Client
	checker        prereq.Checker
	logger         *zap.Logger
)

// SetConfigProvider allows injection of a configuration provider (for testing)
func SetConfigProvider(p config.ConfigProvider) {
	configProvider = p
}

// SetAWSClient allows injection of an AWS client (for testing)
func SetAWSClient(c aws.Client) {
	awsClient = c
}

// SetPrerequisiteChecker allows injection of a prerequisite checker (for testing)
func SetPrerequisiteChecker(c prereq.Checker) {
	checker = c
}

// SetLogger allows injection of a logger (for testing)
func SetLogger(l *zap.Logger) {
	logger = l
}

// session carries what every command needs once configuration is resolved
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client aws.Client
}

// newSession resolves configuration, checks the identifier against the naming rules and
// then checks prerequisites, before any work starts. An empty identifier skips the naming
// check. requireSAM adds the SAM CLI to the prerequisites when the sam packager is configured.
func newSession(ctx context.Context, identifier string, requireSAM bool) (*session, error) {
	log, err := getLogger()
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug("configuration resolved",
		zap.String("prefix", cfg.Prefix),
		zap.String("environment", cfg.Environment),
		zap.String("region", cfg.Region),
		zap.String("packager", cfg.Packager))

	s := &session{cfg: cfg, logger: log}
	if identifier != "" {
		if _, err := s.naming().Base(identifier); err != nil {
			return nil, err
		}
	}
	if err := s.checkPrerequisites(ctx, requireSAM); err != nil {
		return nil, err
	}
	return s, nil
}

// awsClient returns the injected client or creates one for the configured region and profile
func (s *session) awsClient(ctx context.Context) (aws.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	if awsClient != nil {
		s.client = awsClient
		return s.client, nil
	}

	client, err := aws.NewDefaultClient(ctx, aws.Config{Region: s.cfg.Region, Profile: s.cfg.Profile})
	if err != nil {
		return nil, err
	}
	s.client = client
	return s.client, nil
}

func (s *session) naming() *naming.Resolver {
	return naming.NewResolver(s.cfg.Prefix, s.cfg.Environment)
}

func (s *session) checkPrerequisites(ctx context.Context, requireSAM bool) error {
	c := checker
	if c == nil {
		client, err := s.awsClient(ctx)
		if err != nil {
			return err
		}

		var executables []string
		if requireSAM && s.cfg.Packager == config.PackagerSAM {
			executables = append(executables, packager.SAMExecutable)
		}
		c = prereq.NewChecker(client.NewIdentityOperations(), s.logger, executables...)
	}
	return c.Check(ctx)
}

// getLogger returns the injected logger or builds one from the verbose flag
func getLogger() (*zap.Logger, error) {
	if logger != nil {
		return logger, nil
	}

	l, err := logging.New(globalOpts.verbose)
	if err != nil {
		return nil, err
	}
	logger = l
	return logger, nil
}

// loadConfig layers configuration: file, then dotenv and process environment, then flags
func loadConfig(ctx context.Context) (*config.Config, error) {
	if err := loadEnvFile(globalOpts.envFile); err != nil {
		return nil, err
	}

	provider := configProvider
	if provider == nil {
		provider = file.NewProvider(globalOpts.configFile)
	}

	cfg, err := provider.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.ApplyEnvironment(cfg, os.LookupEnv)

	if globalOpts.region != "" {
		cfg.Region = globalOpts.region
	}
	if globalOpts.profile != "" {
		cfg.Profile = globalOpts.profile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile loads variables from a dotenv file without overriding the process environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func newFormatter() *output.Formatter {
	return output.NewFormatter(output.NewStyles(output.ShouldUseColour()))
}

func printResult(w io.Writer, text string) {
	_, _ = fmt.Fprint(w, text)
}
