/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package prereq checks that credentials and external tools are available before any work starts.
package prereq

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/orien/stackpreview/internal/aws"
	"github.com/orien/stackpreview/internal/model"
	"go.uber.org/zap"
)

// Checker verifies prerequisites
type Checker interface {
	Check(ctx context.Context) error
}

// LookPathFunc has the signature of exec.LookPath
type LookPathFunc func(file string) (string, error)

// DefaultChecker checks AWS credentials and, optionally, required executables
type DefaultChecker struct {
	identity    aws.IdentityOperations
	executables []string
	lookPath    LookPathFunc
	logger      *zap.Logger
}

// NewChecker creates a checker that requires the given executables on PATH
func NewChecker(identity aws.IdentityOperations, logger *zap.Logger, executables ...string) *DefaultChecker {
	return &DefaultChecker{
		identity:    identity,
		executables: executables,
		lookPath:    exec.LookPath,
		logger:      logger,
	}
}

// SetLookPath allows replacing executable lookup (for testing)
func (c *DefaultChecker) SetLookPath(lookPath LookPathFunc) {
	c.lookPath = lookPath
}

// Check returns model.ErrPrerequisiteMissing wrapped with the first missing prerequisite
func (c *DefaultChecker) Check(ctx context.Context) error {
	for _, name := range c.executables {
		path, err := c.lookPath(name)
		if err != nil {
			return fmt.Errorf("%w: %s not found on PATH: %w", model.ErrPrerequisiteMissing, name, err)
		}
		c.logger.Debug("found executable", zap.String("name", name), zap.String("path", path))
	}

	identity, err := c.identity.CallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("%w: AWS credentials are not usable: %w", model.ErrPrerequisiteMissing, err)
	}

	c.logger.Debug("resolved AWS identity",
		zap.String("account", identity.Account),
		zap.String("arn", identity.ARN))

	return nil
}
