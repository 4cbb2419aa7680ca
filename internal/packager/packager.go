/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package packager turns a component directory into a deployed CloudFormation stack.
// Two implementations exist: one delegating to the SAM CLI and one talking to
// CloudFormation directly.
package packager

import (
	"context"
	"fmt"
	"sort"

	"github.com/orien/stackpreview/internal/aws"
	"github.com/orien/stackpreview/internal/bucket"
	"github.com/orien/stackpreview/internal/config"
	"github.com/orien/stackpreview/internal/model"
	"github.com/orien/stackpreview/internal/resolve"
	"go.uber.org/zap"
)

// BuildRequest describes one component build
type BuildRequest struct {
	Identifier  string
	Environment string
	StackName   string
	Component   *model.Component
}

// Artifact is the output of a build
type Artifact struct {
	// TemplatePath is the built template on disk (SAM)
	TemplatePath string
	// TemplateBody is the rendered template (native CloudFormation)
	TemplateBody string
}

// DeployRequest describes one component deployment
type DeployRequest struct {
	StackName     string
	Region        string
	Component     *model.Component
	Artifact      *Artifact
	Parameters    map[string]string
	Tags          map[string]string
	Capabilities  []string
	Bucket        bucket.Outcome
	StoragePrefix string
}

// DeployOutput describes the result of a deployment
type DeployOutput struct {
	NoChanges bool
}

// Packager builds and deploys components
type Packager interface {
	Name() string
	Build(ctx context.Context, req BuildRequest) (*Artifact, error)
	Deploy(ctx context.Context, req DeployRequest) (*DeployOutput, error)
}

// New returns the packager selected by the configuration
func New(cfg *config.Config, client aws.Client, runner CommandRunner, logger *zap.Logger) (Packager, error) {
	switch cfg.Packager {
	case config.PackagerSAM:
		return NewSAMPackager(runner, cfg.BuildDir, logger), nil
	case config.PackagerCloudFormation:
		return NewCloudFormationPackager(
			client.NewCloudFormationOperations(),
			client.NewS3Operations(),
			&resolve.DefaultFileSystemResolver{},
			resolve.NewCfnTemplateProcessor(),
			logger,
		), nil
	default:
		return nil, fmt.Errorf("unknown packager %q", cfg.Packager)
	}
}

// sortedKeys returns map keys in a stable order so command lines and API calls are reproducible
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
