/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package packager

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SAMExecutable is the SAM CLI binary looked up on PATH
const SAMExecutable = "sam"

// samNoChanges is printed by sam deploy when the change set is empty
const samNoChanges = "No changes to deploy"

// SAMPackager delegates build and deploy to the SAM CLI
type SAMPackager struct {
	runner   CommandRunner
	buildDir string
	logger   *zap.Logger
}

// NewSAMPackager creates a SAM packager writing build output under buildDir
func NewSAMPackager(runner CommandRunner, buildDir string, logger *zap.Logger) *SAMPackager {
	return &SAMPackager{
		runner:   runner,
		buildDir: buildDir,
		logger:   logger,
	}
}

// Name returns the packager name
func (p *SAMPackager) Name() string {
	return "sam"
}

// Build runs sam build for the component into its own build directory
func (p *SAMPackager) Build(ctx context.Context, req BuildRequest) (*Artifact, error) {
	buildDir, err := filepath.Abs(filepath.Join(p.buildDir, req.Component.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build directory: %w", err)
	}

	templatePath, err := filepath.Abs(req.Component.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template path: %w", err)
	}

	p.logger.Info("building component", zap.String("component", req.Component.Name))
	_, err = p.runner.Run(ctx, req.Component.Dir, SAMExecutable,
		"build",
		"--template-file", templatePath,
		"--build-dir", buildDir,
	)
	if err != nil {
		return nil, err
	}

	return &Artifact{TemplatePath: filepath.Join(buildDir, "template.yaml")}, nil
}

// Deploy runs sam deploy without a confirmation prompt. An empty change set is a success.
func (p *SAMPackager) Deploy(ctx context.Context, req DeployRequest) (*DeployOutput, error) {
	args := []string{
		"deploy",
		"--template-file", req.Artifact.TemplatePath,
		"--stack-name", req.StackName,
		"--no-confirm-changeset",
		"--no-fail-on-empty-changeset",
	}

	if req.Region != "" {
		args = append(args, "--region", req.Region)
	}

	if req.Bucket.IsReady() {
		args = append(args,
			"--s3-bucket", req.Bucket.Bucket,
			"--s3-prefix", req.StoragePrefix+"/"+req.Component.Name,
		)
	} else {
		args = append(args, "--resolve-s3")
	}

	if len(req.Capabilities) > 0 {
		args = append(args, "--capabilities")
		args = append(args, req.Capabilities...)
	}

	if len(req.Parameters) > 0 {
		args = append(args, "--parameter-overrides")
		for _, k := range sortedKeys(req.Parameters) {
			args = append(args, k+"="+req.Parameters[k])
		}
	}

	if len(req.Tags) > 0 {
		args = append(args, "--tags")
		for _, k := range sortedKeys(req.Tags) {
			args = append(args, k+"="+req.Tags[k])
		}
	}

	p.logger.Info("deploying component",
		zap.String("component", req.Component.Name),
		zap.String("stack", req.StackName),
		zap.Stringer("bucket", req.Bucket.Kind))

	out, err := p.runner.Run(ctx, req.Component.Dir, SAMExecutable, args...)
	if err != nil {
		return nil, err
	}

	return &DeployOutput{NoChanges: strings.Contains(out, samNoChanges)}, nil
}
