/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package packager

import (
	"context"
	"fmt"
	"path"

	"github.com/orien/stackpreview/internal/aws"
	"github.com/orien/stackpreview/internal/resolve"
	"go.uber.org/zap"
)

// MaxInlineTemplateBytes is the largest template CloudFormation accepts as a TemplateBody
const MaxInlineTemplateBytes = 51200

// CloudFormationPackager renders component templates and deploys them through change sets
type CloudFormationPackager struct {
	cfn       aws.CloudFormationOperations
	s3        aws.S3Operations
	fs        resolve.FileSystemResolver
	processor resolve.TemplateProcessor
	logger    *zap.Logger
}

// NewCloudFormationPackager creates a native CloudFormation packager
func NewCloudFormationPackager(cfn aws.CloudFormationOperations, s3 aws.S3Operations, fs resolve.FileSystemResolver,
	processor resolve.TemplateProcessor, logger *zap.Logger) *CloudFormationPackager {
	return &CloudFormationPackager{
		cfn:       cfn,
		s3:        s3,
		fs:        fs,
		processor: processor,
		logger:    logger,
	}
}

// Name returns the packager name
func (p *CloudFormationPackager) Name() string {
	return "cloudformation"
}

// Build reads and renders the component template
func (p *CloudFormationPackager) Build(ctx context.Context, req BuildRequest) (*Artifact, error) {
	content, err := p.fs.ReadTemplate(req.Component.TemplatePath)
	if err != nil {
		return nil, err
	}

	variables := resolve.TemplateVariables(req.Identifier, req.Environment, req.Component.Name, req.StackName, req.Component.Parameters)
	body, err := p.processor.Process(content, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to render template for component %s: %w", req.Component.Name, err)
	}

	return &Artifact{TemplateBody: body}, nil
}

// Deploy stages the template and upserts the stack. Only parameters the template
// declares are passed, since CloudFormation rejects undeclared ones.
func (p *CloudFormationPackager) Deploy(ctx context.Context, req DeployRequest) (*DeployOutput, error) {
	body := req.Artifact.TemplateBody
	params := p.declaredOnly(req, body)

	input := aws.DeployStackInput{
		StackName:    req.StackName,
		Parameters:   make([]aws.Parameter, 0, len(params)),
		Tags:         req.Tags,
		Capabilities: req.Capabilities,
	}

	for _, k := range sortedKeys(params) {
		input.Parameters = append(input.Parameters, aws.Parameter{Key: k, Value: params[k]})
	}

	if req.Bucket.IsReady() {
		key := path.Join(req.StoragePrefix, req.Component.Name, "template.yaml")
		if err := p.s3.PutObject(ctx, req.Bucket.Bucket, key, []byte(body)); err != nil {
			return nil, err
		}
		input.TemplateURL = aws.ObjectURL(req.Bucket.Bucket, req.Region, key)
	} else {
		if len(body) > MaxInlineTemplateBytes {
			return nil, fmt.Errorf("template for component %s is %d bytes, above the %d byte inline limit, and no artifact bucket is available (%s)",
				req.Component.Name, len(body), MaxInlineTemplateBytes, req.Bucket.Reason)
		}
		input.TemplateBody = body
	}

	p.logger.Info("deploying component",
		zap.String("component", req.Component.Name),
		zap.String("stack", req.StackName),
		zap.Stringer("bucket", req.Bucket.Kind))

	out, err := p.cfn.DeployStack(ctx, input)
	if err != nil {
		return nil, err
	}

	return &DeployOutput{NoChanges: out.NoChanges}, nil
}

// declaredOnly drops parameters the template does not declare. A template that does not
// parse is passed every parameter and left to CloudFormation to judge.
func (p *CloudFormationPackager) declaredOnly(req DeployRequest, body string) map[string]string {
	declared, err := declaredParameters(body)
	if err != nil {
		p.logger.Warn("passing all parameters",
			zap.String("component", req.Component.Name),
			zap.Error(err))
		return req.Parameters
	}

	params, dropped := filterParameters(req.Parameters, declared)
	if len(dropped) > 0 {
		p.logger.Debug("dropping parameters the template does not declare",
			zap.String("component", req.Component.Name),
			zap.Strings("parameters", dropped))
	}
	return params
}
