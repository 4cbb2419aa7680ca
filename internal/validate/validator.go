/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"context"
	"fmt"

	"github.com/orien/stackpreview/internal/aws"
	"github.com/orien/stackpreview/internal/config"
	"github.com/orien/stackpreview/internal/model"
	"github.com/orien/stackpreview/internal/naming"
	"github.com/orien/stackpreview/internal/resolve"
	"go.uber.org/zap"
)

// Validator checks that an identifier can be deployed without touching any stack
type Validator interface {
	Validate(ctx context.Context, identifier string) (*model.ValidationReport, error)
}

// TemplateValidator checks stack names locally and templates with CloudFormation
type TemplateValidator struct {
	environment string
	render      bool
	naming      *naming.Resolver
	components  resolve.ComponentResolver
	fs          resolve.FileSystemResolver
	processor   resolve.TemplateProcessor
	cfn         aws.CloudFormationOperations
	logger      *zap.Logger
}

// NewTemplateValidator creates a new validator. Templates are rendered first when the
// native CloudFormation packager is configured, as that packager does at build time.
func NewTemplateValidator(cfg *config.Config, components resolve.ComponentResolver, cfn aws.CloudFormationOperations, logger *zap.Logger) *TemplateValidator {
	return &TemplateValidator{
		environment: cfg.Environment,
		render:      cfg.Packager == config.PackagerCloudFormation,
		naming:      naming.NewResolver(cfg.Prefix, cfg.Environment),
		components:  components,
		fs:          &resolve.DefaultFileSystemResolver{},
		processor:   resolve.NewCfnTemplateProcessor(),
		cfn:         cfn,
		logger:      logger,
	}
}

// SetFileSystemResolver allows injection of a custom file system resolver for testing
func (v *TemplateValidator) SetFileSystemResolver(fs resolve.FileSystemResolver) {
	v.fs = fs
}

// Validate checks every component of the identifier. Components whose names are invalid
// are reported without a template check; other failures do not stop the remaining checks.
func (v *TemplateValidator) Validate(ctx context.Context, identifier string) (*model.ValidationReport, error) {
	if _, err := v.naming.Base(identifier); err != nil {
		return nil, err
	}

	components, err := v.components.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve components: %w", err)
	}

	report := &model.ValidationReport{Identifier: identifier}
	for _, component := range components {
		if !component.HasTemplate {
			v.logger.Debug("skipping component without template", zap.String("component", component.Name))
			report.Record(model.ValidationResult{Component: component.Name, Skipped: true})
			continue
		}

		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Record(v.validateComponent(ctx, identifier, component))
	}

	return report, report.Err()
}

func (v *TemplateValidator) validateComponent(ctx context.Context, identifier string, component *model.Component) model.ValidationResult {
	result := model.ValidationResult{Component: component.Name}

	stackName, err := v.naming.StackName(identifier, component.Name)
	if err != nil {
		result.Err = err
		return result
	}
	result.StackName = stackName

	body, err := v.fs.ReadTemplate(component.TemplatePath)
	if err != nil {
		result.Err = err
		return result
	}

	if v.render {
		variables := resolve.TemplateVariables(identifier, v.environment, component.Name, stackName, component.Parameters)
		body, err = v.processor.Process(body, variables)
		if err != nil {
			result.Err = fmt.Errorf("failed to render template: %w", err)
			return result
		}
	}

	v.logger.Debug("validating template", zap.String("component", component.Name), zap.String("stack", stackName))
	if err := v.cfn.ValidateTemplate(ctx, body); err != nil {
		result.Err = fmt.Errorf("template validation failed: %w", err)
		return result
	}

	result.Valid = true
	return result
}
