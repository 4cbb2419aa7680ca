/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/orien/stackpreview/internal/bucket"
	"github.com/orien/stackpreview/internal/config"
	"github.com/orien/stackpreview/internal/model"
	"github.com/orien/stackpreview/internal/naming"
	"github.com/orien/stackpreview/internal/packager"
	"github.com/orien/stackpreview/internal/resolve"
	"go.uber.org/zap"
)

// Tags applied to every preview stack in addition to configured tags
const (
	TagIdentifier = model.TagIdentifier
	TagComponent  = model.TagComponent
)

// Deployer defines the interface for deploying a preview environment
type Deployer interface {
	Deploy(ctx context.Context, identifier string) (*model.DeploymentResult, error)
}

// PreviewDeployer deploys every component of a preview environment in sequence
type PreviewDeployer struct {
	cfg        *config.Config
	naming     *naming.Resolver
	components resolve.ComponentResolver
	packager   packager.Packager
	bucket     bucket.Resolver
	logger     *zap.Logger
}

// NewPreviewDeployer creates a deployer
func NewPreviewDeployer(cfg *config.Config, components resolve.ComponentResolver, pkg packager.Packager,
	buckets bucket.Resolver, logger *zap.Logger) *PreviewDeployer {
	return &PreviewDeployer{
		cfg:        cfg,
		naming:     naming.NewResolver(cfg.Prefix, cfg.Environment),
		components: components,
		packager:   pkg,
		bucket:     buckets,
		logger:     logger,
	}
}

// plannedComponent pairs a deployable component with its stack name
type plannedComponent struct {
	component *model.Component
	stackName string
}

// Deploy builds and deploys every component for the identifier. A failing component does
// not stop its siblings. Name problems abort the batch before any build or AWS call.
// The returned error is non-nil whenever the result did not fully succeed.
func (d *PreviewDeployer) Deploy(ctx context.Context, identifier string) (*model.DeploymentResult, error) {
	if _, err := d.naming.Base(identifier); err != nil {
		return nil, err
	}

	storagePrefix, err := d.naming.StoragePrefix(identifier)
	if err != nil {
		return nil, err
	}

	components, err := d.components.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover components: %w", err)
	}

	result := model.NewDeploymentResult(identifier)
	plan := make([]plannedComponent, 0, len(components))

	for _, component := range components {
		if !component.HasTemplate {
			continue
		}
		stackName, err := d.naming.StackName(identifier, component.Name)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", component.Name, err)
		}
		plan = append(plan, plannedComponent{component: component, stackName: stackName})
	}

	log := d.logger.With(zap.String("identifier", identifier))
	log.Info("deploying preview environment",
		zap.Int("components", len(components)),
		zap.Int("deployable", len(plan)),
		zap.String("packager", d.packager.Name()))

	var artifactBucket *bucket.Outcome
	next := 0
	for _, component := range components {
		if !component.HasTemplate {
			log.Info("skipping component without template", zap.String("component", component.Name))
			result.Record(model.ComponentResult{
				Component: component.Name,
				Status:    model.ComponentSkipped,
			})
			continue
		}

		planned := plan[next]
		next++

		if err := ctx.Err(); err != nil {
			return result, err
		}

		if artifactBucket == nil {
			outcome := d.bucket.EnsureBucket(ctx, d.cfg.Region)
			artifactBucket = &outcome
		}

		result.Record(d.deployComponent(ctx, log, identifier, storagePrefix, planned, *artifactBucket))
	}

	if err := result.Err(); err != nil {
		return result, err
	}

	log.Info("preview environment deployed", zap.Int("components", len(result.Deployed())))
	return result, nil
}

// deployComponent builds and deploys one component and reports its outcome
func (d *PreviewDeployer) deployComponent(ctx context.Context, log *zap.Logger, identifier, storagePrefix string,
	planned plannedComponent, artifactBucket bucket.Outcome) model.ComponentResult {
	component := planned.component
	log = log.With(zap.String("component", component.Name), zap.String("stack", planned.stackName))

	outcome := model.ComponentResult{
		Component:   component.Name,
		StackName:   planned.stackName,
		AutoResolve: !artifactBucket.IsReady(),
	}

	artifact, err := d.packager.Build(ctx, packager.BuildRequest{
		Identifier:  identifier,
		Environment: d.cfg.Environment,
		StackName:   planned.stackName,
		Component:   component,
	})
	if err != nil {
		log.Error("component build failed", zap.Error(err))
		outcome.Status = model.ComponentFailed
		outcome.Err = fmt.Errorf("%w: %w", model.ErrBuildFailure, err)
		return outcome
	}

	out, err := d.packager.Deploy(ctx, packager.DeployRequest{
		StackName:     planned.stackName,
		Region:        d.cfg.Region,
		Component:     component,
		Artifact:      artifact,
		Parameters:    d.parameters(identifier, component),
		Tags:          d.tags(identifier, component),
		Capabilities:  component.Capabilities,
		Bucket:        artifactBucket,
		StoragePrefix: storagePrefix,
	})
	if err != nil {
		log.Error("component deploy failed", zap.Error(err))
		outcome.Status = model.ComponentFailed
		outcome.Err = fmt.Errorf("%w: %w", model.ErrDeployFailure, err)
		return outcome
	}

	outcome.Status = model.ComponentSucceeded
	outcome.NoChanges = out.NoChanges
	if out.NoChanges {
		log.Info("component already up to date")
	} else {
		log.Info("component deployed")
	}
	return outcome
}

// parameters returns the component parameters with the scope parameter bound to the identifier
func (d *PreviewDeployer) parameters(identifier string, component *model.Component) map[string]string {
	params := make(map[string]string, len(component.Parameters)+1)
	for k, v := range component.Parameters {
		params[k] = v
	}
	params[d.cfg.ScopeParameter] = d.naming.ScopeValue(identifier)
	return params
}

func (d *PreviewDeployer) tags(identifier string, component *model.Component) map[string]string {
	tags := make(map[string]string, len(component.Tags)+2)
	for k, v := range component.Tags {
		tags[k] = v
	}
	tags[TagIdentifier] = identifier
	tags[TagComponent] = component.Name
	return tags
}

// isPermanent reports errors that a retry cannot fix
func isPermanent(err error) bool {
	return errors.Is(err, model.ErrNameTooLong) ||
		errors.Is(err, model.ErrInvalidIdentifier) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
