/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/orien/stackpreview/internal/config"
	"github.com/orien/stackpreview/internal/model"
)

// ComponentResolver discovers the components to deploy
type ComponentResolver interface {
	Resolve(ctx context.Context) ([]*model.Component, error)
}

// DefaultComponentResolver discovers components as subdirectories of the components
// directory and applies their configured overrides
type DefaultComponentResolver struct {
	cfg                *config.Config
	fileSystemResolver FileSystemResolver
}

// NewComponentResolver creates a resolver reading from the local file system
func NewComponentResolver(cfg *config.Config) *DefaultComponentResolver {
	return &DefaultComponentResolver{
		cfg:                cfg,
		fileSystemResolver: &DefaultFileSystemResolver{},
	}
}

// SetFileSystemResolver allows injecting a custom file system resolver (for testing)
func (r *DefaultComponentResolver) SetFileSystemResolver(fileSystemResolver FileSystemResolver) {
	r.fileSystemResolver = fileSystemResolver
}

// Resolve returns every component in directory order. Components without a template
// descriptor are returned with HasTemplate unset so callers can report them as skipped.
func (r *DefaultComponentResolver) Resolve(ctx context.Context) ([]*model.Component, error) {
	names, err := r.fileSystemResolver.ListDirectories(r.cfg.ComponentsDir)
	if err != nil {
		return nil, err
	}

	components := make([]*model.Component, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := filepath.Join(r.cfg.ComponentsDir, name)
		templatePath := filepath.Join(dir, r.cfg.TemplateFile)

		hasTemplate, err := r.fileSystemResolver.FileExists(templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect component %s: %w", name, err)
		}

		settings := r.cfg.ComponentSettings(name)
		components = append(components, &model.Component{
			Name:         name,
			Dir:          dir,
			TemplatePath: templatePath,
			HasTemplate:  hasTemplate,
			Parameters:   settings.Parameters,
			Tags:         settings.Tags,
			Capabilities: settings.Capabilities,
		})
	}

	return components, nil
}
