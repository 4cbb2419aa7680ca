/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package naming derives CloudFormation stack names for preview environments.
//
// A stack name is prefix-identifier-environment-component. The first three parts form the
// base name, which scopes every stack and artifact belonging to one identifier.
package naming

import (
	"fmt"

	"github.com/orien/stackpreview/internal/model"
)

const (
	// MaxStackNameLength is the CloudFormation ceiling for stack names
	MaxStackNameLength = 128

	// MaxBaseLength leaves room for component suffixes
	MaxBaseLength = 100

	separator = "-"
)

// Resolver maps identifiers and components to stack names
type Resolver struct {
	Prefix      string
	Environment string
}

// NewResolver creates a resolver for the given prefix and environment
func NewResolver(prefix, environment string) *Resolver {
	return &Resolver{
		Prefix:      prefix,
		Environment: environment,
	}
}

// Base returns prefix-identifier-environment
func (r *Resolver) Base(identifier string) (string, error) {
	if err := validateToken("identifier", identifier); err != nil {
		return "", err
	}

	base := r.Prefix + separator + identifier + separator + r.Environment
	if len(base) > MaxBaseLength {
		return "", fmt.Errorf("%w: base name %q is %d characters, limit is %d", model.ErrNameTooLong, base, len(base), MaxBaseLength)
	}

	return base, nil
}

// StackName returns the full stack name for a component
func (r *Resolver) StackName(identifier, component string) (string, error) {
	base, err := r.Base(identifier)
	if err != nil {
		return "", err
	}

	if err := validateToken("component", component); err != nil {
		return "", err
	}

	name := base + separator + component
	if len(name) > MaxStackNameLength {
		return "", fmt.Errorf("%w: stack name %q is %d characters, limit is %d", model.ErrNameTooLong, name, len(name), MaxStackNameLength)
	}

	return name, nil
}

// Pattern returns the stack name prefix shared by every stack of the identifier in this
// environment, the base name plus a separator. An empty identifier yields the global prefix
// shared by all preview stacks.
//
// Identifiers may contain hyphens, so the pattern of "42" in "dev" is also a prefix of the
// stacks of identifier "42-dev" in environment "dev". Callers that act on the match must
// confirm ownership with the identifier tag.
func (r *Resolver) Pattern(identifier string) string {
	if identifier == "" {
		return r.Prefix + separator
	}
	return r.Prefix + separator + identifier + separator + r.Environment + separator
}

// StoragePrefix returns the artifact key prefix for the identifier
func (r *Resolver) StoragePrefix(identifier string) (string, error) {
	return r.Base(identifier)
}

// ScopeValue returns the value bound to the scoping stack parameter
func (r *Resolver) ScopeValue(identifier string) string {
	return "pr-" + identifier
}

// validateToken enforces the CloudFormation stack name alphabet
func validateToken(kind, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s cannot be empty", model.ErrInvalidIdentifier, kind)
	}

	for _, c := range value {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return fmt.Errorf("%w: %s %q contains %q; only letters, digits and hyphens are allowed", model.ErrInvalidIdentifier, kind, value, c)
		}
	}

	return nil
}
