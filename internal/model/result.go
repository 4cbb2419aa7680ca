/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ComponentStatus is the outcome of deploying a single component
type ComponentStatus string

const (
	ComponentSucceeded ComponentStatus = "SUCCEEDED"
	ComponentFailed    ComponentStatus = "FAILED"
	ComponentSkipped   ComponentStatus = "SKIPPED"
)

// ComponentResult records what happened to one component within a deployment batch
type ComponentResult struct {
	Component   string
	StackName   string
	Status      ComponentStatus
	NoChanges   bool
	AutoResolve bool
	Err         error
}

// DeploymentResult accumulates per-component outcomes for one identifier
type DeploymentResult struct {
	Identifier string
	Components []ComponentResult
}

// NewDeploymentResult creates an empty result for the identifier
func NewDeploymentResult(identifier string) *DeploymentResult {
	return &DeploymentResult{Identifier: identifier}
}

// Record appends a component outcome
func (r *DeploymentResult) Record(result ComponentResult) {
	r.Components = append(r.Components, result)
}

// Succeeded reports whether every attempted component succeeded
func (r *DeploymentResult) Succeeded() bool {
	return len(r.FailedComponents()) == 0
}

// FailedComponents returns the names of failed components in deployment order
func (r *DeploymentResult) FailedComponents() []string {
	var failed []string
	for _, c := range r.Components {
		if c.Status == ComponentFailed {
			failed = append(failed, c.Component)
		}
	}
	return failed
}

// Deployed returns the results of components that were deployed successfully
func (r *DeploymentResult) Deployed() []ComponentResult {
	var deployed []ComponentResult
	for _, c := range r.Components {
		if c.Status == ComponentSucceeded {
			deployed = append(deployed, c)
		}
	}
	return deployed
}

// Err returns nil on success, otherwise an error naming every failed component
func (r *DeploymentResult) Err() error {
	failed := r.FailedComponents()
	if len(failed) == 0 {
		return nil
	}

	errs := make([]error, 0, len(failed))
	for _, c := range r.Components {
		if c.Status == ComponentFailed {
			errs = append(errs, fmt.Errorf("component %s: %w", c.Component, c.Err))
		}
	}

	return fmt.Errorf("deployment of %s failed for %d component(s) [%s]: %w",
		r.Identifier, len(failed), strings.Join(failed, ", "), errors.Join(errs...))
}

// DeletionStatus is the outcome of deleting a single stack
type DeletionStatus string

const (
	StackDeleted      DeletionStatus = "DELETED"
	StackDeleteFailed DeletionStatus = "DELETE_FAILED"
	StackTimedOut     DeletionStatus = "TIMED_OUT"
)

// StackDeletion records what happened to one stack during cleanup
type StackDeletion struct {
	StackName string
	Status    DeletionStatus
	Err       error
}

// CleanupResult accumulates per-stack outcomes for one identifier
type CleanupResult struct {
	Identifier string
	// NoMatch is true when no stacks existed for the identifier
	NoMatch    bool
	Stacks     []StackDeletion
}

// Record appends a stack deletion outcome
func (r *CleanupResult) Record(deletion StackDeletion) {
	r.Stacks = append(r.Stacks, deletion)
}

// Succeeded reports whether every matched stack was deleted
func (r *CleanupResult) Succeeded() bool {
	for _, s := range r.Stacks {
		if s.Status != StackDeleted {
			return false
		}
	}
	return true
}

// Err returns nil on success, otherwise an error naming every stack that was not deleted
func (r *CleanupResult) Err() error {
	var errs []error
	for _, s := range r.Stacks {
		if s.Status != StackDeleted {
			errs = append(errs, fmt.Errorf("stack %s: %w", s.StackName, s.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("cleanup of %s failed for %d stack(s): %w", r.Identifier, len(errs), errors.Join(errs...))
}

// ValidationResult contains the outcome of validating one component
type ValidationResult struct {
	Component string
	StackName string
	Valid     bool
	Skipped   bool
	Err       error
}

// ValidationReport accumulates component validation outcomes for one identifier
type ValidationReport struct {
	Identifier string
	Results    []ValidationResult
}

// Record appends a component validation outcome
func (r *ValidationReport) Record(result ValidationResult) {
	r.Results = append(r.Results, result)
}

// Err returns nil when every validated component is valid
func (r *ValidationReport) Err() error {
	var errs []error
	for _, v := range r.Results {
		if !v.Valid && !v.Skipped {
			errs = append(errs, fmt.Errorf("component %s: %w", v.Component, v.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation of %s failed for %d component(s): %w", r.Identifier, len(errs), errors.Join(errs...))
}
