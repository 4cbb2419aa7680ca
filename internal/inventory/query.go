/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/orien/stackpreview/internal/aws"
	"github.com/orien/stackpreview/internal/model"
	"github.com/orien/stackpreview/internal/naming"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Query enumerates the stacks belonging to preview environments
type Query interface {
	// List returns matching stacks with their outputs. An empty identifier lists every
	// preview stack under the prefix.
	List(ctx context.Context, identifier string) ([]model.StackInventoryEntry, error)

	// Match returns matching stacks without fetching outputs
	Match(ctx context.Context, identifier string) ([]model.StackInventoryEntry, error)
}

// StackQuery implements Query with CloudFormation
type StackQuery struct {
	cfn    aws.CloudFormationOperations
	naming *naming.Resolver
	logger *zap.Logger
}

// NewStackQuery creates a query over the stacks visible to cfn
func NewStackQuery(cfn aws.CloudFormationOperations, resolver *naming.Resolver, logger *zap.Logger) *StackQuery {
	return &StackQuery{
		cfn:    cfn,
		naming: resolver,
		logger: logger,
	}
}

// lookups bounds concurrent DescribeStacks calls
const lookups = 4

// List returns matching stacks sorted by name, with outputs for stacks that completed
// a create or update. A failed output lookup is recorded on its entry.
func (q *StackQuery) List(ctx context.Context, identifier string) ([]model.StackInventoryEntry, error) {
	entries, described, err := q.match(ctx, identifier)
	if err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.SetLimit(lookups)

	for i := range entries {
		if !hasOutputs(entries[i].Status) {
			continue
		}

		entry := &entries[i]
		if stack, ok := described[entry.StackName]; ok {
			entry.Outputs = stack.Outputs
			continue
		}

		g.Go(func() error {
			stack, err := q.cfn.GetStack(ctx, entry.StackName)
			if err != nil {
				q.logger.Warn("failed to fetch stack outputs",
					zap.String("stack", entry.StackName),
					zap.Error(err))
				entry.OutputsError = err
				return nil
			}
			entry.Outputs = stack.Outputs
			return nil
		})
	}

	// lookups record their own failures
	_ = g.Wait()

	return entries, nil
}

// Match returns matching stacks sorted by name
func (q *StackQuery) Match(ctx context.Context, identifier string) ([]model.StackInventoryEntry, error) {
	entries, _, err := q.match(ctx, identifier)
	return entries, err
}

// match filters listed stacks by name pattern. For a single identifier every candidate is
// described and kept only when its identifier tag is absent or equal to the identifier;
// the described stacks are returned keyed by name.
func (q *StackQuery) match(ctx context.Context, identifier string) ([]model.StackInventoryEntry, map[string]*aws.Stack, error) {
	if identifier != "" {
		if _, err := q.naming.Base(identifier); err != nil {
			return nil, nil, err
		}
	}

	pattern := q.naming.Pattern(identifier)

	stacks, err := q.cfn.ListStacks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list stacks: %w", err)
	}

	var candidates []*aws.Stack
	for _, stack := range stacks {
		if !strings.HasPrefix(stack.Name, pattern) {
			continue
		}
		if stack.Status == aws.StackStatusDeleteComplete {
			continue
		}
		candidates = append(candidates, stack)
	}

	described := map[string]*aws.Stack{}
	if identifier != "" {
		candidates, described, err = q.confirmOwnership(ctx, identifier, candidates)
		if err != nil {
			return nil, nil, err
		}
	}

	entries := make([]model.StackInventoryEntry, 0, len(candidates))
	for _, stack := range candidates {
		entries = append(entries, model.StackInventoryEntry{
			StackName:    stack.Name,
			Status:       string(stack.Status),
			CreationTime: dereferenceTime(stack.CreatedTime),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StackName < entries[j].StackName
	})

	q.logger.Debug("matched preview stacks",
		zap.String("pattern", pattern),
		zap.Int("stacks", len(entries)))

	return entries, described, nil
}

// confirmOwnership drops candidates tagged with another identifier. A stack that can not be
// described is an error rather than a guess; a stack deleted meanwhile is dropped.
func (q *StackQuery) confirmOwnership(ctx context.Context, identifier string, candidates []*aws.Stack) ([]*aws.Stack, map[string]*aws.Stack, error) {
	details := make([]*aws.Stack, len(candidates))

	var g errgroup.Group
	g.SetLimit(lookups)
	for i, candidate := range candidates {
		g.Go(func() error {
			stack, err := q.cfn.GetStack(ctx, candidate.Name)
			if errors.Is(err, aws.ErrStackNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to confirm owner of stack %s: %w", candidate.Name, err)
			}
			details[i] = stack
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	owned := make([]*aws.Stack, 0, len(candidates))
	described := make(map[string]*aws.Stack, len(candidates))
	for i, candidate := range candidates {
		stack := details[i]
		if stack == nil {
			continue
		}
		if owner, ok := stack.Tags[model.TagIdentifier]; ok && owner != identifier {
			q.logger.Debug("skipping stack owned by another identifier",
				zap.String("stack", candidate.Name),
				zap.String("owner", owner))
			continue
		}
		owned = append(owned, candidate)
		described[candidate.Name] = stack
	}

	return owned, described, nil
}

// hasOutputs reports whether a stack in this status has outputs worth fetching
func hasOutputs(status string) bool {
	switch aws.StackStatus(status) {
	case aws.StackStatusCreateComplete, aws.StackStatusUpdateComplete:
		return true
	default:
		return false
	}
}

// dereferenceTime safely dereferences a time pointer
func dereferenceTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
