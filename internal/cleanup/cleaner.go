/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/orien/stackpreview/internal/aws"
	"github.com/orien/stackpreview/internal/inventory"
	"github.com/orien/stackpreview/internal/model"
	"github.com/orien/stackpreview/internal/naming"
	"go.uber.org/zap"
)

// Cleaner defines the interface for tearing down a preview environment
type Cleaner interface {
	Cleanup(ctx context.Context, identifier string) (*model.CleanupResult, error)
}

// StackCleaner deletes every stack of a preview environment
type StackCleaner struct {
	cfn    aws.CloudFormationOperations
	query  inventory.Query
	naming *naming.Resolver
	wait   aws.WaitOptions
	logger *zap.Logger
}

// NewStackCleaner creates a cleaner that waits up to wait.Timeout for each deletion
func NewStackCleaner(cfn aws.CloudFormationOperations, query inventory.Query, resolver *naming.Resolver,
	wait aws.WaitOptions, logger *zap.Logger) *StackCleaner {
	return &StackCleaner{
		cfn:    cfn,
		query:  query,
		naming: resolver,
		wait:   wait,
		logger: logger,
	}
}

// Cleanup deletes the identifier's stacks newest first, waiting for each deletion before
// starting the next. Failures are recorded and the remaining stacks are still attempted.
// Finding no stacks is a success with NoMatch set.
func (c *StackCleaner) Cleanup(ctx context.Context, identifier string) (*model.CleanupResult, error) {
	if _, err := c.naming.Base(identifier); err != nil {
		return nil, err
	}

	entries, err := c.query.Match(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to find stacks for %s: %w", identifier, err)
	}

	result := &model.CleanupResult{Identifier: identifier}
	log := c.logger.With(zap.String("identifier", identifier))

	if len(entries) == 0 {
		log.Info("no stacks found")
		result.NoMatch = true
		return result, nil
	}

	// Reverse creation order; stacks created later may import from earlier ones
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreationTime.Equal(entries[j].CreationTime) {
			return entries[i].StackName > entries[j].StackName
		}
		return entries[i].CreationTime.After(entries[j].CreationTime)
	})

	log.Info("deleting preview stacks", zap.Int("stacks", len(entries)))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Record(c.deleteStack(ctx, log, entry.StackName))
	}

	return result, result.Err()
}

// deleteStack deletes one stack and waits for the deletion to settle
func (c *StackCleaner) deleteStack(ctx context.Context, log *zap.Logger, stackName string) model.StackDeletion {
	log = log.With(zap.String("stack", stackName))
	log.Info("deleting stack")

	if err := c.cfn.DeleteStack(ctx, aws.DeleteStackInput{StackName: stackName}); err != nil {
		log.Error("delete request failed", zap.Error(err))
		return model.StackDeletion{
			StackName: stackName,
			Status:    model.StackDeleteFailed,
			Err:       fmt.Errorf("%w: %w", model.ErrDeleteFailure, err),
		}
	}

	err := c.cfn.WaitForStackDelete(ctx, stackName, c.wait)
	switch {
	case err == nil:
		log.Info("stack deleted")
		return model.StackDeletion{StackName: stackName, Status: model.StackDeleted}
	case errors.Is(err, aws.ErrWaitTimeout):
		log.Warn("stack deletion timed out", zap.Duration("timeout", c.wait.Timeout))
		return model.StackDeletion{
			StackName: stackName,
			Status:    model.StackTimedOut,
			Err:       fmt.Errorf("%w: %w", model.ErrTimedOut, err),
		}
	default:
		log.Error("stack deletion failed", zap.Error(err))
		return model.StackDeletion{
			StackName: stackName,
			Status:    model.StackDeleteFailed,
			Err:       fmt.Errorf("%w: %w", model.ErrDeleteFailure, err),
		}
	}
}
