/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"time"

	"github.com/orien/stackpreview/internal/model"
	"go.uber.org/zap"
)

// RetryPolicy controls how often a failed batch is re-run
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy returns two attempts thirty seconds apart
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 2, Delay: 30 * time.Second}
}

// Retry re-runs the whole batch after a fixed delay while it fails. Every attempt
// re-deploys all components; components that already succeeded report no changes.
func Retry(ctx context.Context, policy RetryPolicy, deployer Deployer, identifier string, logger *zap.Logger) (*model.DeploymentResult, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var (
		result *model.DeploymentResult
		err    error
	)

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err = deployer.Deploy(ctx, identifier)
		if err == nil || isPermanent(err) || attempt == attempts {
			return result, err
		}

		logger.Warn("deployment attempt failed, retrying",
			zap.String("identifier", identifier),
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Duration("delay", policy.Delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(policy.Delay):
		}
	}

	return result, err
}
