/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/orien/stackpreview/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func failedResult() (*model.DeploymentResult, error) {
	result := model.NewDeploymentResult("42")
	result.Record(model.ComponentResult{
		Component: "api",
		Status:    model.ComponentFailed,
		Err:       fmt.Errorf("%w: throttled", model.ErrDeployFailure),
	})
	return result, result.Err()
}

func succeededResult() *model.DeploymentResult {
	result := model.NewDeploymentResult("42")
	result.Record(model.ComponentResult{Component: "api", Status: model.ComponentSucceeded})
	return result
}

func TestDefaultRetryPolicy(t *testing.T) {
	assert.Equal(t, RetryPolicy{Attempts: 2, Delay: 30 * time.Second}, DefaultRetryPolicy())
}

func TestRetry_SecondAttemptSucceeds(t *testing.T) {
	ctx := context.Background()
	deployer := &MockDeployer{}
	failed, failedErr := failedResult()
	deployer.On("Deploy", ctx, "42").Return(failed, failedErr).Once()
	deployer.On("Deploy", ctx, "42").Return(succeededResult(), nil).Once()

	result, err := Retry(ctx, RetryPolicy{Attempts: 2, Delay: time.Millisecond}, deployer, "42", zap.NewNop())

	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	deployer.AssertNumberOfCalls(t, "Deploy", 2)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	ctx := context.Background()
	deployer := &MockDeployer{}
	failed, failedErr := failedResult()
	deployer.On("Deploy", ctx, "42").Return(failed, failedErr)

	result, err := Retry(ctx, RetryPolicy{Attempts: 3, Delay: time.Millisecond}, deployer, "42", zap.NewNop())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDeployFailure)
	assert.Equal(t, []string{"api"}, result.FailedComponents())
	deployer.AssertNumberOfCalls(t, "Deploy", 3)
}

func TestRetry_NameTooLongIsNotRetried(t *testing.T) {
	ctx := context.Background()
	deployer := &MockDeployer{}
	deployer.On("Deploy", ctx, "42").Return(nil, fmt.Errorf("base name: %w", model.ErrNameTooLong))

	_, err := Retry(ctx, RetryPolicy{Attempts: 2, Delay: time.Hour}, deployer, "42", zap.NewNop())

	assert.ErrorIs(t, err, model.ErrNameTooLong)
	deployer.AssertNumberOfCalls(t, "Deploy", 1)
}

func TestRetry_SingleAttempt(t *testing.T) {
	ctx := context.Background()
	deployer := &MockDeployer{}
	deployer.On("Deploy", ctx, "42").Return(nil, errors.New("boom"))

	_, err := Retry(ctx, RetryPolicy{Attempts: 0, Delay: time.Hour}, deployer, "42", zap.NewNop())

	assert.EqualError(t, err, "boom")
	deployer.AssertNumberOfCalls(t, "Deploy", 1)
}

func TestRetry_CancelDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	deployer := &MockDeployer{}
	failed, failedErr := failedResult()
	deployer.On("Deploy", ctx, "42").Return(failed, failedErr)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result, err := Retry(ctx, RetryPolicy{Attempts: 2, Delay: time.Hour}, deployer, "42", zap.NewNop())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, failed, result)
	deployer.AssertNumberOfCalls(t, "Deploy", 1)
}
