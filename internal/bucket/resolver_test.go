/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package bucket

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/orien/stackpreview/internal/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestResolver_Name(t *testing.T) {
	r := NewResolver(nil, "Milaliso-PR", "", zap.NewNop())
	assert.Equal(t, "milaliso-pr-artifacts-eu-west-1", r.Name("eu-west-1"))

	r = NewResolver(nil, "milaliso-pr", "shared-artifacts", zap.NewNop())
	assert.Equal(t, "shared-artifacts", r.Name("eu-west-1"))
}

func TestEnsureBucket_ExistingBucketIsReady(t *testing.T) {
	ctx := context.Background()
	s3 := &aws.MockS3Operations{}
	s3.On("BucketExists", ctx, "preview-artifacts-us-east-1").Return(true, nil)

	outcome := NewResolver(s3, "preview", "", zap.NewNop()).EnsureBucket(ctx, "us-east-1")

	assert.True(t, outcome.IsReady())
	assert.Equal(t, "preview-artifacts-us-east-1", outcome.Bucket)
	s3.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureBucket_CreatesMissingBucketInRegion(t *testing.T) {
	for _, region := range []string{"us-east-1", "eu-west-1"} {
		t.Run(region, func(t *testing.T) {
			ctx := context.Background()
			name := "preview-artifacts-" + region
			s3 := &aws.MockS3Operations{}
			s3.On("BucketExists", ctx, name).Return(false, nil)
			s3.On("CreateBucket", ctx, name, region).Return(nil)

			outcome := NewResolver(s3, "preview", "", zap.NewNop()).EnsureBucket(ctx, region)

			assert.Equal(t, ReadyOutcome(name), outcome)
			s3.AssertExpectations(t)
		})
	}
}

func TestEnsureBucket_CreateDeniedFallsBack(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	s3 := &aws.MockS3Operations{}
	s3.On("BucketExists", ctx, "preview-artifacts-eu-west-1").Return(false, nil)
	s3.On("CreateBucket", ctx, "preview-artifacts-eu-west-1", "eu-west-1").
		Return(fmt.Errorf("failed to create bucket: %w", aws.ErrPermissionDenied))

	outcome := NewResolver(s3, "preview", "", zap.New(core)).EnsureBucket(ctx, "eu-west-1")

	assert.False(t, outcome.IsReady())
	assert.Equal(t, UseAutoResolve, outcome.Kind)
	assert.Empty(t, outcome.Bucket)
	assert.Contains(t, outcome.Reason, "permission denied")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "preview-artifacts-eu-west-1", entry.ContextMap()["bucket"])
}

func TestEnsureBucket_ProbeFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	s3 := &aws.MockS3Operations{}
	s3.On("BucketExists", ctx, "preview-artifacts-eu-west-1").Return(false, errors.New("connection reset"))

	outcome := NewResolver(s3, "preview", "", zap.NewNop()).EnsureBucket(ctx, "eu-west-1")

	assert.Equal(t, UseAutoResolve, outcome.Kind)
	assert.Contains(t, outcome.Reason, "connection reset")
	s3.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureBucket_OverlongNameFallsBackWithoutCalls(t *testing.T) {
	s3 := &aws.MockS3Operations{}

	outcome := NewResolver(s3, strings.Repeat("p", 60), "", zap.NewNop()).EnsureBucket(context.Background(), "us-east-1")

	assert.Equal(t, UseAutoResolve, outcome.Kind)
	assert.Contains(t, outcome.Reason, "exceeds 63 characters")
	s3.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "auto-resolve", UseAutoResolve.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
