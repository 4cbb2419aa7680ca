/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package bucket ensures the S3 bucket that stages deployment artifacts exists.
// Any failure degrades to letting the packager resolve its own bucket.
package bucket

import (
	"context"
	"fmt"
	"strings"

	"github.com/orien/stackpreview/internal/aws"
	"go.uber.org/zap"
)

// maxBucketNameLength is the S3 limit on bucket names
const maxBucketNameLength = 63

// Kind distinguishes the two outcomes of EnsureBucket
type Kind int

const (
	// Ready means the named bucket exists and can be used
	Ready Kind = iota
	// UseAutoResolve means the packager should pick its own bucket
	UseAutoResolve
)

func (k Kind) String() string {
	switch k {
	case Ready:
		return "ready"
	case UseAutoResolve:
		return "auto-resolve"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of EnsureBucket
type Outcome struct {
	Kind   Kind
	Bucket string
	Reason string
}

// ReadyOutcome reports a usable bucket
func ReadyOutcome(bucket string) Outcome {
	return Outcome{Kind: Ready, Bucket: bucket}
}

// AutoResolveOutcome reports that no bucket could be prepared
func AutoResolveOutcome(reason string) Outcome {
	return Outcome{Kind: UseAutoResolve, Reason: reason}
}

// IsReady reports whether the outcome carries a bucket name
func (o Outcome) IsReady() bool {
	return o.Kind == Ready
}

// Resolver prepares the artifact bucket
type Resolver interface {
	EnsureBucket(ctx context.Context, region string) Outcome
}

// DefaultResolver probes and creates the bucket through S3
type DefaultResolver struct {
	s3         aws.S3Operations
	prefix     string
	configured string
	logger     *zap.Logger
}

// NewResolver creates a resolver. configured, when set, replaces the derived bucket name.
func NewResolver(s3 aws.S3Operations, prefix, configured string, logger *zap.Logger) *DefaultResolver {
	return &DefaultResolver{
		s3:         s3,
		prefix:     prefix,
		configured: configured,
		logger:     logger,
	}
}

// Name returns the bucket name used in the given region
func (r *DefaultResolver) Name(region string) string {
	if r.configured != "" {
		return r.configured
	}
	return strings.ToLower(fmt.Sprintf("%s-artifacts-%s", r.prefix, region))
}

// EnsureBucket makes sure the bucket exists, creating it when absent. It never fails:
// anything that prevents using the bucket yields UseAutoResolve.
func (r *DefaultResolver) EnsureBucket(ctx context.Context, region string) Outcome {
	name := r.Name(region)
	log := r.logger.With(zap.String("bucket", name), zap.String("region", region))

	if len(name) > maxBucketNameLength {
		return r.fallback(log, fmt.Sprintf("bucket name %s exceeds %d characters", name, maxBucketNameLength))
	}

	exists, err := r.s3.BucketExists(ctx, name)
	if err != nil {
		return r.fallback(log, fmt.Sprintf("failed to probe bucket: %v", err))
	}
	if exists {
		log.Debug("artifact bucket exists")
		return ReadyOutcome(name)
	}

	log.Info("creating artifact bucket")
	if err := r.s3.CreateBucket(ctx, name, region); err != nil {
		return r.fallback(log, fmt.Sprintf("failed to create bucket: %v", err))
	}

	return ReadyOutcome(name)
}

func (r *DefaultResolver) fallback(log *zap.Logger, reason string) Outcome {
	log.Warn("artifact bucket unavailable, falling back to auto-resolved bucket", zap.String("reason", reason))
	return AutoResolveOutcome(reason)
}
