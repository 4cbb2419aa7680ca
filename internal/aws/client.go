/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/orien/stackpreview/internal/version"
)

// DefaultClient provides a high-level interface for AWS operations
type DefaultClient struct {
	config aws.Config
	cfn    *cloudformation.Client
	s3     *s3.Client
	sts    *sts.Client
}

// Config holds configuration for creating an AWS client
type Config struct {
	Region  string
	Profile string
}

// NewDefaultClient creates a new AWS client with the specified configuration
func NewDefaultClient(ctx context.Context, cfg Config) (*DefaultClient, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithAppID(version.AppID()),
	}

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &DefaultClient{
		config: awsCfg,
		cfn:    cloudformation.NewFromConfig(awsCfg),
		s3:     s3.NewFromConfig(awsCfg),
		sts:    sts.NewFromConfig(awsCfg),
	}, nil
}

// NewCloudFormationOperations creates a new CloudFormation operations wrapper
func (c *DefaultClient) NewCloudFormationOperations() CloudFormationOperations {
	return NewCloudFormationOperationsWithClient(c.cfn)
}

// NewS3Operations creates a new S3 operations wrapper
func (c *DefaultClient) NewS3Operations() S3Operations {
	return NewS3OperationsWithClient(c.s3)
}

// NewIdentityOperations creates a new STS identity wrapper
func (c *DefaultClient) NewIdentityOperations() IdentityOperations {
	return NewIdentityOperationsWithClient(c.sts)
}

// Region returns the configured AWS region
func (c *DefaultClient) Region() string {
	return c.config.Region
}
