/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// DefaultRegion is the S3 region that rejects an explicit location constraint
const DefaultRegion = "us-east-1"

// DefaultS3Operations provides S3 operations for artifact staging
type DefaultS3Operations struct {
	client S3Client
}

// NewS3OperationsWithClient creates operations with a custom client (for testing)
func NewS3OperationsWithClient(client S3Client) *DefaultS3Operations {
	return &DefaultS3Operations{client: client}
}

// BucketExists probes the bucket with HeadBucket
func (o *DefaultS3Operations) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := o.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		return true, nil
	}

	if isBucketNotFoundError(err) {
		return false, nil
	}

	return false, fmt.Errorf("failed to probe bucket %s: %w", bucket, classify(err))
}

// CreateBucket creates the bucket, passing a location constraint outside us-east-1
func (o *DefaultS3Operations) CreateBucket(ctx context.Context, bucket, region string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}

	if region != "" && region != DefaultRegion {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}

	_, err := o.client.CreateBucket(ctx, input)
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucket, classify(err))
	}

	return nil
}

// PutObject uploads an artifact to the bucket
func (o *DefaultS3Operations) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, classify(err))
	}

	return nil
}

// ObjectURL returns the virtual-hosted URL CloudFormation accepts as a TemplateURL
func ObjectURL(bucket, region, key string) string {
	if region == "" || region == DefaultRegion {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

func isBucketNotFoundError(err error) bool {
	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchBucket *s3types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchBucket"
	}

	return false
}
