/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Identity is the caller identity behind the active credentials
type Identity struct {
	Account string
	ARN     string
	UserID  string
}

// DefaultIdentityOperations resolves caller identity through STS
type DefaultIdentityOperations struct {
	client STSClient
}

// NewIdentityOperationsWithClient creates operations with a custom client (for testing)
func NewIdentityOperationsWithClient(client STSClient) *DefaultIdentityOperations {
	return &DefaultIdentityOperations{client: client}
}

// CallerIdentity returns the identity of the active credentials
func (o *DefaultIdentityOperations) CallerIdentity(ctx context.Context) (*Identity, error) {
	out, err := o.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller identity: %w", classify(err))
	}

	return &Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
