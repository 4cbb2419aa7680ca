/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		wantIs error
	}{
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, wantIs: ErrPermissionDenied},
		{name: "expired token", err: &smithy.GenericAPIError{Code: "ExpiredToken"}, wantIs: ErrPermissionDenied},
		{name: "throttling", err: &smithy.GenericAPIError{Code: "Throttling"}, wantIs: ErrThrottled},
		{name: "slow down", err: &smithy.GenericAPIError{Code: "SlowDown"}, wantIs: ErrThrottled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.ErrorIs(t, got, tt.wantIs)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_PassesThroughOtherErrors(t *testing.T) {
	assert.Nil(t, classify(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, classify(plain))

	validation := &smithy.GenericAPIError{Code: "ValidationError", Message: "bad parameter"}
	got := classify(validation)
	assert.NotErrorIs(t, got, ErrPermissionDenied)
	assert.NotErrorIs(t, got, ErrThrottled)
}

func TestIsStackNotFoundError(t *testing.T) {
	assert.True(t, isStackNotFoundError(&smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "Stack with id preview-42-dev-api does not exist",
	}))
	assert.False(t, isStackNotFoundError(&smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "Parameter Environment must be set",
	}))
	assert.True(t, isStackNotFoundError(errors.New("stack foo does not exist")))
	assert.False(t, isStackNotFoundError(nil))
}

func TestIsNoChangesReason(t *testing.T) {
	assert.True(t, isNoChangesReason("The submitted information didn't contain changes. Submit different information to create a change set."))
	assert.True(t, isNoChangesReason("No updates are to be performed."))
	assert.False(t, isNoChangesReason("Template format error"))
	assert.False(t, isNoChangesReason(""))
}
