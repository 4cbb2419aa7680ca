/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

var (
	// ErrStackNotFound is returned when CloudFormation reports that a stack does not exist
	ErrStackNotFound = errors.New("stack does not exist")

	// ErrWaitTimeout is returned when a stack or change set does not settle before the wait bound
	ErrWaitTimeout = errors.New("timed out waiting for stack operation")

	// ErrStackOperationFailed is returned when a stack or change set reaches a failed terminal state
	ErrStackOperationFailed = errors.New("stack operation failed")

	// ErrPermissionDenied classifies authorisation failures returned by AWS
	ErrPermissionDenied = errors.New("permission denied")

	// ErrThrottled classifies rate limiting failures returned by AWS
	ErrThrottled = errors.New("request throttled")
)

var permissionErrorCodes = map[string]bool{
	"AccessDenied":          true,
	"AccessDeniedException": true,
	"UnauthorizedOperation": true,
	"Forbidden":             true,
	"InvalidClientTokenId":  true,
	"ExpiredToken":          true,
	"ExpiredTokenException": true,
}

var throttlingErrorCodes = map[string]bool{
	"Throttling":                true,
	"ThrottlingException":       true,
	"RequestLimitExceeded":      true,
	"TooManyRequestsException":  true,
	"SlowDown":                  true,
	"RequestThrottledException": true,
}

// classify tags permission and rate limit failures so callers can report them distinctly
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch code := apiErr.ErrorCode(); {
	case permissionErrorCodes[code]:
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case throttlingErrorCodes[code]:
		return fmt.Errorf("%w: %w", ErrThrottled, err)
	default:
		return err
	}
}

// isStackNotFoundError checks if the error indicates the stack doesn't exist
func isStackNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" && strings.Contains(apiErr.ErrorMessage(), "does not exist")
	}

	return strings.Contains(err.Error(), "does not exist")
}

// isNoChangesReason reports whether a failed change set only failed because nothing changed
func isNoChangesReason(reason string) bool {
	return strings.Contains(reason, "didn't contain changes") ||
		strings.Contains(reason, "No updates are to be performed") ||
		strings.Contains(reason, "The submitted information didn't contain changes")
}
