/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import "errors"

var (
	// ErrNameTooLong is returned when a base or stack name exceeds the CloudFormation ceilings
	ErrNameTooLong = errors.New("name too long")

	// ErrInvalidIdentifier is returned for identifiers or component names that cannot form a stack name
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrPrerequisiteMissing is returned when a required tool or credential is unavailable
	ErrPrerequisiteMissing = errors.New("prerequisite missing")

	// ErrBuildFailure marks a component whose artifacts could not be built
	ErrBuildFailure = errors.New("build failed")

	// ErrDeployFailure marks a component whose stack upsert failed
	ErrDeployFailure = errors.New("deploy failed")

	// ErrDeleteFailure marks a stack whose deletion failed
	ErrDeleteFailure = errors.New("delete failed")

	// ErrTimedOut marks a stack whose deletion did not finish within the wait bound
	ErrTimedOut = errors.New("timed out")
)
