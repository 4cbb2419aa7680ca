/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package packager

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPackager implements Packager for testing
type MockPackager struct {
	mock.Mock
}

func (m *MockPackager) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPackager) Build(ctx context.Context, req BuildRequest) (*Artifact, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Artifact), args.Error(1)
}

func (m *MockPackager) Deploy(ctx context.Context, req DeployRequest) (*DeployOutput, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeployOutput), args.Error(1)
}

// MockCommandRunner implements CommandRunner for testing
type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	callArgs := m.Called(ctx, dir, name, args)
	return callArgs.String(0), callArgs.Error(1)
}
