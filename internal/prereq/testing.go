/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package prereq

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockChecker implements Checker for testing
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
