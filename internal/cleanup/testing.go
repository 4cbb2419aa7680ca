/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cleanup

import (
	"context"

	"github.com/orien/stackpreview/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockCleaner implements Cleaner for testing
type MockCleaner struct {
	mock.Mock
}

func (m *MockCleaner) Cleanup(ctx context.Context, identifier string) (*model.CleanupResult, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CleanupResult), args.Error(1)
}
