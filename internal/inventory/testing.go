/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package inventory

import (
	"context"

	"github.com/orien/stackpreview/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockQuery implements Query for testing
type MockQuery struct {
	mock.Mock
}

func (m *MockQuery) List(ctx context.Context, identifier string) ([]model.StackInventoryEntry, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StackInventoryEntry), args.Error(1)
}

func (m *MockQuery) Match(ctx context.Context, identifier string) ([]model.StackInventoryEntry, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StackInventoryEntry), args.Error(1)
}
