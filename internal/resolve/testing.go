/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"

	"github.com/orien/stackpreview/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockFileSystemResolver implements FileSystemResolver for testing
type MockFileSystemResolver struct {
	mock.Mock
}

func (m *MockFileSystemResolver) ListDirectories(root string) ([]string, error) {
	args := m.Called(root)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFileSystemResolver) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileSystemResolver) ReadTemplate(fileURI string) (string, error) {
	args := m.Called(fileURI)
	return args.String(0), args.Error(1)
}

// MockComponentResolver implements ComponentResolver for testing
type MockComponentResolver struct {
	mock.Mock
}

func (m *MockComponentResolver) Resolve(ctx context.Context) ([]*model.Component, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Component), args.Error(1)
}
