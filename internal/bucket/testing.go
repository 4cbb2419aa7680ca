/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package bucket

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockResolver implements Resolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) EnsureBucket(ctx context.Context, region string) Outcome {
	args := m.Called(ctx, region)
	return args.Get(0).(Outcome)
}
