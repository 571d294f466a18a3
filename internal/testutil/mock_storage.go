//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/uno-online/internal/server/storage"
)

// MockPublisher 事件发布 mock
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, events ...storage.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
