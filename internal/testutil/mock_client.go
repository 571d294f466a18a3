//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/uno-online/internal/client"
)

// MockGameClient 实现 ui.GameClient 的 mock
type MockGameClient struct {
	mock.Mock
}

func (m *MockGameClient) Join(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockGameClient) Refresh(name string) (*client.GameState, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.GameState), args.Error(1)
}

func (m *MockGameClient) UseCard(name string, index int) error {
	args := m.Called(name, index)
	return args.Error(0)
}

func (m *MockGameClient) CycleColorUp(name string, index int) error {
	args := m.Called(name, index)
	return args.Error(0)
}

func (m *MockGameClient) CycleColorDown(name string, index int) error {
	args := m.Called(name, index)
	return args.Error(0)
}

func (m *MockGameClient) Draw(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockGameClient) Close() error {
	args := m.Called()
	return args.Error(0)
}
