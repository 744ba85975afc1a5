package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mcoot/gameapi-e2e/internal/client"
	"github.com/mcoot/gameapi-e2e/internal/model"
)

// MockAPI is a testify mock of client.API
type MockAPI struct {
	mock.Mock
}

var _ client.API = (*MockAPI)(nil)

func (m *MockAPI) OpenSession(ctx context.Context, params model.Params) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) SetNick(ctx context.Context, params model.Params) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) StartTournament(ctx context.Context, params model.Params) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) EndTournament(ctx context.Context, params model.Params) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) DeleteLeaderboards(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) RefreshPlayer(ctx context.Context, params model.Params) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) CloseSession(ctx context.Context, params model.Params) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) DeletePlayer(ctx context.Context, params model.Params) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}
