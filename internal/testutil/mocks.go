package testutil

import (
	"context"

	"github.com/cmu-oauth/session-front/internal/idp"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a testify mock of idp.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ExchangeCode(ctx context.Context, code string) (string, bool) {
	args := m.Called(ctx, code)
	return args.String(0), args.Bool(1)
}

func (m *MockProvider) FetchProfile(ctx context.Context, accessToken string) (*idp.Profile, bool) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*idp.Profile), args.Bool(1)
}

func (m *MockProvider) AuthURL() string {
	args := m.Called()
	return args.String(0)
}

var _ idp.Provider = (*MockProvider)(nil)
