package testutil

import (
	"context"
	"sync/atomic"

	"github.com/bestsenki/storefront/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient runs units of work inline. Nothing is rolled back;
// Calls counts how many units of work were opened.
type MockPostgresClient struct {
	calls atomic.Int64
}

func NewMockPostgresClient() *MockPostgresClient {
	return &MockPostgresClient{}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.calls.Add(1)
	return fn(ctx)
}

func (c *MockPostgresClient) Calls() int64 {
	return c.calls.Load()
}
