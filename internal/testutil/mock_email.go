package testutil

import (
	"context"
	"sync"

	"github.com/bestsenki/storefront/internal/email"
)

// MockEmailSender records messages instead of delivering them
type MockEmailSender struct {
	mu      sync.Mutex
	Enabled bool
	Err     error
	Sent    []email.Message
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{Enabled: true}
}

func (m *MockEmailSender) IsEnabled() bool {
	return m.Enabled
}

func (m *MockEmailSender) Send(ctx context.Context, msg email.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Sent = append(m.Sent, msg)
	return "msg_test", nil
}

func (m *MockEmailSender) Messages() []email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Message(nil), m.Sent...)
}
