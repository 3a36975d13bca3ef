package testutil

import (
	"context"
	"sync"

	"github.com/bestsenki/storefront/internal/catalog"
	ierr "github.com/bestsenki/storefront/internal/errors"
)

// MockCatalog is a catalog.Client backed by a fixed variant map
type MockCatalog struct {
	mu       sync.Mutex
	variants map[string]*catalog.Variant

	CheckoutURL string
	CheckoutErr error
	// Carts records the lines of every CreateCheckout call
	Carts [][]catalog.CartLine
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		variants:    make(map[string]*catalog.Variant),
		CheckoutURL: "https://bestsenki.myshopify.com/cart/c/test",
	}
}

func (m *MockCatalog) AddVariant(v *catalog.Variant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variants[v.ID] = v
}

func (m *MockCatalog) GetVariants(ctx context.Context, ids []string) (map[string]*catalog.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]*catalog.Variant, len(ids))
	for _, id := range ids {
		if v, ok := m.variants[id]; ok {
			c := *v
			out[id] = &c
		}
	}
	return out, nil
}

func (m *MockCatalog) CreateCheckout(ctx context.Context, lines []catalog.CartLine, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Carts = append(m.Carts, lines)
	if m.CheckoutErr != nil {
		return "", m.CheckoutErr
	}
	if len(lines) == 0 {
		return "", ierr.NewError("cart is empty").Mark(ierr.ErrValidation)
	}
	return m.CheckoutURL, nil
}
