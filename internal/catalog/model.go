package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Variant is the purchasable state of a catalog variant
type Variant struct {
	ID               string
	ProductID        string
	ProductTitle     string
	ProductHandle    string
	Title            string
	Price            decimal.Decimal
	CurrencyCode     string
	AvailableForSale bool
	ImageURL         string
}

// CartLine is one merchandise line of a hosted checkout
type CartLine struct {
	VariantID string
	Quantity  int
}

// Client reads variant prices from the catalog and opens hosted checkouts
// for online payment. Writes to the catalog are out of scope.
type Client interface {
	// GetVariants returns the variants found, keyed by ID. Unknown IDs are absent.
	GetVariants(ctx context.Context, ids []string) (map[string]*Variant, error)
	// CreateCheckout opens a hosted cart and returns its checkout URL
	CreateCheckout(ctx context.Context, lines []CartLine, email string) (string, error)
}
