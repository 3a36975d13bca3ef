package product

import (
	"strings"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultVariantTitle is what the catalog calls the single variant of a product without options
const DefaultVariantTitle = "Default Title"

// Variant is one generated row of the admin variant matrix
type Variant struct {
	Title          string           `json:"title"`
	Option1        *string          `json:"option1,omitempty"`
	Option2        *string          `json:"option2,omitempty"`
	Price          decimal.Decimal  `json:"price" swaggertype:"string"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty" swaggertype:"string"`
}

// BuildVariants crosses two option lists (e.g. sizes and colors) into
// variants sharing one price. Blank and duplicate option values are dropped;
// either list may be empty.
func BuildVariants(first, second []string, price decimal.Decimal, compareAt *decimal.Decimal) ([]Variant, error) {
	if price.IsNegative() {
		return nil, ierr.NewError("variant price is negative").
			WithHint("Price cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if compareAt != nil && compareAt.LessThan(price) {
		return nil, ierr.NewError("compare-at price below price").
			WithHint("Compare-at price must not be lower than the price").
			WithReportableDetails(map[string]any{
				"price":            price.String(),
				"compare_at_price": compareAt.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	a := cleanOptions(first)
	b := cleanOptions(second)

	newVariant := func(o1, o2 *string) Variant {
		parts := lo.Compact([]string{lo.FromPtr(o1), lo.FromPtr(o2)})
		title := strings.Join(parts, " / ")
		if title == "" {
			title = DefaultVariantTitle
		}
		return Variant{
			Title:          title,
			Option1:        o1,
			Option2:        o2,
			Price:          price,
			CompareAtPrice: compareAt,
		}
	}

	switch {
	case len(a) == 0 && len(b) == 0:
		return []Variant{newVariant(nil, nil)}, nil
	case len(b) == 0:
		return lo.Map(a, func(o string, _ int) Variant { return newVariant(lo.ToPtr(o), nil) }), nil
	case len(a) == 0:
		return lo.Map(b, func(o string, _ int) Variant { return newVariant(lo.ToPtr(o), nil) }), nil
	}

	variants := make([]Variant, 0, len(a)*len(b))
	for _, o1 := range a {
		for _, o2 := range b {
			variants = append(variants, newVariant(lo.ToPtr(o1), lo.ToPtr(o2)))
		}
	}
	return variants, nil
}

func cleanOptions(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Uniq(lo.Compact(trimmed))
}
