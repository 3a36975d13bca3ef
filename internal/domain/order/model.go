package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

// Item is a purchased variant snapshot. Prices are copied at checkout so
// later catalog changes never alter a placed order.
type Item struct {
	ProductID    string          `json:"product_id"`
	VariantID    string          `json:"variant_id"`
	Title        string          `json:"title"`
	VariantTitle string          `json:"variant_title,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Options      types.Metadata  `json:"options,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
}

func (i Item) Validate() error {
	var missing []string
	if i.VariantID == "" {
		missing = append(missing, "variant_id")
	}
	if strings.TrimSpace(i.Title) == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return ierr.NewError("order item is incomplete").
			WithHint("Order item is missing required fields").
			WithReportableDetails(map[string]any{
				"missing": missing,
			}).
			Mark(ierr.ErrValidation)
	}
	if i.Quantity < 1 || i.UnitPrice.IsNegative() {
		return ierr.NewError("order item has invalid quantity or price").
			WithHint("Order item quantity must be positive and price non-negative").
			WithReportableDetails(map[string]any{
				"variant_id": i.VariantID,
				"quantity":   i.Quantity,
				"unit_price": i.UnitPrice.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (i Item) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Items is stored as a JSONB array
type Items []Item

func (items *Items) Scan(value interface{}) error {
	if value == nil {
		*items = Items{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal order items: %T", value)
	}

	var out Items
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*items = out
	return nil
}

func (items Items) Value() (driver.Value, error) {
	if items == nil {
		return json.Marshal(Items{})
	}
	return json.Marshal(items)
}

// Subtotal sums line amounts
func (items Items) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, i := range items {
		total = total.Add(i.Amount())
	}
	return total
}

// Summary renders "Title xN; Title xM" for exports
func (items Items) Summary() string {
	parts := make([]string, 0, len(items))
	for _, i := range items {
		title := i.Title
		if title == "" {
			title = "Товар"
		}
		parts = append(parts, fmt.Sprintf("%s x%d", title, i.Quantity))
	}
	return strings.Join(parts, "; ")
}

// Order is a submitted checkout
type Order struct {
	ID                string              `db:"id" json:"id"`
	Number            string              `db:"number" json:"number"`
	AccountID         *string             `db:"user_id" json:"account_id,omitempty"`
	CustomerName      string              `db:"customer_name" json:"customer_name"`
	Email             string              `db:"email" json:"email"`
	Phone             string              `db:"phone" json:"phone"`
	Items             Items               `db:"items" json:"items"`
	Currency          string              `db:"currency" json:"currency"`
	Subtotal          decimal.Decimal     `db:"subtotal" json:"subtotal"`
	PromoCode         *string             `db:"promo_code" json:"promo_code,omitempty"`
	PromoDiscount     decimal.Decimal     `db:"promo_discount" json:"promo_discount"`
	LoyaltyPointsUsed int64               `db:"loyalty_points_used" json:"loyalty_points_used"`
	LoyaltyDiscount   decimal.Decimal     `db:"loyalty_discount" json:"loyalty_discount"`
	Total             decimal.Decimal     `db:"total" json:"total"`
	ShippingAddress   string              `db:"shipping_address" json:"shipping_address"`
	Notes             string              `db:"notes" json:"notes,omitempty"`
	PaymentMethod     types.PaymentMethod `db:"payment_method" json:"payment_method"`
	OrderStatus       types.OrderStatus   `db:"order_status" json:"order_status"`
	CheckoutURL       string              `db:"checkout_url" json:"checkout_url,omitempty"`
	types.BaseModel
}

func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ierr.NewError("order has no items").
			WithHint("Корзина пуста").
			Mark(ierr.ErrValidation)
	}
	for _, i := range o.Items {
		if err := i.Validate(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(o.Email) == "" {
		return ierr.NewError("order email is required").
			WithHint("Email is required").
			Mark(ierr.ErrValidation)
	}
	if err := o.PaymentMethod.Validate(); err != nil {
		return err
	}
	if err := o.OrderStatus.Validate(); err != nil {
		return err
	}

	expected := o.Subtotal.Sub(o.PromoDiscount).Sub(o.LoyaltyDiscount)
	if o.Total.IsNegative() || !o.Total.Equal(expected) {
		return ierr.NewError("order total does not match its discounts").
			WithHint("Order total is inconsistent").
			WithReportableDetails(map[string]any{
				"subtotal":         o.Subtotal.String(),
				"promo_discount":   o.PromoDiscount.String(),
				"loyalty_discount": o.LoyaltyDiscount.String(),
				"total":            o.Total.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CountsTowardRevenue excludes cancelled orders from dashboards
func (o *Order) CountsTowardRevenue() bool {
	return o.OrderStatus != types.OrderStatusCancelled
}
