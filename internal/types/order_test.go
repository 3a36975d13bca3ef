package types

import (
	"testing"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValidate(t *testing.T) {
	tests := []struct {
		name    string
		status  OrderStatus
		wantErr bool
	}{
		{name: "pending", status: OrderStatusPending},
		{name: "cancelled", status: OrderStatusCancelled},
		{name: "empty", status: "", wantErr: true},
		{name: "unknown", status: "shipped", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.status.Validate()
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOrderLabels(t *testing.T) {
	assert.Equal(t, "В обработке", OrderStatusProcessing.Label())
	assert.Equal(t, "При получении", PaymentMethodCash.Label())
	assert.Equal(t, "refunded", OrderStatus("refunded").Label())
}

func TestPaymentMethodValidate(t *testing.T) {
	assert.NoError(t, PaymentMethodOnline.Validate())
	assert.Error(t, PaymentMethod("card").Validate())
}

func TestOrderFilterRejectsUnknownStatus(t *testing.T) {
	f := NewOrderFilter()
	f.Status = []OrderStatus{OrderStatusPending, "lost"}
	assert.Error(t, f.Validate())
}
