package email

import (
	"context"
	"testing"

	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSom(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "0"},
		{decimal.NewFromInt(950), "950"},
		{decimal.NewFromInt(12500), "12\u00a0500"},
		{decimal.NewFromInt(1234567), "1\u00a0234\u00a0567"},
		{decimal.RequireFromString("1234.5"), "1\u00a0234,5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSom(tt.in), tt.in.String())
	}
}

func TestRenderOrderCreated(t *testing.T) {
	msg, err := RenderOrderCreated(OrderCreated{OrderID: "ord_01J9Z3M7Q8", Total: decimal.NewFromInt(4200)})
	require.NoError(t, err)

	assert.Equal(t, "Бесценки: Ваш заказ принят! 💝", msg.Subject)
	assert.Contains(t, msg.HTML, "Номер заказа: #ord_01J9")
	assert.Contains(t, msg.HTML, "4\u00a0200 сом")
	assert.Contains(t, msg.Text, "#ord_01J9")
}

func TestRenderOrderStatusUpdated(t *testing.T) {
	tests := []struct {
		status types.OrderStatus
		note   string
	}{
		{types.OrderStatusCompleted, "Ваш заказ готов!"},
		{types.OrderStatusCancelled, "ваш заказ был отменён"},
		{types.OrderStatusProcessing, "Мы уже работаем"},
	}
	for _, tt := range tests {
		msg, err := RenderOrderStatusUpdated(OrderStatusUpdated{OrderID: "ord_abcdefgh123", Status: tt.status})
		require.NoError(t, err)
		assert.Equal(t, "Бесценки: Статус заказа изменён на \""+tt.status.Label()+"\"", msg.Subject)
		assert.Contains(t, msg.HTML, tt.note)
		assert.Contains(t, msg.HTML, "Заказ #ord_abcd")
	}

	msg, err := RenderOrderStatusUpdated(OrderStatusUpdated{OrderID: "ord_1", Status: types.OrderStatusPending})
	require.NoError(t, err)
	assert.NotContains(t, msg.Text, "\n")
}

type recordingSender struct {
	enabled bool
	sent    []Message
}

func (r *recordingSender) IsEnabled() bool { return r.enabled }

func (r *recordingSender) Send(_ context.Context, msg Message) (string, error) {
	r.sent = append(r.sent, msg)
	return "msg_1", nil
}

func TestSendSkipsMissingAddressAndDisabledClient(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{enabled: true}
	svc := NewEmail(sender, logger.NewNoopLogger())

	id, err := svc.SendOrderCreated(ctx, "  ", OrderCreated{OrderID: "ord_1"})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Empty(t, sender.sent)

	id, err = svc.SendOrderCreated(ctx, "anna@example.kg", OrderCreated{OrderID: "ord_1", Total: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Equal(t, "msg_1", id)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "anna@example.kg", sender.sent[0].To)

	sender.enabled = false
	id, err = svc.SendOrderStatusUpdated(ctx, "anna@example.kg", OrderStatusUpdated{OrderID: "ord_1", Status: types.OrderStatusCompleted})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Len(t, sender.sent, 1)
}
