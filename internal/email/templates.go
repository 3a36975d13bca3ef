package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	orderCreatedTmpl = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/order_created.html"))
	orderStatusTmpl  = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/order_status.html"))
)

const (
	subjectOrderCreated = "Бесценки: Ваш заказ принят! 💝"
	subjectStatusFormat = "Бесценки: Статус заказа изменён на \"%s\""
)

// OrderCreated is the data for the order confirmation email
type OrderCreated struct {
	OrderID string
	Total   decimal.Decimal
}

// OrderStatusUpdated is the data for the status change email
type OrderStatusUpdated struct {
	OrderID string
	Status  types.OrderStatus
}

// ShortOrderID is the order reference shown to customers: the first eight characters of the ID
func ShortOrderID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// groupSep is the ru-RU thousands separator (no-break space)
const groupSep = '\u00a0'

// FormatSom renders an amount with ru-RU digit grouping, e.g. "12 500" or "1 234,5"
func FormatSom(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	intPart := amount.Truncate(0).String()
	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteRune(groupSep)
		}
		sb.WriteRune(r)
	}

	frac := amount.Sub(amount.Truncate(0))
	if frac.IsZero() {
		return sign + sb.String()
	}
	fracDigits := strings.TrimRight(strings.TrimPrefix(frac.StringFixed(2), "0."), "0")
	return sign + sb.String() + "," + fracDigits
}

func RenderOrderCreated(d OrderCreated) (Message, error) {
	data := map[string]interface{}{
		"ShortID": ShortOrderID(d.OrderID),
		"Total":   "",
	}
	if d.Total.IsPositive() {
		data["Total"] = FormatSom(d.Total)
	}

	var html bytes.Buffer
	if err := orderCreatedTmpl.ExecuteTemplate(&html, "layout", data); err != nil {
		return Message{}, err
	}

	text := fmt.Sprintf("Спасибо за заказ!\nНомер заказа: #%s\n", data["ShortID"])
	if data["Total"] != "" {
		text += fmt.Sprintf("Сумма: %s сом\n", data["Total"])
	}
	text += "Мы уведомим вас, когда статус заказа изменится."

	return Message{
		Subject: subjectOrderCreated,
		HTML:    html.String(),
		Text:    text,
	}, nil
}

func RenderOrderStatusUpdated(d OrderStatusUpdated) (Message, error) {
	label := d.Status.Label()
	data := map[string]interface{}{
		"ShortID":     ShortOrderID(d.OrderID),
		"StatusLabel": label,
		"StatusColor": template.CSS(statusColor(d.Status)),
		"StatusNote":  statusNote(d.Status),
	}

	var html bytes.Buffer
	if err := orderStatusTmpl.ExecuteTemplate(&html, "layout", data); err != nil {
		return Message{}, err
	}

	text := fmt.Sprintf("Статус вашего заказа #%s обновлён: %s", data["ShortID"], label)
	if note := statusNote(d.Status); note != "" {
		text += "\n" + note
	}

	return Message{
		Subject: fmt.Sprintf(subjectStatusFormat, label),
		HTML:    html.String(),
		Text:    text,
	}, nil
}

func statusColor(s types.OrderStatus) string {
	switch s {
	case types.OrderStatusCompleted:
		return "#4caf50"
	case types.OrderStatusCancelled:
		return "#f44336"
	default:
		return "#ff9800"
	}
}

func statusNote(s types.OrderStatus) string {
	switch s {
	case types.OrderStatusCompleted:
		return "Ваш заказ готов! Спасибо за покупку! 🎉"
	case types.OrderStatusCancelled:
		return "К сожалению, ваш заказ был отменён. Если у вас есть вопросы, свяжитесь с нами."
	case types.OrderStatusProcessing:
		return "Мы уже работаем над вашим заказом!"
	default:
		return ""
	}
}
