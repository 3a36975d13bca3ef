package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

var (
	exportHeaders = []string{
		"ID заказа",
		"Дата создания",
		"Статус",
		"Способ оплаты",
		"Email",
		"Адрес доставки",
		"Товары",
		"Примечания",
		"Сумма",
	}

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	// store time for export timestamps, Asia/Bishkek has no DST
	storeLocation = time.FixedZone("KGT", 6*60*60)
)

// ExportFile is a rendered download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type AdminService interface {
	GetDashboard(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error)
	ExportOrders(ctx context.Context, filter *types.OrderFilter, format string) (*ExportFile, error)
}

type adminService struct {
	ServiceParams
	now func() time.Time
}

func NewAdminService(params ServiceParams) AdminService {
	return &adminService{
		ServiceParams: params,
		now:           time.Now,
	}
}

func (s *adminService) GetDashboard(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	orders, err := s.allOrders(ctx, types.NewOrderFilter())
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Stats:       order.CalculateStats(orders),
		DailySales:  order.GroupSalesByDate(orders, req.Days, s.now()),
		TopProducts: order.TopProducts(orders, req.TopLimit),
	}, nil
}

func (s *adminService) ExportOrders(ctx context.Context, filter *types.OrderFilter, format string) (*ExportFile, error) {
	if filter == nil {
		filter = types.NewOrderFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	orders, err := s.allOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	date := s.now().UTC().Format(time.DateOnly)
	switch format {
	case "", ExportFormatCSV:
		data, err := ordersToCSV(orders)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("orders_%s.csv", date),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case ExportFormatJSON:
		data, err := ordersToJSON(orders)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("orders_%s.json", date),
			ContentType: "application/json",
			Data:        data,
		}, nil
	default:
		return nil, errUnsupportedExportFormat(format)
	}
}

func (s *adminService) allOrders(ctx context.Context, filter *types.OrderFilter) ([]*order.Order, error) {
	filter.QueryFilter = types.NewNoLimitQueryFilter()
	return s.OrderRepo.List(ctx, filter)
}

// ordersToCSV writes a UTF-8 BOM so spreadsheet apps pick the right encoding
func ordersToCSV(orders []*order.Order) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, o := range orders {
		row := []string{
			o.ID,
			o.CreatedAt.In(storeLocation).Format("02.01.2006, 15:04:05"),
			o.OrderStatus.Label(),
			o.PaymentMethod.Label(),
			o.Email,
			o.ShippingAddress,
			o.Items.Summary(),
			o.Notes,
			o.Total.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type exportedOrder struct {
	ID              string      `json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	Email           string      `json:"email"`
	ShippingAddress string      `json:"shipping_address"`
	Items           order.Items `json:"items"`
	Notes           string      `json:"notes"`
	Total           string      `json:"total"`
}

func ordersToJSON(orders []*order.Order) ([]byte, error) {
	rows := lo.Map(orders, func(o *order.Order, _ int) exportedOrder {
		return exportedOrder{
			ID:              o.ID,
			CreatedAt:       o.CreatedAt,
			Status:          o.OrderStatus.Label(),
			PaymentMethod:   o.PaymentMethod.Label(),
			Email:           o.Email,
			ShippingAddress: o.ShippingAddress,
			Items:           o.Items,
			Notes:           o.Notes,
			Total:           o.Total.String(),
		}
	})
	return json.MarshalIndent(rows, "", "  ")
}
