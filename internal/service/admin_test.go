package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/testutil"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AdminServiceSuite struct {
	testutil.BaseServiceTestSuite
	service *adminService
	now     time.Time
}

func TestAdminService(t *testing.T) {
	suite.Run(t, new(AdminServiceSuite))
}

func (s *AdminServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s.service = NewAdminService(newTestServiceParams(&s.BaseServiceTestSuite)).(*adminService)
	s.service.now = func() time.Time { return s.now }

	repo := s.GetStores().OrderRepo
	ctx := s.GetContext()
	createOrder(ctx, repo, orderFixture{title: "Розы", price: 1000, quantity: 2, createdAt: s.now.Add(-time.Hour)})
	createOrder(ctx, repo, orderFixture{title: "Тюльпаны", price: 500, createdAt: s.now.Add(-24 * time.Hour), status: types.OrderStatusCompleted})
	createOrder(ctx, repo, orderFixture{title: "Пионы", price: 3000, createdAt: s.now.Add(-48 * time.Hour), status: types.OrderStatusCancelled})
}

func (s *AdminServiceSuite) TestDashboard() {
	resp, err := s.service.GetDashboard(testutil.SetupAdminContext(), &dto.DashboardRequest{Days: 7})
	s.Require().NoError(err)

	s.Equal(2, resp.Stats.TotalOrders)
	s.True(resp.Stats.TotalRevenue.Equal(decimal.NewFromInt(2500)))
	s.True(resp.Stats.AverageOrderValue.Equal(decimal.NewFromInt(1250)))
	s.Equal(1, resp.Stats.OrdersByStatus[types.OrderStatusCancelled])
	s.Equal(0, resp.Stats.OrdersByStatus[types.OrderStatusProcessing])

	s.Len(resp.DailySales, 7)
	s.Equal("2024-03-15", resp.DailySales[len(resp.DailySales)-1].Date)

	s.Require().Len(resp.TopProducts, 2)
	s.Equal("Розы", resp.TopProducts[0].Title)
	s.Equal(2, resp.TopProducts[0].Quantity)
}

func (s *AdminServiceSuite) TestDashboardDefaults() {
	req := &dto.DashboardRequest{}
	resp, err := s.service.GetDashboard(testutil.SetupAdminContext(), req)
	s.Require().NoError(err)
	s.Equal(30, req.Days)
	s.Len(resp.DailySales, 30)
}

func (s *AdminServiceSuite) TestExportCSV() {
	file, err := s.service.ExportOrders(testutil.SetupAdminContext(), nil, ExportFormatCSV)
	s.Require().NoError(err)

	s.Equal("orders_2024-03-15.csv", file.Filename)
	s.Equal("text/csv; charset=utf-8", file.ContentType)
	s.True(bytes.HasPrefix(file.Data, utf8BOM))

	rows, err := csv.NewReader(bytes.NewReader(file.Data[len(utf8BOM):])).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 4)
	s.Equal(exportHeaders, rows[0])

	var roses []string
	for _, r := range rows[1:] {
		if r[6] == "Розы x2" {
			roses = r
		}
	}
	s.Require().NotNil(roses)
	// 11:00 UTC is 17:00 in Bishkek
	s.Equal("15.03.2024, 17:00:00", roses[1])
	s.Equal("В ожидании", roses[2])
	s.Equal("При получении", roses[3])
	s.Equal("2000", roses[8])
}

func (s *AdminServiceSuite) TestExportCSVFiltersByStatus() {
	filter := types.NewOrderFilter()
	filter.Status = []types.OrderStatus{types.OrderStatusCompleted}

	file, err := s.service.ExportOrders(testutil.SetupAdminContext(), filter, "")
	s.Require().NoError(err)

	rows, err := csv.NewReader(bytes.NewReader(file.Data[len(utf8BOM):])).ReadAll()
	s.Require().NoError(err)
	s.Len(rows, 2)
	s.Equal("Тюльпаны x1", rows[1][6])
}

func (s *AdminServiceSuite) TestExportJSON() {
	file, err := s.service.ExportOrders(testutil.SetupAdminContext(), nil, ExportFormatJSON)
	s.Require().NoError(err)
	s.Equal("orders_2024-03-15.json", file.Filename)

	var rows []exportedOrder
	s.Require().NoError(json.Unmarshal(file.Data, &rows))
	s.Len(rows, 3)
}

func (s *AdminServiceSuite) TestExportRejectsUnknownFormat() {
	_, err := s.service.ExportOrders(testutil.SetupAdminContext(), nil, "xlsx")
	s.True(ierr.IsValidation(err))
}
