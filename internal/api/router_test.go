package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/bestsenki/storefront/internal/api/v1"
	"github.com/bestsenki/storefront/internal/auth"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/rest/middleware"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/bestsenki/storefront/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const (
	customerToken = "customer-token"
	adminToken    = "admin-token"
)

type stubAuthProvider map[string]*auth.Claims

func (p stubAuthProvider) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	claims, ok := p[token]
	if !ok {
		return nil, ierr.NewError("token rejected").
			WithHint("Сессия истекла, войдите снова").
			Mark(ierr.ErrUnauthenticated)
	}
	return claims, nil
}

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	engine *gin.Engine
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetSentry(),
		stores.OrderRepo,
		stores.LoyaltyRepo,
		stores.ReferralRepo,
		stores.FavoriteRepo,
		stores.RecentlyViewedRepo,
		stores.BannerRepo,
		stores.ReviewRepo,
		s.GetCache(),
		s.GetSessionStore(),
		s.GetCatalog(),
		s.GetPubSub(),
		s.GetEmail(),
	)

	loyaltyService := service.NewLoyaltyService(params)
	orderService := service.NewOrderService(params)
	logger := s.GetLogger()

	handlers := Handlers{
		Health:   v1.NewHealthHandler(nil, logger),
		Checkout: v1.NewCheckoutHandler(service.NewCheckoutService(params, loyaltyService), logger),
		Order:    v1.NewOrderHandler(orderService, logger),
		Loyalty:  v1.NewLoyaltyHandler(loyaltyService, logger),
		Referral: v1.NewReferralHandler(service.NewReferralService(params, loyaltyService), logger),
		Favorite: v1.NewFavoriteHandler(service.NewFavoriteService(params), service.NewRecentlyViewedService(params), logger),
		Banner:   v1.NewBannerHandler(service.NewBannerService(params), logger),
		Review:   v1.NewReviewHandler(service.NewReviewService(params), logger),
		Admin:    v1.NewAdminHandler(service.NewAdminService(params), orderService, service.NewProductService(params), logger),
	}

	provider := stubAuthProvider{
		customerToken: {UserID: testutil.DefaultAccountID, Email: testutil.DefaultEmail},
		adminToken:    {UserID: "00000000-0000-0000-0000-0000000000ad", Email: "admin@example.kg", Role: s.GetConfig().Auth.AdminRole},
	}
	s.engine = NewRouter(handlers, s.GetConfig(), logger, provider)
}

func (s *RouterSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decodeError(w *httptest.ResponseRecorder) middleware.ErrorResponse {
	var resp middleware.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"ok"`)
}

func (s *RouterSuite) TestGuestCheckoutFlow() {
	w := s.do(http.MethodPost, "/v1/checkout/sessions", "", map[string]any{
		"lines": []map[string]any{{
			"variant_id": "gid://shopify/ProductVariant/1",
			"title":      "Розы",
			"unit_price": "1500",
			"quantity":   2,
		}},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var session struct {
		ID      string `json:"id"`
		Pricing struct {
			Total string `json:"total"`
		} `json:"pricing"`
		BalanceState string `json:"balance_state"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &session))
	s.NotEmpty(session.ID)
	s.Equal("3000", session.Pricing.Total)

	w = s.do(http.MethodPost, "/v1/checkout/sessions/"+session.ID+"/loyalty", "", map[string]any{"points": 100})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/v1/checkout/sessions/"+session.ID+"/submit", "", map[string]any{
		"customer_name":    "Анна",
		"email":            "guest@example.kg",
		"phone":            "+996555000000",
		"shipping_address": "Бишкек, ул. Киевская 1",
		"payment_method":   "cash",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"order"`)

	w = s.do(http.MethodGet, "/v1/checkout/sessions/"+session.ID, "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestInvalidBody() {
	w := s.do(http.MethodPost, "/v1/checkout/sessions", "", map[string]any{"lines": []any{}})
	s.Equal(http.StatusBadRequest, w.Code)
	s.False(s.decodeError(w).Success)
}

func (s *RouterSuite) TestAccountRoutesRequireLogin() {
	w := s.do(http.MethodGet, "/v1/loyalty", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	resp := s.decodeError(w)
	s.False(resp.Success)
	s.Equal("Войдите в аккаунт", resp.Error.Display)
}

func (s *RouterSuite) TestBadTokenIsRejected() {
	w := s.do(http.MethodGet, "/v1/banners", "forged", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestCustomerReadsLoyalty() {
	s.GetLoyaltyStore().Seed(testutil.DefaultAccountID, 250)

	w := s.do(http.MethodGet, "/v1/loyalty", customerToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "250")
}

func (s *RouterSuite) TestReferralCreateIsSeparateFromRead() {
	w := s.do(http.MethodGet, "/v1/referrals", customerToken, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/v1/referrals", customerToken, nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"BSC`)

	w = s.do(http.MethodPost, "/v1/referrals", customerToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/referrals", customerToken, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestProductReviews() {
	path := "/v1/products/roses-101/reviews"

	w := s.do(http.MethodPost, path, "", map[string]any{"rating": 5})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, path, customerToken, map[string]any{"rating": 5, "comment": "Отличные розы"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, path, customerToken, map[string]any{"rating": 9})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, path, "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Items   []map[string]any `json:"items"`
		Summary struct {
			Count   int    `json:"count"`
			Average string `json:"average"`
		} `json:"summary"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Items, 1)
	s.Equal(1, resp.Summary.Count)
	s.Equal("5", resp.Summary.Average)
}

func (s *RouterSuite) TestAdminRoutes() {
	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"guest", "", http.StatusUnauthorized},
		{"customer", customerToken, http.StatusForbidden},
		{"admin", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodGet, "/v1/admin/dashboard", tt.token, nil)
			s.Equal(tt.want, w.Code, w.Body.String())
		})
	}
}

func (s *RouterSuite) TestAdminExportsCSV() {
	w := s.do(http.MethodGet, "/v1/admin/orders/export?format=csv", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment; filename=\"orders_"))
	s.Contains(w.Header().Get("Content-Type"), "text/csv")

	w = s.do(http.MethodGet, "/v1/admin/orders/export?format=xlsx", adminToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}
