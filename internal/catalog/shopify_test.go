package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bestsenki/storefront/internal/cache"
	"github.com/bestsenki/storefront/internal/config"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/httpclient"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/sentry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ShopifySuite struct {
	suite.Suite
	server   *httptest.Server
	calls    int32
	handler  func(w http.ResponseWriter, req graphQLRequest)
	client   Client
	lastBody graphQLRequest
}

func TestShopify(t *testing.T) {
	suite.Run(t, new(ShopifySuite))
}

func (s *ShopifySuite) SetupTest() {
	atomic.StoreInt32(&s.calls, 0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.calls, 1)
		s.Equal("storefront-token", r.Header.Get("X-Shopify-Storefront-Access-Token"))
		s.True(strings.HasSuffix(r.URL.Path, "/api/2024-10/graphql.json"))

		raw, _ := io.ReadAll(r.Body)
		var req graphQLRequest
		s.Require().NoError(json.Unmarshal(raw, &req))
		s.lastBody = req
		s.handler(w, req)
	}))

	cfg := config.GetDefaultConfig()
	cfg.Catalog.Enabled = true
	cfg.Catalog.StoreDomain = s.server.URL
	cfg.Catalog.StorefrontToken = "storefront-token"

	log := logger.NewNoopLogger()
	s.client = NewShopifyClient(
		cfg,
		httpclient.NewDefaultClient(httpclient.ClientConfig{Timeout: time.Second}, log),
		cache.NewInMemoryCache(cfg, log),
		sentry.NewSentryService(cfg, log),
		log,
	)
}

func (s *ShopifySuite) TearDownTest() {
	s.server.Close()
}

func (s *ShopifySuite) TestGetVariantsCachesResults() {
	s.handler = func(w http.ResponseWriter, req graphQLRequest) {
		_, _ = w.Write([]byte(`{"data":{"nodes":[
			{"id":"gid://shopify/ProductVariant/1","title":"S / Черный","availableForSale":true,
			 "price":{"amount":"2490.0","currencyCode":"KGS"},"image":{"url":"https://cdn/img.jpg"},
			 "product":{"id":"gid://shopify/Product/9","title":"Комплект Rose","handle":"rose-set"}},
			null
		]}}`))
	}

	ctx := context.Background()
	ids := []string{"gid://shopify/ProductVariant/1", "gid://shopify/ProductVariant/404"}

	variants, err := s.client.GetVariants(ctx, ids)
	s.Require().NoError(err)
	s.Len(variants, 1)

	v := variants["gid://shopify/ProductVariant/1"]
	s.Require().NotNil(v)
	s.True(decimal.NewFromInt(2490).Equal(v.Price))
	s.Equal("rose-set", v.ProductHandle)
	s.Equal("https://cdn/img.jpg", v.ImageURL)

	_, err = s.client.GetVariants(ctx, ids[:1])
	s.Require().NoError(err)
	s.Equal(int32(1), atomic.LoadInt32(&s.calls))
}

func (s *ShopifySuite) TestGetVariantsSurfacesGraphQLErrors() {
	s.handler = func(w http.ResponseWriter, req graphQLRequest) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Throttled"}]}`))
	}

	_, err := s.client.GetVariants(context.Background(), []string{"gid://shopify/ProductVariant/2"})
	s.True(ierr.IsHTTPClient(err))
}

func (s *ShopifySuite) TestCreateCheckout() {
	s.handler = func(w http.ResponseWriter, req graphQLRequest) {
		_, _ = w.Write([]byte(`{"data":{"cartCreate":{"cart":{"id":"gid://shopify/Cart/1","checkoutUrl":"https://shop/checkout/1"},"userErrors":[]}}}`))
	}

	url, err := s.client.CreateCheckout(context.Background(), []CartLine{{VariantID: "gid://shopify/ProductVariant/1", Quantity: 2}}, "anna@example.kg")
	s.Require().NoError(err)
	s.Equal("https://shop/checkout/1", url)

	input := s.lastBody.Variables["input"].(map[string]interface{})
	lines := input["lines"].([]interface{})
	s.Len(lines, 1)
	s.Equal(float64(2), lines[0].(map[string]interface{})["quantity"])
}

func (s *ShopifySuite) TestCreateCheckoutUserErrors() {
	s.handler = func(w http.ResponseWriter, req graphQLRequest) {
		_, _ = w.Write([]byte(`{"data":{"cartCreate":{"cart":null,"userErrors":[{"field":["lines"],"message":"invalid merchandise"}]}}}`))
	}

	_, err := s.client.CreateCheckout(context.Background(), []CartLine{{VariantID: "x", Quantity: 1}}, "")
	s.True(ierr.IsHTTPClient(err))
}
