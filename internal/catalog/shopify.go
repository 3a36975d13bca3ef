package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bestsenki/storefront/internal/cache"
	"github.com/bestsenki/storefront/internal/config"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/httpclient"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/sentry"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const variantsQuery = `query Variants($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on ProductVariant {
      id
      title
      availableForSale
      price { amount currencyCode }
      image { url }
      product { id title handle }
    }
  }
}`

const cartCreateMutation = `mutation CartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart { id checkoutUrl }
    userErrors { field message }
  }
}`

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type variantNode struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	AvailableForSale bool   `json:"availableForSale"`
	Price            struct {
		Amount       decimal.Decimal `json:"amount"`
		CurrencyCode string          `json:"currencyCode"`
	} `json:"price"`
	Image *struct {
		URL string `json:"url"`
	} `json:"image"`
	Product struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Handle string `json:"handle"`
	} `json:"product"`
}

type variantsResponse struct {
	Data struct {
		Nodes []*variantNode `json:"nodes"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type cartCreateResponse struct {
	Data struct {
		CartCreate struct {
			Cart *struct {
				ID          string `json:"id"`
				CheckoutURL string `json:"checkoutUrl"`
			} `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartCreate"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type shopifyClient struct {
	cfg    config.CatalogConfig
	http   httpclient.Client
	cache  cache.Cache
	sentry *sentry.Service
	logger *logger.Logger
}

// NewShopifyClient talks to the Shopify Storefront GraphQL API
func NewShopifyClient(cfg *config.Configuration, client httpclient.Client, c cache.Cache, sentry *sentry.Service, logger *logger.Logger) Client {
	return &shopifyClient{
		cfg:    cfg.Catalog,
		http:   client,
		cache:  c,
		sentry: sentry,
		logger: logger,
	}
}

// endpoint accepts a bare shop domain or a full base URL
func (c *shopifyClient) endpoint() string {
	base := strings.TrimSuffix(c.cfg.StoreDomain, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/api/%s/graphql.json", base, c.cfg.APIVersion)
}

func (c *shopifyClient) GetVariants(ctx context.Context, ids []string) (map[string]*Variant, error) {
	out := make(map[string]*Variant, len(ids))
	var missing []string
	for _, id := range lo.Uniq(ids) {
		if v, ok := c.cache.Get(ctx, cache.GenerateKey(cache.PrefixCatalogVariant, id)); ok {
			if variant, ok := v.(*Variant); ok {
				out[id] = variant
				continue
			}
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	var resp variantsResponse
	if err := c.do(ctx, "catalog.get_variants", variantsQuery, map[string]interface{}{"ids": missing}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, graphQLErrors(resp.Errors)
	}

	for _, node := range resp.Data.Nodes {
		// nodes returns null for unknown IDs and {} for non-variant IDs
		if node == nil || node.ID == "" {
			continue
		}
		v := &Variant{
			ID:               node.ID,
			ProductID:        node.Product.ID,
			ProductTitle:     node.Product.Title,
			ProductHandle:    node.Product.Handle,
			Title:            node.Title,
			Price:            node.Price.Amount,
			CurrencyCode:     node.Price.CurrencyCode,
			AvailableForSale: node.AvailableForSale,
		}
		if node.Image != nil {
			v.ImageURL = node.Image.URL
		}
		out[v.ID] = v
		c.cache.Set(ctx, cache.GenerateKey(cache.PrefixCatalogVariant, v.ID), v, c.cfg.CacheTTL)
	}

	c.logger.Debugw("fetched catalog variants",
		"requested", len(ids),
		"fetched", len(missing),
		"found", len(out),
	)
	return out, nil
}

func (c *shopifyClient) CreateCheckout(ctx context.Context, lines []CartLine, email string) (string, error) {
	input := map[string]interface{}{
		"lines": lo.Map(lines, func(l CartLine, _ int) map[string]interface{} {
			return map[string]interface{}{
				"merchandiseId": l.VariantID,
				"quantity":      l.Quantity,
			}
		}),
	}
	if email != "" {
		input["buyerIdentity"] = map[string]interface{}{"email": email}
	}

	var resp cartCreateResponse
	if err := c.do(ctx, "catalog.create_checkout", cartCreateMutation, map[string]interface{}{"input": input}, &resp); err != nil {
		return "", err
	}
	if len(resp.Errors) > 0 {
		return "", graphQLErrors(resp.Errors)
	}

	result := resp.Data.CartCreate
	if len(result.UserErrors) > 0 || result.Cart == nil {
		return "", ierr.NewError("cart creation rejected").
			WithHint("Не удалось создать оплату онлайн").
			WithReportableDetails(map[string]any{
				"user_errors": lo.Map(result.UserErrors, func(e userError, _ int) string { return e.Message }),
			}).
			Mark(ierr.ErrHTTPClient)
	}
	return result.Cart.CheckoutURL, nil
}

func (c *shopifyClient) do(ctx context.Context, operation, query string, variables map[string]interface{}, out interface{}) (err error) {
	span, ctx := c.sentry.StartHTTPClientSpan(ctx, operation, map[string]interface{}{
		"store_domain": c.cfg.StoreDomain,
	})
	defer func() { sentry.FinishSpan(span, err) }()

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    c.endpoint(),
		Headers: map[string]string{
			"X-Shopify-Storefront-Access-Token": c.cfg.StorefrontToken,
			"Accept":                            "application/json",
		},
		Body: body,
	})
	if err != nil {
		c.logger.Errorw("catalog request failed", "operation", operation, "error", err)
		return ierr.WithError(err).
			WithHint("Каталог временно недоступен").
			Mark(ierr.ErrHTTPClient)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return ierr.WithError(err).
			WithHint("Каталог вернул некорректный ответ").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

func graphQLErrors(errs []graphQLError) error {
	return ierr.NewErrorf("catalog query failed: %s", errs[0].Message).
		WithHint("Каталог временно недоступен").
		WithReportableDetails(map[string]any{
			"errors": lo.Map(errs, func(e graphQLError, _ int) string { return e.Message }),
		}).
		Mark(ierr.ErrHTTPClient)
}
