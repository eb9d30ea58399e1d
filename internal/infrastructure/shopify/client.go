package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"helpdesk-shopify-orders/internal/domain"
	"helpdesk-shopify-orders/internal/infrastructure/metrics"
	"helpdesk-shopify-orders/internal/ports"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultUserAgent identifies the integration when no user agent is configured
	DefaultUserAgent = "Helpdesk-Shopify-Integration"

	// DefaultMaxOrders is the page size of the orders-by-customer call
	DefaultMaxOrders = 5

	endpointCustomerSearch = "customers_search"
	endpointCustomerOrders = "customer_orders"

	invalidResponseDescription = "Invalid JSON response"
)

var tracer = otel.Tracer("helpdesk-shopify-orders/shopify")

type client struct {
	httpClient *http.Client
	userAgent  string
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClient creates the Admin API order client. httpClient carries the shared
// timeout and redirect policy; every call is a single attempt.
func NewClient(httpClient *http.Client, userAgent string, m *metrics.Metrics, logger zerolog.Logger) ports.OrderClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &client{
		httpClient: httpClient,
		userAgent:  userAgent,
		metrics:    m,
		logger:     logger,
	}
}

// SearchCustomer looks the email up through customers/search.json and returns the
// id of the first match
func (c *client) SearchCustomer(ctx context.Context, creds domain.Credentials, email string) (string, error) {
	requestURL := fmt.Sprintf("%s/admin/api/%s/customers/search.json?query=email:%s",
		NormalizeShopURL(creds.ShopDomain),
		creds.APIVersion,
		url.QueryEscape(email),
	)

	start := time.Now()
	payload, err := c.get(ctx, endpointCustomerSearch, creds, requestURL)
	if err != nil {
		c.metrics.ObserveRemoteCall(endpointCustomerSearch, metrics.OutcomeError, time.Since(start))
		return "", err
	}

	customerID := firstCustomerID(payload)
	if customerID == "" {
		c.metrics.ObserveRemoteCall(endpointCustomerSearch, metrics.OutcomeNotFound, time.Since(start))
		c.logger.Debug().
			Str("shop", creds.ShopDomain).
			Msg("No Shopify customer matches email")
		return "", domain.ErrCustomerNotFound
	}

	c.metrics.ObserveRemoteCall(endpointCustomerSearch, metrics.OutcomeSuccess, time.Since(start))
	return customerID, nil
}

// ListOrders fetches the most recent orders of any status for a Shopify customer
func (c *client) ListOrders(ctx context.Context, creds domain.Credentials, customerID string, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = DefaultMaxOrders
	}

	requestURL := fmt.Sprintf("%s/admin/api/%s/customers/%s/orders.json?status=any&limit=%d",
		NormalizeShopURL(creds.ShopDomain),
		creds.APIVersion,
		url.PathEscape(customerID),
		limit,
	)

	start := time.Now()
	payload, err := c.get(ctx, endpointCustomerOrders, creds, requestURL)
	if err != nil {
		c.metrics.ObserveRemoteCall(endpointCustomerOrders, metrics.OutcomeError, time.Since(start))
		return nil, err
	}

	c.metrics.ObserveRemoteCall(endpointCustomerOrders, metrics.OutcomeSuccess, time.Since(start))
	return extractOrders(payload), nil
}

// get performs one GET against the Admin API and decodes the JSON body.
// Every failure comes back as *domain.APIError carrying the requested URL.
func (c *client) get(ctx context.Context, endpoint string, creds domain.Credentials, requestURL string) (payload map[string]interface{}, err error) {
	ctx, span := tracer.Start(ctx, "shopify."+endpoint)
	span.SetAttributes(attribute.String("shopify.shop", creds.ShopDomain), attribute.String("shopify.api_version", creds.APIVersion))

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if reqErr != nil {
		return nil, c.fail(creds, &domain.APIError{
			Status:      0,
			Description: DescribeStatus(0),
			Details:     reqErr.Error(),
			URL:         requestURL,
		})
	}
	req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, c.fail(creds, &domain.APIError{
			Status:      0,
			Description: DescribeStatus(0),
			Details:     transportMessage(doErr),
			URL:         requestURL,
		})
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, c.fail(creds, &domain.APIError{
			Status:      resp.StatusCode,
			Description: DescribeStatus(resp.StatusCode),
			Details:     readErr.Error(),
			URL:         requestURL,
		})
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.fail(creds, &domain.APIError{
			Status:      resp.StatusCode,
			Description: DescribeStatus(resp.StatusCode),
			Details:     apiErrorDetails(body),
			URL:         requestURL,
		})
	}

	payload, decodeErr := decodeJSON(body)
	if decodeErr != nil {
		return nil, c.fail(creds, &domain.APIError{
			Status:      resp.StatusCode,
			Description: invalidResponseDescription,
			Details:     decodeErr.Error(),
			URL:         requestURL,
		})
	}

	c.logger.Debug().
		Str("shop", creds.ShopDomain).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Msg("Shopify API call succeeded")

	return payload, nil
}

func (c *client) fail(creds domain.Credentials, apiErr *domain.APIError) error {
	c.logger.Error().
		Err(apiErr).
		Str("shop", creds.ShopDomain).
		Str("token", creds.MaskedToken()).
		Int("status", apiErr.Status).
		Msg("Shopify API error")
	return apiErr
}

func decodeJSON(body []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload map[string]interface{}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload, nil
}

// apiErrorDetails returns the JSON-encoded "errors" member of an error body, if any
func apiErrorDetails(body []byte) string {
	payload, err := decodeJSON(body)
	if err != nil {
		return ""
	}
	apiErrors, ok := payload["errors"]
	if !ok || apiErrors == nil {
		return ""
	}
	encoded, err := json.Marshal(apiErrors)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

func firstCustomerID(payload map[string]interface{}) string {
	customers, ok := payload["customers"].([]interface{})
	if !ok || len(customers) == 0 {
		return ""
	}
	first, ok := customers[0].(map[string]interface{})
	if !ok {
		return ""
	}
	return formatID(first["id"])
}

func formatID(raw interface{}) string {
	switch v := raw.(type) {
	case json.Number:
		return v.String()
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func extractOrders(payload map[string]interface{}) []domain.Order {
	raw, ok := payload["orders"].([]interface{})
	if !ok {
		return []domain.Order{}
	}

	orders := make([]domain.Order, 0, len(raw))
	for _, item := range raw {
		if order, ok := item.(map[string]interface{}); ok {
			orders = append(orders, domain.Order(order))
		}
	}
	return orders
}
