package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"helpdesk-shopify-orders/internal/domain"
	"helpdesk-shopify-orders/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, domain.Credentials) {
	t.Helper()
	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	creds := domain.Credentials{
		ShopDomain:  strings.TrimPrefix(server.URL, "https://"),
		AccessToken: "shpat_test_token",
		APIVersion:  "2024-01",
	}
	return server, creds
}

func requireAPIError(t *testing.T, err error) *domain.APIError {
	t.Helper()
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr), "expected *domain.APIError, got %v", err)
	return apiErr
}

func TestClient_SearchCustomer(t *testing.T) {
	t.Run("ReturnsFirstCustomerID", func(t *testing.T) {
		var gotReq *http.Request
		server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotReq = r
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"customers":[{"id":6502870302914,"email":"jane@example.com"},{"id":2}]}`))
		})

		c := NewClient(server.Client(), "", nil, zerolog.Nop())
		id, err := c.SearchCustomer(context.Background(), creds, "jane+vip@example.com")

		require.NoError(t, err)
		assert.Equal(t, "6502870302914", id)

		require.NotNil(t, gotReq)
		assert.Equal(t, http.MethodGet, gotReq.Method)
		assert.Equal(t, "/admin/api/2024-01/customers/search.json", gotReq.URL.Path)
		assert.Equal(t, "query=email:jane%2Bvip%40example.com", gotReq.URL.RawQuery)
		assert.Equal(t, "shpat_test_token", gotReq.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
		assert.Equal(t, DefaultUserAgent, gotReq.Header.Get("User-Agent"))
	})

	t.Run("NoMatch", func(t *testing.T) {
		server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"customers":[]}`))
		})

		c := NewClient(server.Client(), "", nil, zerolog.Nop())
		_, err := c.SearchCustomer(context.Background(), creds, "nobody@example.com")

		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
		assert.False(t, domain.IsAPIError(err))
	})

	t.Run("CustomUserAgent", func(t *testing.T) {
		var agent string
		server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(`{"customers":[{"id":"gid-1"}]}`))
		})

		c := NewClient(server.Client(), "Acme-Helpdesk/2.0", nil, zerolog.Nop())
		id, err := c.SearchCustomer(context.Background(), creds, "a@example.com")

		require.NoError(t, err)
		assert.Equal(t, "gid-1", id)
		assert.Equal(t, "Acme-Helpdesk/2.0", agent)
	})

	t.Run("ProtocolInConfiguredDomain", func(t *testing.T) {
		server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"customers":[{"id":7}]}`))
		})
		creds.ShopDomain = "HTTPS://" + creds.ShopDomain + "/"

		c := NewClient(server.Client(), "", nil, zerolog.Nop())
		id, err := c.SearchCustomer(context.Background(), creds, "a@example.com")

		require.NoError(t, err)
		assert.Equal(t, "7", id)
	})
}

func TestClient_ListOrders(t *testing.T) {
	t.Run("PassesOrdersThrough", func(t *testing.T) {
		var gotReq *http.Request
		server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotReq = r
			_, _ = w.Write([]byte(`{"orders":[{"id":900,"name":"#1001","total_price":"19.99","line_items":[{"title":"Mug"}]},{"id":901}]}`))
		})

		c := NewClient(server.Client(), "", nil, zerolog.Nop())
		orders, err := c.ListOrders(context.Background(), creds, "42", 5)

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, json.Number("900"), orders[0]["id"])
		assert.Equal(t, "#1001", orders[0]["name"])
		assert.Equal(t, "19.99", orders[0]["total_price"])
		assert.Len(t, orders[0]["line_items"], 1)
		assert.Equal(t, json.Number("901"), orders[1]["id"])

		require.NotNil(t, gotReq)
		assert.Equal(t, "/admin/api/2024-01/customers/42/orders.json", gotReq.URL.Path)
		assert.Equal(t, "any", gotReq.URL.Query().Get("status"))
		assert.Equal(t, "5", gotReq.URL.Query().Get("limit"))
	})

	t.Run("DefaultLimit", func(t *testing.T) {
		var limit string
		server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			limit = r.URL.Query().Get("limit")
			_, _ = w.Write([]byte(`{"orders":[]}`))
		})

		c := NewClient(server.Client(), "", nil, zerolog.Nop())
		orders, err := c.ListOrders(context.Background(), creds, "42", 0)

		require.NoError(t, err)
		assert.Empty(t, orders)
		assert.Equal(t, "5", limit)
	})

	t.Run("MissingOrdersMember", func(t *testing.T) {
		server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		c := NewClient(server.Client(), "", nil, zerolog.Nop())
		orders, err := c.ListOrders(context.Background(), creds, "42", 5)

		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		description string
		details     string
	}{
		{
			name:        "BadRequest",
			status:      http.StatusBadRequest,
			body:        `{"errors":{"query":["is invalid"]}}`,
			description: "Bad request",
			details:     `{"query":["is invalid"]}`,
		},
		{
			name:        "Unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"errors":"[API] Invalid API key or access token (unrecognized login or wrong password)"}`,
			description: "Authentication error. Check your Admin API access token and ensure it has the correct permissions.",
			details:     `"[API] Invalid API key or access token (unrecognized login or wrong password)"`,
		},
		{
			name:        "Forbidden",
			status:      http.StatusForbidden,
			body:        `{"errors":"[API] This action requires merchant approval for read_orders scope."}`,
			description: "Authentication error. Check your Admin API access token and ensure it has the correct permissions.",
			details:     `"[API] This action requires merchant approval for read_orders scope."`,
		},
		{
			name:        "NotFound",
			status:      http.StatusNotFound,
			body:        `{"errors":"Not Found"}`,
			description: "Shop not found. Verify your shop domain is correct (e.g., mystore.myshopify.com)",
			details:     `"Not Found"`,
		},
		{
			name:        "RateLimited",
			status:      http.StatusTooManyRequests,
			body:        `{"errors":"Exceeded 2 calls per second for api client. Reduce request rates to resume uninterrupted service."}`,
			description: "Shopify API rate limit exceeded. Please try again in a moment.",
			details:     `"Exceeded 2 calls per second for api client. Reduce request rates to resume uninterrupted service."`,
		},
		{
			name:        "ServerError",
			status:      http.StatusInternalServerError,
			body:        `not json`,
			description: "Internal shop error",
			details:     "",
		},
		{
			name:        "Unmapped",
			status:      http.StatusTeapot,
			body:        `{}`,
			description: "Unknown error",
			details:     "",
		},
		{
			name:        "CreatedIsNotSuccess",
			status:      http.StatusCreated,
			body:        `{"customers":[{"id":1}]}`,
			description: "Unknown error",
			details:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			c := NewClient(server.Client(), "", nil, zerolog.Nop())
			_, err := c.SearchCustomer(context.Background(), creds, "a@example.com")

			apiErr := requireAPIError(t, err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.description, apiErr.Description)
			assert.Equal(t, tt.details, apiErr.Details)
			assert.Equal(t, server.URL+"/admin/api/2024-01/customers/search.json?query=email:a%40example.com", apiErr.URL)
		})
	}
}

func TestClient_UnauthorizedAndForbiddenShareDescription(t *testing.T) {
	descriptions := make([]string, 0, 2)
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		c := NewClient(server.Client(), "", nil, zerolog.Nop())
		_, err := c.ListOrders(context.Background(), creds, "42", 5)
		descriptions = append(descriptions, requireAPIError(t, err).Description)
	}
	assert.Equal(t, descriptions[0], descriptions[1])
}

func TestClient_InvalidJSONOnSuccess(t *testing.T) {
	server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	c := NewClient(server.Client(), "", nil, zerolog.Nop())
	_, err := c.ListOrders(context.Background(), creds, "42", 5)

	apiErr := requireAPIError(t, err)
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Equal(t, "Invalid JSON response", apiErr.Description)
}

func TestClient_TransportError(t *testing.T) {
	server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	httpClient := server.Client()
	server.Close()

	c := NewClient(httpClient, "", nil, zerolog.Nop())
	_, err := c.SearchCustomer(context.Background(), creds, "a@example.com")

	apiErr := requireAPIError(t, err)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, DescribeStatus(0), apiErr.Description)
	assert.NotEmpty(t, apiErr.Details)
	assert.Contains(t, err.Error(), "HTTP Status Code: 0 (Shop not found.")
	assert.Contains(t, err.Error(), "| Requested resource: https://")
}

func TestClient_RecordsMetrics(t *testing.T) {
	server, creds := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/customers/search.json") && strings.Contains(r.URL.RawQuery, "known"):
			_, _ = w.Write([]byte(`{"customers":[{"id":42}]}`))
		case strings.HasSuffix(r.URL.Path, "/customers/search.json"):
			_, _ = w.Write([]byte(`{"customers":[]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	reg := prometheus.NewRegistry()
	c := NewClient(server.Client(), "", metrics.New(reg), zerolog.Nop())

	_, err := c.SearchCustomer(context.Background(), creds, "known@example.com")
	require.NoError(t, err)
	_, err = c.SearchCustomer(context.Background(), creds, "other@example.com")
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
	_, err = c.ListOrders(context.Background(), creds, "42", 5)
	require.Error(t, err)

	expected := `
# HELP shopify_remote_calls_total Shopify Admin API calls by endpoint and outcome
# TYPE shopify_remote_calls_total counter
shopify_remote_calls_total{endpoint="customer_orders",outcome="error"} 1
shopify_remote_calls_total{endpoint="customers_search",outcome="not_found"} 1
shopify_remote_calls_total{endpoint="customers_search",outcome="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "shopify_remote_calls_total"))
}
