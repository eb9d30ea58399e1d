package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"helpdesk-shopify-orders/internal/domain"
	"helpdesk-shopify-orders/internal/infrastructure/metrics"
	"helpdesk-shopify-orders/internal/ports"

	"github.com/rs/zerolog"
)

// ResultCacheTTL is how long a successful order list is served without a remote call
const ResultCacheTTL = 60 * time.Minute

// ResultCache stores the last successful order list per scope and email.
// Callers read it before running a lookup and write it afterwards; the lookup itself
// never touches it.
type ResultCache struct {
	cache   ports.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewResultCache creates a result cache over cache with the default TTL
func NewResultCache(cache ports.Cache, m *metrics.Metrics, logger zerolog.Logger) *ResultCache {
	return &ResultCache{
		cache:   cache,
		ttl:     ResultCacheTTL,
		metrics: m,
		logger:  logger,
	}
}

// Get returns the cached orders for email under scope. Expired, absent and unreadable
// entries are all reported as absent.
func (c *ResultCache) Get(ctx context.Context, scope domain.Scope, email string) ([]domain.Order, bool) {
	key := scope.OrdersCacheKey(email)

	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			c.logger.Warn().Ctx(ctx).Err(err).Str("key", key).Msg("Failed to read cached orders")
		}
		c.metrics.ObserveResultCache(false)
		return nil, false
	}

	orders, err := decodeOrders(data)
	if err != nil {
		c.logger.Warn().Ctx(ctx).Err(err).Str("key", key).Msg("Discarding unreadable cached orders")
		c.metrics.ObserveResultCache(false)
		return nil, false
	}

	c.metrics.ObserveResultCache(true)
	return orders, true
}

// Put stores orders for email under scope for the cache TTL
func (c *ResultCache) Put(ctx context.Context, scope domain.Scope, email string, orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}

	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to encode orders: %w", err)
	}

	if err := c.cache.Set(ctx, scope.OrdersCacheKey(email), data, c.ttl); err != nil {
		return fmt.Errorf("failed to cache orders: %w", err)
	}
	return nil
}

func decodeOrders(data []byte) ([]domain.Order, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var orders []domain.Order
	if err := decoder.Decode(&orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
