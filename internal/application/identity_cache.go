package application

import (
	"context"
	"fmt"

	"helpdesk-shopify-orders/internal/domain"
	"helpdesk-shopify-orders/internal/infrastructure/metrics"
	"helpdesk-shopify-orders/internal/ports"

	"github.com/rs/zerolog"
)

// IdentityCache keeps the Shopify customer id resolved for a helpdesk customer.
// It is backed by the ShopifyCustomerID field of the customer record and never expires.
// Transient customers (no stored record) keep the id in memory only.
type IdentityCache struct {
	customers ports.CustomerRepository
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewIdentityCache creates a new identity cache
func NewIdentityCache(customers ports.CustomerRepository, m *metrics.Metrics, logger zerolog.Logger) *IdentityCache {
	return &IdentityCache{
		customers: customers,
		metrics:   m,
		logger:    logger,
	}
}

// Get returns the cached Shopify customer id. It never calls Shopify.
func (c *IdentityCache) Get(customer *domain.Customer) (string, bool) {
	if customer == nil || customer.ShopifyCustomerID == "" {
		c.metrics.ObserveIdentityCache(false)
		return "", false
	}
	c.metrics.ObserveIdentityCache(true)
	return customer.ShopifyCustomerID, true
}

// Set records id for customer. Setting the id the customer already carries is a no-op.
func (c *IdentityCache) Set(ctx context.Context, customer *domain.Customer, id string) error {
	if customer == nil || id == "" || customer.ShopifyCustomerID == id {
		return nil
	}

	if !customer.IsTransient() {
		if err := c.customers.SetShopifyCustomerID(ctx, customer.ID, id); err != nil {
			return fmt.Errorf("failed to persist shopify customer id: %w", err)
		}
		c.logger.Debug().
			Str("customer", customer.ID).
			Str("shopifyCustomerId", id).
			Msg("Stored Shopify customer id")
	}

	customer.ShopifyCustomerID = id
	return nil
}
