package ports

import (
	"context"

	"helpdesk-shopify-orders/internal/domain"
)

// OrderClient defines the two Shopify Admin API calls the order lookup needs.
// Failures are returned as *domain.APIError; a search without a match returns
// domain.ErrCustomerNotFound.
type OrderClient interface {
	// SearchCustomer returns the Shopify customer id of the first customer matching email
	SearchCustomer(ctx context.Context, creds domain.Credentials, email string) (string, error)

	// ListOrders returns up to limit orders of any status for a Shopify customer,
	// in the order the platform returns them
	ListOrders(ctx context.Context, creds domain.Credentials, customerID string, limit int) ([]domain.Order, error)
}

// ShopVerifier fetches the shop profile for a set of credentials
type ShopVerifier interface {
	ShopName(ctx context.Context, creds domain.Credentials) (string, error)
}
