package ports

import (
	"context"

	"helpdesk-shopify-orders/internal/domain"
)

// MailboxRepository defines persistence for mailboxes and their Shopify settings blob
type MailboxRepository interface {
	// GetByID returns nil, nil when the mailbox does not exist
	GetByID(ctx context.Context, id string) (*domain.Mailbox, error)
	SaveShopifySettings(ctx context.Context, id string, settings string) error
}

// CustomerRepository defines access to the helpdesk customer records
type CustomerRepository interface {
	// GetByID returns nil, nil when the customer does not exist
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// FindByEmail returns nil, nil when no customer owns the email
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	// SetShopifyCustomerID persists the cached platform identity
	SetShopifyCustomerID(ctx context.Context, customerID string, shopifyCustomerID string) error
}
