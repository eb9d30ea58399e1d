package ports

import (
	"context"

	"helpdesk-shopify-orders/internal/domain"
)

// OrderPanelProvider is the extension point the helpdesk queries to render the
// recent-orders panel next to a conversation
type OrderPanelProvider interface {
	// Panel builds the synchronous view from cached results only. It returns nil when
	// there is nothing to show (no emails, integration off).
	Panel(ctx context.Context, mailbox *domain.Mailbox, customer *domain.Customer) (*domain.OrderPanel, error)

	// FetchOrders performs the remote lookup for the asynchronous follow-up request
	FetchOrders(ctx context.Context, mailbox *domain.Mailbox, emails []string, customer *domain.Customer) (*domain.OrderPanel, error)
}
