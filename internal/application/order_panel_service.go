package application

import (
	"context"
	"errors"

	"helpdesk-shopify-orders/internal/domain"
	shopifyinfra "helpdesk-shopify-orders/internal/infrastructure/shopify"
	"helpdesk-shopify-orders/internal/ports"

	"github.com/rs/zerolog"
)

// OrderPanelService renders the recent-orders panel shown next to a conversation.
// The synchronous Panel reads the result cache only; FetchOrders is the follow-up
// request that performs the remote lookup and fills the cache.
type OrderPanelService struct {
	credentials *CredentialsService
	lookup      *OrderLookupService
	results     *ResultCache
	logger      zerolog.Logger
}

// NewOrderPanelService creates a new order panel service
func NewOrderPanelService(
	credentials *CredentialsService,
	lookup *OrderLookupService,
	results *ResultCache,
	logger zerolog.Logger,
) *OrderPanelService {
	return &OrderPanelService{
		credentials: credentials,
		lookup:      lookup,
		results:     results,
		logger:      logger,
	}
}

// Panel builds the panel from cached results. A nil panel means there is nothing to
// render: the customer has no emails or no scope is enabled.
func (s *OrderPanelService) Panel(ctx context.Context, mailbox *domain.Mailbox, customer *domain.Customer) (*domain.OrderPanel, error) {
	if customer == nil || len(customer.Emails) == 0 {
		return nil, nil
	}

	scope := s.credentials.ScopeFor(mailbox)
	creds, err := s.credentials.Resolve(scope)
	if errors.Is(err, domain.ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	panel := newPanel(creds, customer.Emails)
	panel.Loading = true

	for _, email := range customer.Emails {
		orders, ok := s.results.Get(ctx, scope, email)
		if ok && len(orders) > 0 {
			panel.Orders = orders
			panel.Loading = false
			break
		}
	}

	return panel, nil
}

// FetchOrders runs the lookup for the asynchronous panel request. Lookup failures are
// logged and reported in the panel message; the panel itself then shows no orders.
func (s *OrderPanelService) FetchOrders(ctx context.Context, mailbox *domain.Mailbox, emails []string, customer *domain.Customer) (*domain.OrderPanel, error) {
	scope := s.credentials.ScopeFor(mailbox)
	creds, err := s.credentials.Resolve(scope)
	if errors.Is(err, domain.ErrNotConfigured) {
		return newPanel(domain.Credentials{}, emails), nil
	}
	if err != nil {
		return nil, err
	}

	panel := newPanel(creds, emails)

	result, err := s.lookup.Lookup(ctx, scope, emails, customer)
	if err != nil {
		if !domain.IsAPIError(err) {
			return nil, err
		}
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("scope", scope.String()).
			Msg("Shopify order lookup failed")
		panel.Message = err.Error()
		return panel, nil
	}

	if result.HasOrders() {
		panel.Orders = result.Orders
		if err := s.results.Put(ctx, scope, result.Email, result.Orders); err != nil {
			s.logger.Warn().Ctx(ctx).Err(err).Msg("Failed to cache Shopify orders")
		}
	}

	return panel, nil
}

func newPanel(creds domain.Credentials, emails []string) *domain.OrderPanel {
	panel := &domain.OrderPanel{
		Orders: []domain.Order{},
		Emails: emails,
	}
	if creds.ShopDomain != "" {
		panel.ShopURL = shopifyinfra.NormalizeShopURL(creds.ShopDomain)
	}
	if panel.Emails == nil {
		panel.Emails = []string{}
	}
	return panel
}

var _ ports.OrderPanelProvider = (*OrderPanelService)(nil)
