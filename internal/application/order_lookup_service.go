package application

import (
	"context"
	"errors"
	"strings"

	"helpdesk-shopify-orders/internal/domain"
	"helpdesk-shopify-orders/internal/ports"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("helpdesk-shopify-orders/application")

// OrderLookupService finds the recent Shopify orders of a helpdesk customer.
// One lookup makes at most two sequential calls: a customer search (skipped when the
// identity is cached) and the orders listing.
type OrderLookupService struct {
	credentials *CredentialsService
	client      ports.OrderClient
	identities  *IdentityCache
	maxOrders   int
	logger      zerolog.Logger
}

// NewOrderLookupService creates a new order lookup service
func NewOrderLookupService(
	credentials *CredentialsService,
	client ports.OrderClient,
	identities *IdentityCache,
	maxOrders int,
	logger zerolog.Logger,
) *OrderLookupService {
	return &OrderLookupService{
		credentials: credentials,
		client:      client,
		identities:  identities,
		maxOrders:   maxOrders,
		logger:      logger,
	}
}

// Lookup returns the orders of customer under scope, trying the candidate emails in
// order until one matches a Shopify customer.
//
// A disabled scope, no matching customer and a customer without orders all return an
// empty result and a nil error. The first *domain.APIError ends the lookup and is
// returned as is.
func (s *OrderLookupService) Lookup(ctx context.Context, scope domain.Scope, emails []string, customer *domain.Customer) (result *domain.OrderResult, err error) {
	ctx, span := tracer.Start(ctx, "OrderLookup.Lookup")
	span.SetAttributes(
		attribute.String("shopify.scope", scope.String()),
		attribute.Int("lookup.candidate_emails", len(emails)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	creds, err := s.credentials.Resolve(scope)
	if errors.Is(err, domain.ErrNotConfigured) {
		s.logger.Debug().Ctx(ctx).Str("scope", scope.String()).Msg("Shopify integration not configured")
		return emptyResult(), nil
	}
	if err != nil {
		return nil, err
	}

	if customer == nil {
		customer = domain.NewTransientCustomer(emails...)
	}

	result = emptyResult()

	customerID, cached := s.identities.Get(customer)
	span.SetAttributes(attribute.Bool("lookup.identity_cached", cached))

	if cached {
		result.Email = firstEmail(emails)
	} else {
		customerID, result.Email, err = s.searchCustomer(ctx, creds, emails)
		if err != nil {
			return nil, err
		}
		if customerID == "" {
			return result, nil
		}

		if err := s.identities.Set(ctx, customer, customerID); err != nil {
			s.logger.Warn().
				Ctx(ctx).
				Err(err).
				Str("customer", customer.ID).
				Msg("Failed to cache Shopify customer id")
		}
	}

	orders, err := s.client.ListOrders(ctx, creds, customerID, s.maxOrders)
	if err != nil {
		return nil, err
	}

	result.Orders = orders
	result.CustomerID = customerID
	span.SetAttributes(attribute.Int("lookup.orders", len(orders)))

	return result, nil
}

// searchCustomer walks the candidate emails in order. It stops at the first match or
// the first API error; emails without a match are skipped.
func (s *OrderLookupService) searchCustomer(ctx context.Context, creds domain.Credentials, emails []string) (string, string, error) {
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}

		customerID, err := s.client.SearchCustomer(ctx, creds, email)
		if errors.Is(err, domain.ErrCustomerNotFound) {
			continue
		}
		if err != nil {
			return "", "", err
		}
		return customerID, email, nil
	}

	return "", "", nil
}

func emptyResult() *domain.OrderResult {
	return &domain.OrderResult{Orders: []domain.Order{}}
}

func firstEmail(emails []string) string {
	for _, email := range emails {
		if email = strings.TrimSpace(email); email != "" {
			return email
		}
	}
	return ""
}
