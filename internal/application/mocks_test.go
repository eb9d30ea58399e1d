package application

import (
	"context"

	"helpdesk-shopify-orders/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockOrderClient struct {
	mock.Mock
}

func (m *MockOrderClient) SearchCustomer(ctx context.Context, creds domain.Credentials, email string) (string, error) {
	args := m.Called(ctx, creds, email)
	return args.String(0), args.Error(1)
}

func (m *MockOrderClient) ListOrders(ctx context.Context, creds domain.Credentials, customerID string, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, creds, customerID, limit)
	if orders := args.Get(0); orders != nil {
		return orders.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if c := args.Get(0); c != nil {
		return c.(*domain.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) SetShopifyCustomerID(ctx context.Context, customerID string, shopifyCustomerID string) error {
	args := m.Called(ctx, customerID, shopifyCustomerID)
	return args.Error(0)
}

type MockMailboxRepository struct {
	mock.Mock
}

func (m *MockMailboxRepository) GetByID(ctx context.Context, id string) (*domain.Mailbox, error) {
	args := m.Called(ctx, id)
	if mb := args.Get(0); mb != nil {
		return mb.(*domain.Mailbox), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMailboxRepository) SaveShopifySettings(ctx context.Context, id string, settings string) error {
	args := m.Called(ctx, id, settings)
	return args.Error(0)
}

type MockShopVerifier struct {
	mock.Mock
}

func (m *MockShopVerifier) ShopName(ctx context.Context, creds domain.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

var (
	globalCreds = domain.Credentials{
		ShopDomain:  "global.myshopify.com",
		AccessToken: "shpat_global",
		APIVersion:  "2024-01",
	}
	tenantCreds = domain.Credentials{
		ShopDomain:  "tenant.myshopify.com",
		AccessToken: "shpat_tenant",
		APIVersion:  "2024-04",
	}
)

func tenantMailbox(id string) *domain.Mailbox {
	return &domain.Mailbox{
		ID:              id,
		ShopifySettings: `{"shop_domain":"tenant.myshopify.com","access_token":"shpat_tenant","api_version":"2024-04"}`,
	}
}

func authError(url string) *domain.APIError {
	return &domain.APIError{
		Status:      401,
		Description: "Authentication error. Check your Admin API access token and ensure it has the correct permissions.",
		Details:     `"[API] Invalid API key or access token (unrecognized login or wrong password)"`,
		URL:         url,
	}
}
