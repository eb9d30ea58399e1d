package application

import (
	"context"
	"errors"
	"testing"

	"helpdesk-shopify-orders/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestIdentityCache_GetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		repo.On("SetShopifyCustomerID", mock.Anything, "c-1", "42").Return(nil).Once()
		cache := NewIdentityCache(repo, nil, zerolog.Nop())
		customer := &domain.Customer{ID: "c-1", Emails: []string{"a@x.com"}}

		_, ok := cache.Get(customer)
		assert.False(t, ok)

		assert.NoError(t, cache.Set(ctx, customer, "42"))
		id, ok := cache.Get(customer)
		assert.True(t, ok)
		assert.Equal(t, "42", id)

		assert.NoError(t, cache.Set(ctx, customer, "42"))
		repo.AssertNumberOfCalls(t, "SetShopifyCustomerID", 1)
		repo.AssertExpectations(t)
	})

	t.Run("TransientCustomerStaysInMemory", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		cache := NewIdentityCache(repo, nil, zerolog.Nop())
		customer := domain.NewTransientCustomer("a@x.com")

		assert.NoError(t, cache.Set(ctx, customer, "42"))
		id, ok := cache.Get(customer)

		assert.True(t, ok)
		assert.Equal(t, "42", id)
		repo.AssertNotCalled(t, "SetShopifyCustomerID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PersistFailureLeavesCustomerUnchanged", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		repo.On("SetShopifyCustomerID", mock.Anything, "c-1", "42").Return(errors.New("connection reset"))
		cache := NewIdentityCache(repo, nil, zerolog.Nop())
		customer := &domain.Customer{ID: "c-1"}

		err := cache.Set(ctx, customer, "42")

		assert.Error(t, err)
		_, ok := cache.Get(customer)
		assert.False(t, ok)
	})

	t.Run("NilCustomer", func(t *testing.T) {
		cache := NewIdentityCache(new(MockCustomerRepository), nil, zerolog.Nop())

		_, ok := cache.Get(nil)
		assert.False(t, ok)
		assert.NoError(t, cache.Set(ctx, nil, "42"))
	})
}
