package shopify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"helpdesk-shopify-orders/internal/domain"
	"helpdesk-shopify-orders/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// shopVerifier reads the shop profile through go-shopify. It is only used on the
// settings path to confirm which store a set of credentials points at.
type shopVerifier struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewShopVerifier creates a ShopVerifier sharing the given HTTP client
func NewShopVerifier(httpClient *http.Client, logger zerolog.Logger) ports.ShopVerifier {
	return &shopVerifier{
		httpClient: httpClient,
		logger:     logger,
	}
}

// verifiableShopName returns the host go-shopify will call for creds. go-shopify
// appends .myshopify.com to any other host, so custom domains are not verifiable.
func verifiableShopName(creds domain.Credentials) (string, bool) {
	shopName := strings.TrimRight(StripProtocol(creds.ShopDomain), "/")
	return shopName, goshopify.ShopFullName(shopName) == shopName
}

// createClient builds a go-shopify client for one set of credentials
func (v *shopVerifier) createClient(shopName string, creds domain.Credentials) (*goshopify.Client, error) {
	opts := []goshopify.Option{goshopify.WithVersion(creds.APIVersion)}
	if v.httpClient != nil {
		opts = append(opts, goshopify.WithHTTPClient(v.httpClient))
	}

	client, err := goshopify.NewClient(goshopify.App{}, shopName, creds.AccessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// ShopName returns the display name of the shop the credentials belong to.
// Shops configured under a custom domain yield an empty name and no error.
func (v *shopVerifier) ShopName(ctx context.Context, creds domain.Credentials) (string, error) {
	if !creds.IsComplete() {
		return "", domain.ErrNotConfigured
	}

	shopName, ok := verifiableShopName(creds)
	if !ok {
		v.logger.Debug().
			Str("shop", creds.ShopDomain).
			Msg("Skipping shop profile lookup for non-myshopify domain")
		return "", nil
	}

	client, err := v.createClient(shopName, creds)
	if err != nil {
		return "", err
	}

	shop, err := client.Shop.Get(ctx, nil)
	if err != nil {
		v.logger.Warn().
			Err(err).
			Str("shop", creds.ShopDomain).
			Msg("Failed to read shop profile")
		return "", fmt.Errorf("failed to get shop: %w", err)
	}

	if shop.Name != "" {
		return shop.Name, nil
	}
	return shop.Domain, nil
}
