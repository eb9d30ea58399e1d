package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"helpdesk-shopify-orders/internal/domain"
	shopifyinfra "helpdesk-shopify-orders/internal/infrastructure/shopify"
	"helpdesk-shopify-orders/internal/ports"

	"github.com/rs/zerolog"
)

// Notice levels returned by settings operations
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// TestEmail is the address looked up when testing a set of credentials
const TestEmail = "test@example.org"

// SettingsNotice is the flash message shown after saving or testing settings
type SettingsNotice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// MailboxSettingsInput is the settings form of one mailbox
type MailboxSettingsInput struct {
	ShopDomain  string `json:"shop_domain"`
	AccessToken string `json:"access_token"`
	APIVersion  string `json:"api_version"`
}

// SettingsService manages the per-mailbox Shopify settings and credential tests
type SettingsService struct {
	mailboxes   ports.MailboxRepository
	credentials *CredentialsService
	lookup      *OrderLookupService
	verifier    ports.ShopVerifier
	logger      zerolog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	mailboxes ports.MailboxRepository,
	credentials *CredentialsService,
	lookup *OrderLookupService,
	verifier ports.ShopVerifier,
	logger zerolog.Logger,
) *SettingsService {
	return &SettingsService{
		mailboxes:   mailboxes,
		credentials: credentials,
		lookup:      lookup,
		verifier:    verifier,
		logger:      logger,
	}
}

// GetMailbox retrieves a mailbox, domain.ErrMailboxNotFound when it does not exist
func (s *SettingsService) GetMailbox(ctx context.Context, mailboxID string) (*domain.Mailbox, error) {
	mailbox, err := s.mailboxes.GetByID(ctx, mailboxID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mailbox: %w", err)
	}
	if mailbox == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMailboxNotFound, mailboxID)
	}
	return mailbox, nil
}

// GetMailboxSettings returns the stored settings of a mailbox; unset fields are empty
func (s *SettingsService) GetMailboxSettings(ctx context.Context, mailboxID string) (*MailboxSettingsInput, error) {
	mailbox, err := s.GetMailbox(ctx, mailboxID)
	if err != nil {
		return nil, err
	}

	creds, err := ParseMailboxSettings(mailbox.ShopifySettings)
	if err != nil {
		s.logger.Warn().Err(err).Str("mailbox", mailboxID).Msg("Stored Shopify settings are unreadable")
	}

	return &MailboxSettingsInput{
		ShopDomain:  creds.ShopDomain,
		AccessToken: creds.AccessToken,
		APIVersion:  creds.APIVersion,
	}, nil
}

// SaveMailboxSettings sanitizes and stores the settings of a mailbox. When all three
// fields are present the credentials are tested right away.
func (s *SettingsService) SaveMailboxSettings(ctx context.Context, mailboxID string, input MailboxSettingsInput) (*SettingsNotice, error) {
	mailbox, err := s.GetMailbox(ctx, mailboxID)
	if err != nil {
		return nil, err
	}

	creds := domain.Credentials{
		ShopDomain:  SanitizeShopDomain(input.ShopDomain),
		AccessToken: strings.TrimSpace(input.AccessToken),
		APIVersion:  strings.TrimSpace(input.APIVersion),
	}

	blob, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shopify settings: %w", err)
	}

	if err := s.mailboxes.SaveShopifySettings(ctx, mailbox.ID, string(blob)); err != nil {
		return nil, err
	}
	mailbox.ShopifySettings = string(blob)

	s.logger.Info().
		Str("mailbox", mailbox.ID).
		Str("shop", creds.ShopDomain).
		Msg("Shopify settings saved")

	if !creds.IsComplete() {
		return &SettingsNotice{Level: NoticeSuccess, Message: "Settings updated"}, nil
	}

	return s.testConnection(ctx, domain.TenantScope(mailbox), creds), nil
}

// TestGlobalConnection tests the process-wide credentials
func (s *SettingsService) TestGlobalConnection(ctx context.Context) (*SettingsNotice, error) {
	scope := domain.GlobalScope()
	creds, err := s.credentials.Resolve(scope)
	if err != nil {
		return &SettingsNotice{
			Level:   NoticeError,
			Message: "Shopify API credentials are not configured",
		}, nil
	}

	return s.testConnection(ctx, scope, creds), nil
}

// testConnection looks up the test email for a throwaway customer. The lookup result
// is discarded; only the presence of an API error matters.
func (s *SettingsService) testConnection(ctx context.Context, scope domain.Scope, creds domain.Credentials) *SettingsNotice {
	_, err := s.lookup.Lookup(ctx, scope, []string{TestEmail}, domain.NewTransientCustomer(TestEmail))
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("scope", scope.String()).
			Msg("Shopify credential test failed")
		return &SettingsNotice{
			Level:   NoticeError,
			Message: "Error occurred connecting to the API: " + err.Error(),
		}
	}

	message := "Successfully connected to the API."
	if s.verifier != nil {
		name, err := s.verifier.ShopName(ctx, creds)
		if err != nil {
			s.logger.Warn().Err(err).Str("shop", creds.ShopDomain).Msg("Failed to read shop name")
		} else if name != "" {
			message = fmt.Sprintf("%s Shop: %s", message, name)
		}
	}

	return &SettingsNotice{Level: NoticeSuccess, Message: message}
}

// SanitizeShopDomain strips any protocol and trailing slash from a submitted shop
// domain and clears it when https://<domain> is not a valid URL
func SanitizeShopDomain(shopDomain string) string {
	domainOnly := strings.TrimRight(shopifyinfra.StripProtocol(shopDomain), "/")
	if domainOnly == "" || !shopifyinfra.IsValidShopDomain(domainOnly) {
		return ""
	}
	return domainOnly
}
