package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"helpdesk-shopify-orders/internal/domain"

	"github.com/rs/zerolog"
)

// CredentialsService resolves the Shopify credentials of a scope.
// Global credentials come from process configuration, tenant credentials from the
// settings blob stored on the mailbox. It never mutates either source.
type CredentialsService struct {
	global domain.Credentials
	logger zerolog.Logger
}

// NewCredentialsService creates a new credentials service
func NewCredentialsService(global domain.Credentials, logger zerolog.Logger) *CredentialsService {
	return &CredentialsService{
		global: global,
		logger: logger,
	}
}

// Resolve returns the credentials of scope, or domain.ErrNotConfigured when any of
// the three fields is missing
func (s *CredentialsService) Resolve(scope domain.Scope) (domain.Credentials, error) {
	var creds domain.Credentials

	switch scope.Kind() {
	case domain.ScopeTenant:
		mailbox := scope.Mailbox()
		if mailbox == nil {
			return domain.Credentials{}, domain.ErrNotConfigured
		}
		parsed, err := ParseMailboxSettings(mailbox.ShopifySettings)
		if err != nil {
			s.logger.Debug().
				Err(err).
				Str("mailbox", mailbox.ID).
				Msg("Ignoring unreadable Shopify settings")
		}
		creds = parsed
	default:
		creds = s.global
	}

	if !creds.IsComplete() {
		return domain.Credentials{}, domain.ErrNotConfigured
	}
	return creds, nil
}

// IsEnabled reports whether all three credential fields are set for scope
func (s *CredentialsService) IsEnabled(scope domain.Scope) bool {
	_, err := s.Resolve(scope)
	return err == nil
}

// ScopeFor selects the scope a lookup for mailbox runs under: the mailbox's own
// credentials when they are complete, the Global scope otherwise
func (s *CredentialsService) ScopeFor(mailbox *domain.Mailbox) domain.Scope {
	if mailbox != nil {
		tenant := domain.TenantScope(mailbox)
		if s.IsEnabled(tenant) {
			return tenant
		}
	}
	return domain.GlobalScope()
}

// AnyEnabled reports whether either the mailbox or the Global scope is enabled
func (s *CredentialsService) AnyEnabled(mailbox *domain.Mailbox) bool {
	return s.IsEnabled(s.ScopeFor(mailbox))
}

// ParseMailboxSettings decodes a mailbox settings blob. An empty blob yields empty
// credentials; a malformed one yields empty credentials and the decode error.
func ParseMailboxSettings(blob string) (domain.Credentials, error) {
	if strings.TrimSpace(blob) == "" {
		return domain.Credentials{}, nil
	}

	var creds domain.Credentials
	if err := json.Unmarshal([]byte(blob), &creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("failed to decode shopify settings: %w", err)
	}
	return creds, nil
}
