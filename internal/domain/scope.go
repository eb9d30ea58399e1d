package domain

import "fmt"

// ScopeKind distinguishes the credential context a lookup runs under
type ScopeKind int

const (
	// ScopeGlobal uses the process-wide Shopify credentials
	ScopeGlobal ScopeKind = iota
	// ScopeTenant uses the credentials stored on a single mailbox
	ScopeTenant
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeTenant:
		return "tenant"
	default:
		return "unknown"
	}
}

// Scope is the credential context of a lookup: either Global or Tenant(mailbox).
// The zero value is the Global scope.
type Scope struct {
	kind    ScopeKind
	mailbox *Mailbox
}

// GlobalScope returns the scope backed by process-wide configuration
func GlobalScope() Scope {
	return Scope{kind: ScopeGlobal}
}

// TenantScope returns the scope backed by the given mailbox's settings blob
func TenantScope(mailbox *Mailbox) Scope {
	return Scope{kind: ScopeTenant, mailbox: mailbox}
}

// Kind returns the scope kind
func (s Scope) Kind() ScopeKind {
	return s.kind
}

// IsTenant reports whether the scope is mailbox-scoped
func (s Scope) IsTenant() bool {
	return s.kind == ScopeTenant
}

// Mailbox returns the tenant record, nil for the Global scope
func (s Scope) Mailbox() *Mailbox {
	return s.mailbox
}

// TenantID returns the mailbox id for tenant scopes and an empty string otherwise
func (s Scope) TenantID() string {
	if s.kind != ScopeTenant || s.mailbox == nil {
		return ""
	}
	return s.mailbox.ID
}

// OrdersCacheKey derives the Result Cache key for an email under this scope.
// Tenant keys carry the mailbox id so cached orders never leak across mailboxes.
func (s Scope) OrdersCacheKey(email string) string {
	if s.IsTenant() {
		return fmt.Sprintf("shopify_orders_%s_%s", s.TenantID(), email)
	}
	return "shopify_orders_" + email
}

func (s Scope) String() string {
	if s.IsTenant() {
		return "tenant:" + s.TenantID()
	}
	return s.kind.String()
}
