package domain

import "time"

// Mailbox is the helpdesk tenant. ShopifySettings is the opaque JSON blob holding
// the per-mailbox credentials; an empty blob means the mailbox has no integration.
type Mailbox struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ShopifySettings string    `json:"-"`
	UpdatedAt       time.Time `json:"updated_at"`
}
