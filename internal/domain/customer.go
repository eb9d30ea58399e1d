package domain

// Customer is the helpdesk-owned customer record. The order lookup only reads and
// writes ShopifyCustomerID, the cached platform identity.
type Customer struct {
	ID                string   `json:"id"`
	Emails            []string `json:"emails"`
	ShopifyCustomerID string   `json:"shopify_customer_id,omitempty"`
}

// NewTransientCustomer returns a customer that is not backed by a stored record.
// Identities resolved for it live only as long as the value.
func NewTransientCustomer(emails ...string) *Customer {
	return &Customer{Emails: emails}
}

// IsTransient reports whether the customer has no stored record
func (c *Customer) IsTransient() bool {
	return c == nil || c.ID == ""
}
