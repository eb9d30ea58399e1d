package domain

// Order is a Shopify order passed through as returned by the Admin API.
// The lookup never inspects it; numbers are kept as json.Number so ids survive round trips.
type Order map[string]interface{}

// OrderResult is the successful outcome of a lookup.
// An empty Orders slice is a valid result: integration off, no platform customer, or no orders.
type OrderResult struct {
	Orders []Order
	// Email is the candidate email the identity was resolved for (the first candidate when
	// the identity came from the cache)
	Email string
	// CustomerID is the Shopify customer id the orders were listed for
	CustomerID string
}

// HasOrders reports whether the result carries at least one order
func (r *OrderResult) HasOrders() bool {
	return r != nil && len(r.Orders) > 0
}

// OrderPanel is what the conversation sidebar renders
type OrderPanel struct {
	Orders  []Order `json:"orders"`
	Loading bool    `json:"loading"`
	ShopURL string  `json:"shop_url"`
	// Emails are the candidate emails the panel was built for, used by the async fetch
	Emails []string `json:"customer_emails"`
	// Message carries a lookup error on the async path; it is never shown to agents as a failure
	Message string `json:"msg,omitempty"`
}
