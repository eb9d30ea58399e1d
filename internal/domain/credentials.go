package domain

import "strings"

// Credentials holds what is needed to call the Shopify Admin API for one shop.
// ShopDomain is kept as configured (no protocol, no trailing slash); it is turned
// into an absolute URL only when a request is built.
type Credentials struct {
	ShopDomain  string `json:"shop_domain"`
	AccessToken string `json:"access_token"`
	APIVersion  string `json:"api_version"`
}

// IsComplete reports whether all three fields are set
func (c Credentials) IsComplete() bool {
	return strings.TrimSpace(c.ShopDomain) != "" &&
		strings.TrimSpace(c.AccessToken) != "" &&
		strings.TrimSpace(c.APIVersion) != ""
}

// MaskedToken returns the first characters of the token for log lines
func (c Credentials) MaskedToken() string {
	if len(c.AccessToken) <= 4 {
		return "****"
	}
	return c.AccessToken[:4] + "****"
}
