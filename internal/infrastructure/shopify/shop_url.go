package shopify

import (
	"net/url"
	"regexp"
	"strings"
)

var protocolPattern = regexp.MustCompile(`(?i)https?://`)

// StripProtocol removes any http:// or https:// prefix from a configured shop domain
func StripProtocol(shopDomain string) string {
	return protocolPattern.ReplaceAllString(strings.TrimSpace(shopDomain), "")
}

// NormalizeShopURL turns a configured shop domain into the absolute https URL the
// Admin API is called on: protocol stripped, trailing slashes trimmed, https:// prefixed.
func NormalizeShopURL(shopDomain string) string {
	return "https://" + strings.TrimRight(StripProtocol(shopDomain), "/")
}

// IsValidShopDomain reports whether https://<domain> parses as an absolute URL with a host
func IsValidShopDomain(shopDomain string) bool {
	if shopDomain == "" || strings.ContainsAny(shopDomain, " \t\r\n") {
		return false
	}
	u, err := url.Parse("https://" + shopDomain)
	if err != nil {
		return false
	}
	return u.Host != "" && u.User == nil
}
