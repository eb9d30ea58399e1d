package shopify

// DescribeStatus maps an Admin API HTTP status to the text shown to administrators.
// Status 0 is a request that never got a response.
func DescribeStatus(code int) string {
	switch code {
	case 400:
		return "Bad request"
	case 401, 403:
		return "Authentication error. Check your Admin API access token and ensure it has the correct permissions."
	case 0, 404:
		return "Shop not found. Verify your shop domain is correct (e.g., mystore.myshopify.com)"
	case 429:
		return "Shopify API rate limit exceeded. Please try again in a moment."
	case 500:
		return "Internal shop error"
	default:
		return "Unknown error"
	}
}
