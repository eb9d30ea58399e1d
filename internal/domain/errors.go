package domain

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNotConfigured means the scope lacks one of domain, token or API version.
	// It is an expected state ("integration off"), not a failure.
	ErrNotConfigured = errors.New("shopify integration not configured")

	// ErrCustomerNotFound means the customer search matched nobody
	ErrCustomerNotFound = errors.New("shopify customer not found")

	// ErrMailboxNotFound is returned when a mailbox id does not resolve to a record
	ErrMailboxNotFound = errors.New("mailbox not found")
)

// APIError is a failed call to the Shopify Admin API: a non-200 status or a
// transport failure (Status 0).
type APIError struct {
	Status      int
	Description string
	// Details is the API "errors" payload, or the transport error message
	Details string
	URL     string
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("HTTP Status Code: ")
	b.WriteString(strconv.Itoa(e.Status))
	b.WriteString(" (")
	b.WriteString(e.Description)
	b.WriteString(")")
	if e.Details != "" {
		if e.Status == 0 {
			b.WriteString(" | Transport error: ")
		} else {
			b.WriteString(" | API Error: ")
		}
		b.WriteString(e.Details)
	}
	if e.URL != "" {
		b.WriteString(" | Requested resource: ")
		b.WriteString(e.URL)
	}
	return b.String()
}

// IsAPIError reports whether err is (or wraps) an *APIError
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
