package entity

import (
	"time"

	"helpdesk-shopify-orders/internal/domain"
)

// MongoCustomerDoc represents a helpdesk customer in MongoDB
type MongoCustomerDoc struct {
	ID                string    `bson:"_id"`
	Emails            []string  `bson:"emails"`
	ShopifyCustomerID string    `bson:"shopifyCustomerId,omitempty"`
	UpdatedAt         time.Time `bson:"updatedAt,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoCustomerDoc) ToDomain() *domain.Customer {
	emails := d.Emails
	if emails == nil {
		emails = []string{}
	}
	return &domain.Customer{
		ID:                d.ID,
		Emails:            emails,
		ShopifyCustomerID: d.ShopifyCustomerID,
	}
}

// MongoCustomerDocFromDomain converts a domain entity to a MongoDB document
func MongoCustomerDocFromDomain(customer *domain.Customer) *MongoCustomerDoc {
	return &MongoCustomerDoc{
		ID:                customer.ID,
		Emails:            customer.Emails,
		ShopifyCustomerID: customer.ShopifyCustomerID,
	}
}
