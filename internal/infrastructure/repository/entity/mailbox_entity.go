package entity

import (
	"time"

	"helpdesk-shopify-orders/internal/domain"
)

// MongoMailboxDoc represents a helpdesk mailbox in MongoDB.
// Shopify holds the settings blob exactly as saved from the settings form.
type MongoMailboxDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Shopify   string    `bson:"shopify,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoMailboxDoc) ToDomain() *domain.Mailbox {
	return &domain.Mailbox{
		ID:              d.ID,
		Name:            d.Name,
		ShopifySettings: d.Shopify,
		UpdatedAt:       d.UpdatedAt,
	}
}

// MongoMailboxDocFromDomain converts a domain entity to a MongoDB document
func MongoMailboxDocFromDomain(mailbox *domain.Mailbox) *MongoMailboxDoc {
	return &MongoMailboxDoc{
		ID:        mailbox.ID,
		Name:      mailbox.Name,
		Shopify:   mailbox.ShopifySettings,
		UpdatedAt: mailbox.UpdatedAt,
	}
}
