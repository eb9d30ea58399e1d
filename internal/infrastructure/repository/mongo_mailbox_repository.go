package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"helpdesk-shopify-orders/internal/domain"
	"helpdesk-shopify-orders/internal/infrastructure/repository/entity"
	"helpdesk-shopify-orders/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMailboxRepository implements MailboxRepository using MongoDB.
// The Shopify settings live on the mailbox document as a JSON string under "shopify".
type MongoMailboxRepository struct {
	collection *mongo.Collection
}

// NewMongoMailboxRepository creates a new MongoDB mailbox repository
func NewMongoMailboxRepository(db *mongo.Database) ports.MailboxRepository {
	return &MongoMailboxRepository{
		collection: db.Collection("mailboxes"),
	}
}

// GetByID retrieves a mailbox by id
func (r *MongoMailboxRepository) GetByID(ctx context.Context, id string) (*domain.Mailbox, error) {
	var doc entity.MongoMailboxDoc

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mailbox: %w", err)
	}

	return doc.ToDomain(), nil
}

// SaveShopifySettings replaces the settings blob of an existing mailbox
func (r *MongoMailboxRepository) SaveShopifySettings(ctx context.Context, id string, settings string) error {
	update := bson.M{
		"$set": bson.M{
			"shopify":   settings,
			"updatedAt": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to save shopify settings: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMailboxNotFound, id)
	}

	return nil
}
