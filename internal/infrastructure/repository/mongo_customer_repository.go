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

// ErrCustomerRecordNotFound is returned when an update targets a customer id with no record
var ErrCustomerRecordNotFound = errors.New("customer record not found")

// MongoCustomerRepository implements CustomerRepository using MongoDB
type MongoCustomerRepository struct {
	collection *mongo.Collection
}

// NewMongoCustomerRepository creates a new MongoDB customer repository
func NewMongoCustomerRepository(db *mongo.Database) *MongoCustomerRepository {
	return &MongoCustomerRepository{
		collection: db.Collection("customers"),
	}
}

// EnsureIndexes creates the index FindByEmail relies on
func (r *MongoCustomerRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "emails", Value: 1}},
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create customer email index: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by id
func (r *MongoCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail retrieves the customer owning an email address
func (r *MongoCustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"emails": email})
}

func (r *MongoCustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	var doc entity.MongoCustomerDoc

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return doc.ToDomain(), nil
}

// SetShopifyCustomerID stores the Shopify identity on the customer record
func (r *MongoCustomerRepository) SetShopifyCustomerID(ctx context.Context, customerID string, shopifyCustomerID string) error {
	update := bson.M{
		"$set": bson.M{
			"shopifyCustomerId": shopifyCustomerID,
			"updatedAt":         time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": customerID}, update)
	if err != nil {
		return fmt.Errorf("failed to set shopify customer id: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrCustomerRecordNotFound, customerID)
	}

	return nil
}

var _ ports.CustomerRepository = (*MongoCustomerRepository)(nil)
