package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection("customers"),
	}
}

func (m *mongoRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &c, nil
}

// CreateIfAbsent relies on the unique _id index: two concurrent
// inserts for the same phone key race on InsertOne and the loser
// simply re-reads the winner's document.
func (m *mongoRepository) CreateIfAbsent(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := m.collection.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return m.GetByID(ctx, c.ID)
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return c, nil
}

func (m *mongoRepository) UpdateContact(ctx context.Context, c *domain.Customer) error {
	update := bson.M{
		"$set": bson.M{
			"full_name":    c.FullName,
			"email":        c.Email,
			"second_phone": c.SecondPhone,
			"address":      c.Address,
			"updated_at":   time.Now(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": c.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update customer contact: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
