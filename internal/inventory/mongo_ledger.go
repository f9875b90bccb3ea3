package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

type mongoLedger struct {
	collection *mongo.Collection
}

func NewMongoLedger(db *mongo.Database) Ledger {
	return &mongoLedger{
		collection: db.Collection("inventory"),
	}
}

// Reserve folds the read-check-decrement sequence into one update:
// the filter requires quantity >= qty, the update applies $inc -qty.
// No match means either insufficient stock or no record at all, and
// in both cases nothing was mutated.
func (m *mongoLedger) Reserve(ctx context.Context, productID string, qty int) error {
	filter := bson.M{
		"_id":      productID,
		"quantity": bson.M{"$gte": qty},
	}
	update := bson.M{
		"$inc": bson.M{"quantity": -qty},
		"$set": bson.M{"last_updated": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve inventory: %w", err)
	}
	if result.MatchedCount == 0 {
		count, errCount := m.collection.CountDocuments(ctx, bson.M{"_id": productID})
		if errCount != nil {
			return fmt.Errorf("failed to check inventory record: %w", errCount)
		}
		if count == 0 {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}

	return nil
}

func (m *mongoLedger) Release(ctx context.Context, productID string, qty int) error {
	update := bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"last_updated": time.Now()},
	}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": productID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to release inventory: %w", err)
	}
	return nil
}

func (m *mongoLedger) Get(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord

	err := m.collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get inventory record: %w", err)
	}

	return &record, nil
}

func (m *mongoLedger) SetQuantity(ctx context.Context, productID string, qty int) error {
	update := bson.M{
		"$set": bson.M{
			"quantity":     qty,
			"last_updated": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": productID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to set inventory quantity: %w", err)
	}
	return nil
}
