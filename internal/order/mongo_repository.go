package order

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection("orders"),
	}
}

func (m *mongoRepository) Create(ctx context.Context, o *domain.Order) error {
	if _, err := m.collection.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (m *mongoRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var o domain.Order

	err := m.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &o, nil
}

func (m *mongoRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	filter := bson.M{"customer_id": customerID}
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus is a compare-and-set: the filter pins the current
// status, the update sets the new one and pushes the audit note. Two
// concurrent transitions on the same order cannot both match.
func (m *mongoRepository) UpdateStatus(ctx context.Context, orderID string, from []domain.OrderStatus, to domain.OrderStatus, note domain.AuditNote) error {
	filter := bson.M{
		"_id":    orderID,
		"status": bson.M{"$in": from},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": note.Timestamp,
		},
		"$push": bson.M{"internal_notes": note},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		count, errCount := m.collection.CountDocuments(ctx, bson.M{"_id": orderID})
		if errCount != nil {
			return fmt.Errorf("failed to check order existence: %w", errCount)
		}
		if count == 0 {
			return ErrOrderNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

func (m *mongoRepository) AppendNote(ctx context.Context, orderID string, note domain.AuditNote) error {
	update := bson.M{
		"$push": bson.M{"internal_notes": note},
		"$set":  bson.M{"updated_at": note.Timestamp},
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to append audit note: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}
