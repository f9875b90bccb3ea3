package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) ProductReader {
	return &mongoRepository{
		collection: db.Collection("products"),
	}
}

func (m *mongoRepository) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product

	filter := bson.M{"_id": productID}
	err := m.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}
