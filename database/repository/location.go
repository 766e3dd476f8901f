package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"labbook/database"
	"labbook/models"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("not found")

// LocationRepository defines read access to a merchant's service locations.
type LocationRepository interface {
	ListActiveLocations(ctx context.Context, merchantID string) ([]models.Location, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
}

// MongoLocationRepo implements LocationRepository backed by MongoDB.
type MongoLocationRepo struct{}

func NewMongoLocationRepo() *MongoLocationRepo {
	return &MongoLocationRepo{}
}

func (r *MongoLocationRepo) ListActiveLocations(ctx context.Context, merchantID string) ([]models.Location, error) {
	filter := bson.M{"merchant_id": merchantID, "active": true}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := database.Collection("locations").Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer cur.Close(ctx)

	var locations []models.Location
	if err := cur.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locations, nil
}

func (r *MongoLocationRepo) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	var loc models.Location
	err := database.Collection("locations").FindOne(ctx, bson.M{"id": id}).Decode(&loc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch location %s: %w", id, err)
	}
	return &loc, nil
}
