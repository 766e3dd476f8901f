package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"labbook/database"
	"labbook/models"
)

// CatalogRepository defines read access to a merchant's service catalogue.
type CatalogRepository interface {
	ListActiveServices(ctx context.Context, merchantID string) ([]models.Service, error)
	GetServices(ctx context.Context, merchantID string, ids []string) ([]models.Service, error)
}

// MongoCatalogRepo implements CatalogRepository backed by MongoDB.
type MongoCatalogRepo struct{}

func NewMongoCatalogRepo() *MongoCatalogRepo {
	return &MongoCatalogRepo{}
}

func (r *MongoCatalogRepo) ListActiveServices(ctx context.Context, merchantID string) ([]models.Service, error) {
	filter := bson.M{"merchant_id": merchantID, "active": true}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := database.Collection("services").Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cur.Close(ctx)

	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *MongoCatalogRepo) GetServices(ctx context.Context, merchantID string, ids []string) ([]models.Service, error) {
	filter := bson.M{"merchant_id": merchantID, "id": bson.M{"$in": ids}, "active": true}
	cur, err := database.Collection("services").Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer cur.Close(ctx)

	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}
