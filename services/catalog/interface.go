package catalog

import (
	"context"

	"labbook/models"
)

// CatalogService resolves the services a merchant offers. Pure reads.
type CatalogService interface {
	ListServices(ctx context.Context, merchantID string) ([]models.Service, error)
	GetServices(ctx context.Context, merchantID string, ids []string) ([]models.Service, error)
}

// LocationDirectory resolves active service locations and their scheduling
// policies. Pure reads.
type LocationDirectory interface {
	ListLocations(ctx context.Context, merchantID string) ([]models.Location, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
}
