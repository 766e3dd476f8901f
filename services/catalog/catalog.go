package catalog

import (
	"context"
	"fmt"

	"labbook/database/repository"
	"labbook/models"
)

// DefaultCatalogService implements CatalogService over the catalogue repository.
type DefaultCatalogService struct {
	Repo repository.CatalogRepository
}

func (s *DefaultCatalogService) ListServices(ctx context.Context, merchantID string) ([]models.Service, error) {
	return s.Repo.ListActiveServices(ctx, merchantID)
}

// GetServices resolves the given ids against the active catalogue. Every
// requested id must resolve; a missing or inactive service is an error so a
// stale selection cannot slip into a session.
func (s *DefaultCatalogService) GetServices(ctx context.Context, merchantID string, ids []string) ([]models.Service, error) {
	services, err := s.Repo.GetServices(ctx, merchantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}
	resolved := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("service %s is not available", id)
		}
		resolved = append(resolved, svc)
	}
	return resolved, nil
}

// DefaultLocationDirectory implements LocationDirectory over the location repository.
type DefaultLocationDirectory struct {
	Repo repository.LocationRepository
}

func (s *DefaultLocationDirectory) ListLocations(ctx context.Context, merchantID string) ([]models.Location, error) {
	return s.Repo.ListActiveLocations(ctx, merchantID)
}

func (s *DefaultLocationDirectory) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	return s.Repo.GetLocation(ctx, id)
}
