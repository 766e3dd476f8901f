package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labbook/config"
	"labbook/services/catalog"
)

// CatalogHandler serves the read-only catalogue and location directory.
type CatalogHandler struct {
	Catalog   catalog.CatalogService
	Locations catalog.LocationDirectory
	Logger    *zap.Logger
}

func NewCatalogHandler(cat catalog.CatalogService, locs catalog.LocationDirectory, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: cat, Locations: locs, Logger: logger}
}

// ListServices handles GET /api/catalog/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Catalog.ListServices(c.Request.Context(), config.AppConfig.MerchantID)
	if err != nil {
		h.Logger.Error("ListServices: failed to fetch services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListLocations handles GET /api/catalog/locations.
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.Locations.ListLocations(c.Request.Context(), config.AppConfig.MerchantID)
	if err != nil {
		h.Logger.Error("ListLocations: failed to fetch locations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch locations"})
		return
	}
	c.JSON(http.StatusOK, locations)
}
