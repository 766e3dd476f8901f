package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labbook/utils"
)

// HealthHandler handles GET /health.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
