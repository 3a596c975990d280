package handler

import (
	"context"
	"net/http"
	"strconv"

	"placelog-api/internal/search"

	"github.com/gin-gonic/gin"
)

// DiscoveryHandler handles nearby place discovery requests
type DiscoveryHandler struct {
	service DiscoveryService
}

// Service interface for dependency injection
type DiscoveryService interface {
	SearchNearby(ctx context.Context, lat, lon float64) ([]search.Candidate, error)
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(svc DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: svc}
}

// Nearby handles GET /nearby requests
func (h *DiscoveryHandler) Nearby(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	candidates, err := h.service.SearchNearby(c.Request.Context(), lat, lon)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if candidates == nil {
		candidates = []search.Candidate{}
	}

	c.JSON(http.StatusOK, candidates)
}
