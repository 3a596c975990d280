package handler

import (
	"context"
	"errors"
	"net/http"

	"placelog-api/internal/models"
	"placelog-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// PlaceHandler handles place journal requests
type PlaceHandler struct {
	service PlaceService
}

// Service interface for dependency injection
type PlaceService interface {
	SavePlace(ctx context.Context, name string, lat, lon float64, notes string) (*models.PlaceVisit, error)
	UpdateNotes(ctx context.Context, placeID, notes string) (*models.PlaceVisit, error)
	DeletePlace(ctx context.Context, placeID string) error
	ListPlaces(ctx context.Context) ([]models.PlaceVisit, error)
	GetPlace(ctx context.Context, placeID string) (*models.PlaceVisit, error)
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(svc PlaceService) *PlaceHandler {
	return &PlaceHandler{service: svc}
}

type savePlaceRequest struct {
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     string  `json:"notes"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// ListPlaces handles GET /places requests
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	places, err := h.service.ListPlaces(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if places == nil {
		places = []models.PlaceVisit{}
	}

	c.JSON(http.StatusOK, places)
}

// GetPlace handles GET /places/:id requests
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	place, err := h.service.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, place)
}

// SavePlace handles POST /places requests
func (h *PlaceHandler) SavePlace(c *gin.Context) {
	var req savePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	place, err := h.service.SavePlace(c.Request.Context(), req.Name, req.Latitude, req.Longitude, req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePlace) {
			c.JSON(http.StatusConflict, gin.H{"error": "place already saved"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, place)
}

// UpdateNotes handles PUT /places/:id requests
func (h *PlaceHandler) UpdateNotes(c *gin.Context) {
	var req updateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	place, err := h.service.UpdateNotes(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, place)
}

// DeletePlace handles DELETE /places/:id requests
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	err := h.service.DeletePlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
