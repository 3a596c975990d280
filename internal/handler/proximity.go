package handler

import (
	"net/http"

	"placelog-api/internal/geofence"

	"github.com/gin-gonic/gin"
)

// ProximityHandler runs the foreground nearby-place banner flow.
type ProximityHandler struct {
	checker *geofence.ProximityChecker
}

// NewProximityHandler creates a new proximity handler
func NewProximityHandler(checker *geofence.ProximityChecker) *ProximityHandler {
	return &ProximityHandler{checker: checker}
}

type locationRefreshRequest struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// Refresh handles POST /location/refresh requests: an explicit user-initiated
// location fix that recomputes the banner and clears any dismissal.
func (h *ProximityHandler) Refresh(c *gin.Context) {
	var req locationRefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	banner, err := h.checker.Refresh(c.Request.Context(), req.Latitude, req.Longitude)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if banner == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, banner)
}

// Banner handles GET /banner requests
func (h *ProximityHandler) Banner(c *gin.Context) {
	banner := h.checker.Current()
	if banner == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, banner)
}

// Dismiss handles POST /banner/dismiss requests
func (h *ProximityHandler) Dismiss(c *gin.Context) {
	h.checker.Dismiss()
	c.Status(http.StatusNoContent)
}
