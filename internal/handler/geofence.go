package handler

import (
	"errors"
	"net/http"

	"placelog-api/internal/geofence"

	"github.com/gin-gonic/gin"
)

// GeofenceHandler exposes the monitored-region set and ingests the region
// events the mobile client reports.
type GeofenceHandler struct {
	reconciler *geofence.Reconciler
	monitor    *geofence.DeviceMonitor
}

// NewGeofenceHandler creates a new geofence handler
func NewGeofenceHandler(reconciler *geofence.Reconciler, monitor *geofence.DeviceMonitor) *GeofenceHandler {
	return &GeofenceHandler{reconciler: reconciler, monitor: monitor}
}

type regionEventRequest struct {
	RegionID string `json:"region_id" binding:"required"`
	Error    string `json:"error"`
}

type authorizationRequest struct {
	Level string `json:"level" binding:"required"`
}

// Regions handles GET /regions requests. It returns the intended monitored set
// for the client to sync, which may be unarmed when authorization is missing.
func (h *GeofenceHandler) Regions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authorization": h.reconciler.Authorization().String(),
		"regions":       h.reconciler.Desired(),
		"armed":         h.monitor.ListWatched(),
	})
}

// SetAuthorization handles PUT /authorization requests
func (h *GeofenceHandler) SetAuthorization(c *gin.Context) {
	var req authorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	level, err := geofence.ParseAuthorization(req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown authorization level"})
		return
	}

	if err := h.reconciler.SetAuthorization(c.Request.Context(), level); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegionEntered handles POST /events/region-entered requests
func (h *GeofenceHandler) RegionEntered(c *gin.Context) {
	var req regionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.monitor.ReportEntered(req.RegionID)
	c.Status(http.StatusAccepted)
}

// MonitoringFailed handles POST /events/monitoring-failed requests
func (h *GeofenceHandler) MonitoringFailed(c *gin.Context) {
	var req regionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.monitor.ReportFailed(req.RegionID, errors.New(req.Error))
	c.Status(http.StatusAccepted)
}
