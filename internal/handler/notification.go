package handler

import (
	"net/http"

	"placelog-api/internal/geofence"
	"placelog-api/internal/notify"

	"github.com/gin-gonic/gin"
)

// NotificationHandler drains the notification outbox and resolves the
// pending-place marker set by notification taps.
type NotificationHandler struct {
	dispatcher *notify.Dispatcher
	pending    *geofence.PendingPlace
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(dispatcher *notify.Dispatcher, pending *geofence.PendingPlace) *NotificationHandler {
	return &NotificationHandler{dispatcher: dispatcher, pending: pending}
}

// List handles GET /notifications requests, draining the outbox.
func (h *NotificationHandler) List(c *gin.Context) {
	queued := h.dispatcher.Drain()
	if queued == nil {
		queued = []notify.Notification{}
	}
	c.JSON(http.StatusOK, queued)
}

// Tap handles POST /notifications/:id/tap requests
func (h *NotificationHandler) Tap(c *gin.Context) {
	if err := h.dispatcher.Tap(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown notification"})
		return
	}
	c.Status(http.StatusNoContent)
}

// PendingPlace handles GET /pending-place requests. The marker is consumed by
// the read: a second request returns no content until another tap sets it.
func (h *NotificationHandler) PendingPlace(c *gin.Context) {
	placeID, ok := h.pending.Take()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"place_id": placeID})
}
