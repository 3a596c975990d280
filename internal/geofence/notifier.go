package geofence

import (
	"context"
	"errors"
	"fmt"

	"placelog-api/internal/metrics"
	"placelog-api/internal/models"
	"placelog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NotesPreviewLimit caps the notes preview embedded in a notification body.
const NotesPreviewLimit = 80

const arrivalTitle = "Welcome back!"

// Notifier is the notification-delivery capability.
type Notifier interface {
	Send(id, title, body, payload string) error
}

// PlaceLookup is the slice of the place store the notifier reads.
type PlaceLookup interface {
	GetPlace(ctx context.Context, placeID string) (*models.PlaceVisit, error)
}

// ArrivalNotifier reacts to region-entered events by emitting one user-facing
// notification per event. Notification ids are unique per emission: re-entering
// the same region after leaving notifies again.
type ArrivalNotifier struct {
	store    PlaceLookup
	notifier Notifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewArrivalNotifier creates an arrival notifier.
func NewArrivalNotifier(store PlaceLookup, notifier Notifier, m *metrics.Metrics, logger zerolog.Logger) *ArrivalNotifier {
	return &ArrivalNotifier{
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// HandleRegionEntered looks up the place behind a region-entered event and
// sends the arrival notification. A region id with no backing place is a stale
// event racing a deletion and is silently dropped.
func (n *ArrivalNotifier) HandleRegionEntered(ctx context.Context, ev RegionEntered) error {
	place, err := n.store.GetPlace(ctx, ev.RegionID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			n.metrics.IncStaleArrivals()
			n.logger.Debug().Str("region_id", ev.RegionID).Msg("stale arrival event for deleted place")
			return nil
		}
		return fmt.Errorf("geofence: failed to look up place for arrival: %w", err)
	}

	body := place.Name
	if place.Notes != "" {
		body += "\n" + TruncateNotes(place.Notes)
	}

	id := uuid.NewString()
	if err := n.notifier.Send(id, arrivalTitle, body, place.PlaceID); err != nil {
		return fmt.Errorf("geofence: failed to send arrival notification: %w", err)
	}

	n.metrics.IncNotificationsSent()
	n.logger.Info().Str("place_id", place.PlaceID).Str("notification_id", id).Msg("arrival notification sent")
	return nil
}

// TruncateNotes returns a preview of the notes capped at NotesPreviewLimit
// characters, with a trailing ellipsis iff the original was longer.
func TruncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= NotesPreviewLimit {
		return notes
	}
	return string(runes[:NotesPreviewLimit]) + "…"
}
