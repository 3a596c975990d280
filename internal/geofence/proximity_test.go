package geofence

import (
	"context"
	"testing"

	"placelog-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProximityChecker_NearestWithinThresholdWins(t *testing.T) {
	ctx := context.Background()

	// Roughly 55 m and 110 m north of the probe point.
	near := models.PlaceVisit{PlaceID: "near", Name: "Near Cafe", Latitude: 40.7133, Longitude: -74.0060}
	far := models.PlaceVisit{PlaceID: "far", Name: "Far Cafe", Latitude: 40.7138, Longitude: -74.0060}
	store := &fakeStore{places: []models.PlaceVisit{far, near}}

	checker := NewProximityChecker(store, 0)

	banner, err := checker.Refresh(ctx, 40.7128, -74.0060)
	require.NoError(t, err)
	require.NotNil(t, banner)
	assert.Equal(t, "near", banner.PlaceID)
	assert.Less(t, banner.DistanceMeters, 150.0)
	assert.Equal(t, banner, checker.Current())
}

func TestProximityChecker_NothingWithinThreshold(t *testing.T) {
	ctx := context.Background()

	// About 1.1 km away.
	place := models.PlaceVisit{PlaceID: "p", Name: "Distant Diner", Latitude: 40.7228, Longitude: -74.0060}
	store := &fakeStore{places: []models.PlaceVisit{place}}

	checker := NewProximityChecker(store, 0)

	banner, err := checker.Refresh(ctx, 40.7128, -74.0060)
	require.NoError(t, err)
	assert.Nil(t, banner)
	assert.Nil(t, checker.Current())
}

func TestProximityChecker_DismissSuppressesUntilRefresh(t *testing.T) {
	ctx := context.Background()

	place := models.PlaceVisit{PlaceID: "p", Name: "Near Cafe", Latitude: 40.7129, Longitude: -74.0060}
	store := &fakeStore{places: []models.PlaceVisit{place}}

	checker := NewProximityChecker(store, 0)

	_, err := checker.Refresh(ctx, 40.7128, -74.0060)
	require.NoError(t, err)
	require.NotNil(t, checker.Current())

	// Dismissal holds even though the user is still within radius.
	checker.Dismiss()
	assert.Nil(t, checker.Current())
	assert.Nil(t, checker.Current())

	// The next explicit refresh resets the dismissal.
	banner, err := checker.Refresh(ctx, 40.7128, -74.0060)
	require.NoError(t, err)
	require.NotNil(t, banner)
	assert.Equal(t, "p", checker.Current().PlaceID)
}

func TestProximityChecker_EmptyStore(t *testing.T) {
	ctx := context.Background()
	checker := NewProximityChecker(&fakeStore{}, 0)

	banner, err := checker.Refresh(ctx, 40.7128, -74.0060)
	require.NoError(t, err)
	assert.Nil(t, banner)
}

func TestProximityChecker_StoreError(t *testing.T) {
	ctx := context.Background()
	checker := NewProximityChecker(&fakeStore{err: assert.AnError}, 0)

	_, err := checker.Refresh(ctx, 40.7128, -74.0060)
	assert.Error(t, err)
}
