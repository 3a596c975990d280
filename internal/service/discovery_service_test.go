package service

import (
	"context"
	"sync"
	"testing"

	"placelog-api/internal/search"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	fn func(ctx context.Context, lat, lon float64) ([]search.Candidate, error)
}

func (p *stubProvider) Nearby(ctx context.Context, lat, lon float64) ([]search.Candidate, error) {
	return p.fn(ctx, lat, lon)
}

func TestDiscoveryService_SearchNearby(t *testing.T) {
	expected := []search.Candidate{{Name: "Joe's Diner", Latitude: 40.7123, Longitude: -74.0099}}
	provider := &stubProvider{fn: func(ctx context.Context, lat, lon float64) ([]search.Candidate, error) {
		return expected, nil
	}}
	svc := NewDiscoveryService(provider, zerolog.Nop())

	results, err := svc.SearchNearby(context.Background(), 40.7128, -74.0060)

	require.NoError(t, err)
	assert.Equal(t, expected, results)
	assert.Equal(t, expected, svc.LatestResults())
}

func TestDiscoveryService_InvalidCoordinates(t *testing.T) {
	svc := NewDiscoveryService(&stubProvider{}, zerolog.Nop())

	_, err := svc.SearchNearby(context.Background(), 91, 0)
	assert.Error(t, err)

	_, err = svc.SearchNearby(context.Background(), 0, -181)
	assert.Error(t, err)
}

func TestDiscoveryService_ProviderError(t *testing.T) {
	provider := &stubProvider{fn: func(ctx context.Context, lat, lon float64) ([]search.Candidate, error) {
		return nil, assert.AnError
	}}
	svc := NewDiscoveryService(provider, zerolog.Nop())

	_, err := svc.SearchNearby(context.Background(), 40.7, -74.0)
	assert.Error(t, err)
	assert.Empty(t, svc.LatestResults())
}

func TestDiscoveryService_LastWriteWins(t *testing.T) {
	old := []search.Candidate{{Name: "Old Result"}}
	newer := []search.Candidate{{Name: "New Result"}}

	firstStarted := make(chan struct{})
	release := make(chan struct{})

	provider := &stubProvider{fn: func(ctx context.Context, lat, lon float64) ([]search.Candidate, error) {
		if lat == 1 {
			close(firstStarted)
			<-release
			return old, nil
		}
		return newer, nil
	}}
	svc := NewDiscoveryService(provider, zerolog.Nop())

	// The first search starts, then stalls inside the provider.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results, err := svc.SearchNearby(context.Background(), 1, 0)
		assert.NoError(t, err)
		assert.Equal(t, old, results)
	}()
	<-firstStarted

	// A newer search completes while the first is still in flight.
	results, err := svc.SearchNearby(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, newer, results)

	// The stale first search finishes last but must not clobber the snapshot.
	close(release)
	wg.Wait()

	assert.Equal(t, newer, svc.LatestResults())
}
