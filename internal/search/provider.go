// Package search integrates the external nearby-place provider.
package search

import "context"

// Candidate is one nearby place returned by the provider: just enough to name
// it and save it as a place visit.
type Candidate struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Provider returns candidate places near a coordinate.
type Provider interface {
	Nearby(ctx context.Context, lat, lon float64) ([]Candidate, error)
}
