package models

import (
	"fmt"
	"math"
)

// PlaceVisit represents a single saved food establishment: the name and coordinates
// captured when the user journaled the visit, plus their free-form notes.
type PlaceVisit struct {
	PlaceID   string  `json:"place_id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     string  `json:"notes"`
}

// RoundCoordinate rounds a coordinate to 4 decimal places, roughly 11 meters of
// precision at the equator.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// MakePlaceID derives the stable identifier for a place from its name and rounded
// coordinates. The same name saved at near-identical coordinates maps to the same
// id: the key is proximity-addressed, not content-addressed, and collisions within
// ~11 meters are accepted.
func MakePlaceID(name string, lat, lon float64) string {
	return fmt.Sprintf("%s_%.4f_%.4f", name, RoundCoordinate(lat), RoundCoordinate(lon))
}
