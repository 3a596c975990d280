package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakePlaceID(t *testing.T) {
	tests := []struct {
		name     string
		place    string
		lat      float64
		lon      float64
		expected string
	}{
		{
			name:     "rounds to four decimal places",
			place:    "Joe's Diner",
			lat:      40.71234567,
			lon:      -74.00987654,
			expected: "Joe's Diner_40.7123_-74.0099",
		},
		{
			name:     "already at four decimal places",
			place:    "Ramen Ichiban",
			lat:      35.6812,
			lon:      139.7671,
			expected: "Ramen Ichiban_35.6812_139.7671",
		},
		{
			name:     "pads short coordinates",
			place:    "Null Island Cafe",
			lat:      0,
			lon:      0,
			expected: "Null Island Cafe_0.0000_0.0000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MakePlaceID(tt.place, tt.lat, tt.lon))
		})
	}
}

func TestMakePlaceID_StableUnderRounding(t *testing.T) {
	// Coordinates that agree after rounding to 4 decimals produce the same id.
	a := MakePlaceID("Joe's Diner", 40.71234567, -74.00987654)
	b := MakePlaceID("Joe's Diner", 40.712345, -74.009877)
	assert.Equal(t, a, b)

	// And the computation itself is deterministic.
	assert.Equal(t, a, MakePlaceID("Joe's Diner", 40.71234567, -74.00987654))
}

func TestRoundCoordinate(t *testing.T) {
	assert.InDelta(t, 40.7123, RoundCoordinate(40.71234567), 1e-9)
	assert.InDelta(t, -74.0099, RoundCoordinate(-74.00987654), 1e-9)
	assert.InDelta(t, 1.0, RoundCoordinate(0.99996), 1e-9)
}
