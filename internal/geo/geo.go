// Package geo resolves free-form place names to coordinates through the
// Google geocoding API, backing the nearest-spot search. The feature is
// disabled (not degraded) when no API key is configured.
package geo

import (
	"errors"

	"github.com/kelvins/geocoder"
)

// ErrDisabled is returned when no geocoding API key is configured.
var ErrDisabled = errors.New("geocoding is not configured")

type Geocoder struct {
	enabled bool
}

func New(apiKey string) *Geocoder {
	if apiKey == "" {
		return &Geocoder{}
	}
	geocoder.ApiKey = apiKey
	return &Geocoder{enabled: true}
}

func (g *Geocoder) Enabled() bool {
	return g.enabled
}

// Locate geocodes a city or place name, biased to Morocco since every
// registered spot is on the Moroccan coast.
func (g *Geocoder) Locate(place string) (lat, lon float64, err error) {
	if !g.enabled {
		return 0, 0, ErrDisabled
	}

	loc, err := geocoder.Geocoding(geocoder.Address{
		City:    place,
		Country: "Morocco",
	})
	if err != nil {
		return 0, 0, err
	}
	return loc.Latitude, loc.Longitude, nil
}
