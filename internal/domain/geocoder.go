package domain

import "context"

// GeocodingResult is the best match a geocoding provider returned for a
// producer location. The zero value means no match.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Country          string // empty when the provider gave no country context
	Confidence       float64
}

// Geocoder resolves producer locations.
type Geocoder interface {
	// ForwardGeocode converts a region and country to coordinates.
	ForwardGeocode(ctx context.Context, region, country string) (GeocodingResult, error)

	// ReverseGeocode converts coordinates to place details.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
