package domain

import (
	"context"
	"log/slog"
	"math"
	"strings"
)

// Location check outcomes.
const (
	GeoStatusOK         = "ok"
	GeoStatusDrift      = "drift"
	GeoStatusMismatch   = "mismatch"
	GeoStatusUnresolved = "unresolved"
	GeoStatusFailed     = "failed"
)

// DefaultMaxDriftKm is the distance beyond which stored coordinates are
// reported as drifting from the geocoded region.
const DefaultMaxDriftKm = 75.0

const earthRadiusKm = 6371.0

// LocationCheck is the outcome of cross-checking a producer's stored
// coordinates against a geocoding provider.
type LocationCheck struct {
	ProducerID     string      `json:"producer_id"`
	Name           string      `json:"name"`
	Stored         Coordinates `json:"stored"`
	Geocoded       Coordinates `json:"geocoded"`
	DriftKm        float64     `json:"drift_km"`
	ForwardAddress string      `json:"forward_address,omitempty"`
	ReverseAddress string      `json:"reverse_address,omitempty"`
	CountryMatch   bool        `json:"country_match"`
	Confidence     float64     `json:"confidence"`
	Status         string      `json:"status"`
}

// CheckProducerLocation forward-geocodes "region, country" and reverse-geocodes
// the stored coordinates. Provider errors degrade to GeoStatusFailed.
func CheckProducerLocation(ctx context.Context, p Producer, geocoder Geocoder, maxDriftKm float64, logger *slog.Logger) LocationCheck {
	check := LocationCheck{
		ProducerID: p.ID,
		Name:       p.Name,
		Stored:     p.Location.Coordinates,
	}

	fwd, err := geocoder.ForwardGeocode(ctx, p.Location.Region, p.Location.Country)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"producer_id", p.ID,
			"region", p.Location.Region,
			"country", p.Location.Country,
			"error", err,
		)
		check.Status = GeoStatusFailed
		return check
	}
	if fwd.Lat == 0 && fwd.Lon == 0 {
		check.Status = GeoStatusUnresolved
		return check
	}
	check.Geocoded = Coordinates{fwd.Lon, fwd.Lat}
	check.ForwardAddress = fwd.FormattedAddress
	check.Confidence = fwd.Confidence
	check.DriftKm = HaversineKm(check.Stored, check.Geocoded)

	rev, err := geocoder.ReverseGeocode(ctx, p.Location.Coordinates.Lat(), p.Location.Coordinates.Lon())
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"producer_id", p.ID,
			"lat", p.Location.Coordinates.Lat(),
			"lon", p.Location.Coordinates.Lon(),
			"error", err,
		)
		check.Status = GeoStatusFailed
		return check
	}
	check.ReverseAddress = rev.FormattedAddress
	check.CountryMatch = countryMatches(rev, p.Location.Country)

	switch {
	case !check.CountryMatch:
		check.Status = GeoStatusMismatch
	case check.DriftKm > maxDriftKm:
		check.Status = GeoStatusDrift
	default:
		check.Status = GeoStatusOK
	}
	return check
}

// countryMatches prefers the provider's country context and falls back to
// searching the formatted address.
func countryMatches(rev GeocodingResult, country string) bool {
	if rev.Country != "" {
		return strings.EqualFold(rev.Country, country)
	}
	return rev.FormattedAddress != "" &&
		strings.Contains(strings.ToLower(rev.FormattedAddress), strings.ToLower(country))
}

// HaversineKm returns the great-circle distance between two positions.
func HaversineKm(a, b Coordinates) float64 {
	lat1 := a.Lat() * math.Pi / 180
	lat2 := b.Lat() * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon() - a.Lon()) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}
