package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// LocationChecker cross-checks stored producer coordinates with a geocoder.
type LocationChecker struct {
	catalog    *Catalog
	geocoder   domain.Geocoder
	maxDriftKm float64
	logger     *slog.Logger
}

// NewLocationChecker creates a LocationChecker. A non-positive maxDriftKm
// uses domain.DefaultMaxDriftKm.
func NewLocationChecker(c *Catalog, geocoder domain.Geocoder, maxDriftKm float64, logger *slog.Logger) *LocationChecker {
	if maxDriftKm <= 0 {
		maxDriftKm = domain.DefaultMaxDriftKm
	}
	return &LocationChecker{catalog: c, geocoder: geocoder, maxDriftKm: maxDriftKm, logger: logger}
}

// CheckLocation geocodes one producer. Provider failures are reported in
// the returned check, not as an error.
func (l *LocationChecker) CheckLocation(ctx context.Context, producerID string) (domain.LocationCheck, error) {
	i, ok := l.catalog.producerIdx[producerID]
	if !ok {
		return domain.LocationCheck{}, fmt.Errorf("producer %q: %w", producerID, domain.ErrNotFound)
	}
	return domain.CheckProducerLocation(ctx, l.catalog.producers[i], l.geocoder, l.maxDriftKm, l.logger), nil
}
