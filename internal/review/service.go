// Package review accepts tasting reviews for catalog coffees and summarizes
// how reviewers perceived them.
package review

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
)

// Catalog is the read side the service validates against.
type Catalog interface {
	Coffee(id string) (domain.Coffee, error)
	Taxonomy() *domain.Taxonomy
}

// Publisher hands accepted reviews to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, ev domain.ReviewEvent) error
}

// Service validates, stores and publishes reviews.
type Service struct {
	catalog   Catalog
	store     *Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	newID     func() string
}

// NewService creates a Service. publisher may be nil when review events are disabled.
func NewService(c Catalog, store *Store, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		catalog:   c,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		newID:     uuid.NewString,
	}
}

// Submit validates in against the coffee and the taxonomy, stores the review
// and publishes it. A publish failure is logged and does not reject the review.
func (s *Service) Submit(ctx context.Context, coffeeID string, in domain.ReviewInput) (domain.Review, error) {
	coffee, err := s.catalog.Coffee(coffeeID)
	if err != nil {
		return domain.Review{}, err
	}

	r, err := domain.NewReview(s.newID(), coffee.ID, in, s.catalog.Taxonomy())
	if err != nil {
		s.metrics.ReviewsRejected.Inc()
		return domain.Review{}, err
	}

	s.store.Add(r)
	s.metrics.ReviewsSubmitted.Inc()
	s.logger.Debug("review submitted", "review_id", r.ID, "coffee_id", r.CoffeeID, "rating", r.Rating)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.NewReviewEvent(r, coffee)); err != nil {
			level := slog.LevelWarn
			if errors.Is(err, context.Canceled) {
				level = slog.LevelDebug
			}
			s.logger.Log(ctx, level, "review event not published", "review_id", r.ID, "error", err)
		}
	}
	return r, nil
}

// List returns the session reviews of coffeeID, newest first.
func (s *Service) List(coffeeID string) ([]domain.Review, error) {
	coffee, err := s.catalog.Coffee(coffeeID)
	if err != nil {
		return nil, err
	}
	return s.store.List(coffee.ID), nil
}

// Perception summarizes the session reviews of coffeeID.
func (s *Service) Perception(coffeeID string) (domain.Perception, error) {
	reviews, err := s.List(coffeeID)
	if err != nil {
		return domain.Perception{}, err
	}
	return domain.Perceive(reviews), nil
}
