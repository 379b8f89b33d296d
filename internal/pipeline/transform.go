package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// Header names set on every review event message.
const (
	HeaderType      = "type"
	HeaderCoffeeID  = "coffee_id"
	HeaderCreatedAt = "created_at"
)

// ReviewTransformer serializes review events as JSON keyed by review id.
type ReviewTransformer struct{}

// NewTransformer creates a ReviewTransformer.
func NewTransformer() *ReviewTransformer { return &ReviewTransformer{} }

func (ReviewTransformer) Transform(_ context.Context, ev domain.ReviewEvent) (domain.OutputEvent, error) {
	return SerializeReviewEvent(ev)
}

// SerializeReviewEvent encodes ev for the review topic.
func SerializeReviewEvent(ev domain.ReviewEvent) (domain.OutputEvent, error) {
	if ev.Review.ID == "" {
		return domain.OutputEvent{}, errors.New("review event without review id")
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("marshal review event %s: %w", ev.Review.ID, err)
	}
	return domain.OutputEvent{
		Key:   []byte(ev.Review.ID),
		Value: value,
		Headers: map[string]string{
			HeaderType:      ev.Type,
			HeaderCoffeeID:  ev.Review.CoffeeID,
			HeaderCreatedAt: ev.Review.CreatedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}
