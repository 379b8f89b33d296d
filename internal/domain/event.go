package domain

import "time"

// ReviewSubmittedType is the event type of a submitted review.
const ReviewSubmittedType = "review.submitted"

// ReviewEvent announces a submitted review to downstream consumers.
type ReviewEvent struct {
	Type       string    `json:"type"`
	Review     Review    `json:"review"`
	CoffeeName string    `json:"coffee_name"`
	RoasterID  string    `json:"roaster_id"`
	ProducerID string    `json:"producer_id"`
	EmittedAt  time.Time `json:"emitted_at"`
}

// NewReviewEvent wraps r for publication.
func NewReviewEvent(r Review, c Coffee) ReviewEvent {
	return ReviewEvent{
		Type:       ReviewSubmittedType,
		Review:     r,
		CoffeeName: c.Name,
		RoasterID:  c.RoasterID,
		ProducerID: c.ProducerID,
		EmittedAt:  clock.Now().UTC(),
	}
}

// OutputEvent is the serialized form destined for the review topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
