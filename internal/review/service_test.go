package review_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coffee-catalog/internal/catalog"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
	"github.com/couchcryptid/coffee-catalog/internal/review"
)

const lot412 = "ethiopian-yirgacheffe---lot-412"

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ReviewEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.ReviewEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, limit int, pub review.Publisher) (*review.Service, *observability.Metrics) {
	t.Helper()
	c, err := catalog.Load("", discardLogger())
	require.NoError(t, err)
	m := observability.NewMetricsForTesting()
	return review.NewService(c, review.NewStore(limit), pub, discardLogger(), m), m
}

func intPtr(v int) *int { return &v }

func TestSubmit_DefaultsAndPublish(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	domain.SetClock(fake)
	t.Cleanup(func() { domain.SetClock(nil) })

	pub := &recordingPublisher{}
	svc, m := newService(t, 10, pub)

	r, err := svc.Submit(context.Background(), lot412, domain.ReviewInput{})
	require.NoError(t, err)

	_, err = uuid.Parse(r.ID)
	require.NoError(t, err, "review id should be a UUID")
	assert.Equal(t, lot412, r.CoffeeID)
	assert.Equal(t, domain.AnonymousUser, r.UserName)
	assert.Equal(t, domain.DefaultReviewRating, r.Rating)
	assert.Equal(t, domain.DefaultReviewBody, r.Body)
	assert.Equal(t, domain.Characteristics{Acidity: 0.5, Sweetness: 0.5, Bitterness: 0.5}, r.Characteristics)
	assert.Equal(t, fake.Now(), r.CreatedAt)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, domain.ReviewSubmittedType, ev.Type)
	assert.Equal(t, r.ID, ev.Review.ID)
	assert.Equal(t, "Ethiopian Yirgacheffe - Lot 412", ev.CoffeeName)
	assert.Equal(t, "artisan-roasters", ev.RoasterID)
	assert.Equal(t, "yirgacheffe-coffee-farmers-cooperative-union", ev.ProducerID)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsSubmitted))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ReviewsRejected))
}

func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input domain.ReviewInput
	}{
		{name: "rating too high", input: domain.ReviewInput{Rating: intPtr(6)}},
		{name: "rating zero", input: domain.ReviewInput{Rating: intPtr(0)}},
		{name: "unknown note", input: domain.ReviewInput{Notes: []string{"Bubblegum"}}},
		{name: "unknown body", input: domain.ReviewInput{Body: "Heavy"}},
		{name: "unknown mouthfeel", input: domain.ReviewInput{Mouthfeel: []domain.Mouthfeel{"Chalky"}}},
		{name: "characteristic out of range", input: domain.ReviewInput{Characteristics: &domain.Characteristics{Acidity: 1.5}}},
		{name: "comment too long", input: domain.ReviewInput{Comment: strings.Repeat("x", domain.MaxCommentLength+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &recordingPublisher{}
			svc, m := newService(t, 10, pub)

			_, err := svc.Submit(context.Background(), lot412, tt.input)
			require.ErrorIs(t, err, domain.ErrInvalidReview)

			reviews, err := svc.List(lot412)
			require.NoError(t, err)
			assert.Empty(t, reviews)
			assert.Empty(t, pub.events)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsRejected))
		})
	}
}

func TestSubmit_UnknownCoffee(t *testing.T) {
	svc, m := newService(t, 10, nil)

	_, err := svc.Submit(context.Background(), "no-such-coffee", domain.ReviewInput{})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ReviewsRejected))

	_, err = svc.List("no-such-coffee")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Perception("no-such-coffee")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_PublishFailureKeepsReview(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("queue full")}
	svc, _ := newService(t, 10, pub)

	r, err := svc.Submit(context.Background(), lot412, domain.ReviewInput{Rating: intPtr(5)})
	require.NoError(t, err)

	reviews, err := svc.List(lot412)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, r.ID, reviews[0].ID)
}

func TestList_NewestFirstAndCapped(t *testing.T) {
	svc, _ := newService(t, 2, nil)

	for _, name := range []string{"ana", "ben", "cai"} {
		_, err := svc.Submit(context.Background(), lot412, domain.ReviewInput{UserName: name})
		require.NoError(t, err)
	}

	reviews, err := svc.List(lot412)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "cai", reviews[0].UserName)
	assert.Equal(t, "ben", reviews[1].UserName)
}

func TestPerception(t *testing.T) {
	svc, _ := newService(t, 10, nil)
	ctx := context.Background()

	inputs := []domain.ReviewInput{
		{
			Rating:          intPtr(5),
			Notes:           []string{"Jasmine", "Lemon"},
			Characteristics: &domain.Characteristics{Acidity: 0.9, Sweetness: 0.6, Bitterness: 0.1},
			Body:            domain.BodyLight,
			Mouthfeel:       []domain.Mouthfeel{domain.MouthfeelSilky},
		},
		{
			Rating:          intPtr(4),
			Notes:           []string{"Lemon"},
			Characteristics: &domain.Characteristics{Acidity: 0.7, Sweetness: 0.4, Bitterness: 0.3},
			Body:            domain.BodyLight,
			Mouthfeel:       []domain.Mouthfeel{domain.MouthfeelJuicy, domain.MouthfeelSilky},
		},
	}
	for _, in := range inputs {
		_, err := svc.Submit(ctx, lot412, in)
		require.NoError(t, err)
	}

	p, err := svc.Perception(lot412)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Reviews)
	assert.InDelta(t, 4.5, p.AverageRating, 1e-9)
	assert.InDelta(t, 0.8, p.Characteristics.Acidity, 1e-9)
	assert.InDelta(t, 0.5, p.Characteristics.Sweetness, 1e-9)
	assert.InDelta(t, 0.2, p.Characteristics.Bitterness, 1e-9)
	assert.Equal(t, domain.BodyLight, p.Body)
	assert.Equal(t, []domain.Tally{{Value: "Lemon", Count: 2}, {Value: "Jasmine", Count: 1}}, p.Notes)
	assert.Equal(t, []domain.Tally{{Value: "Silky", Count: 2}, {Value: "Juicy", Count: 1}}, p.Mouthfeel)
}

func TestPerception_NoReviews(t *testing.T) {
	svc, _ := newService(t, 10, nil)

	p, err := svc.Perception(lot412)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Reviews)
	assert.Empty(t, p.Notes)
}
