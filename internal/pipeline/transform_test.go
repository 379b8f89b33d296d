package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/pipeline"
)

func TestSerializeReviewEvent(t *testing.T) {
	created := time.Date(2026, time.May, 2, 8, 15, 0, 0, time.UTC)
	ev := domain.ReviewEvent{
		Type: domain.ReviewSubmittedType,
		Review: domain.Review{
			ID:        "c0ffee00-0000-4000-8000-000000000001",
			CoffeeID:  "rwanda-nyungwe---red-bourbon",
			UserName:  "Anonymous",
			Rating:    4,
			Notes:     []string{"Raspberry"},
			Body:      domain.BodyMedium,
			Mouthfeel: []domain.Mouthfeel{domain.MouthfeelJuicy},
			CreatedAt: created,
		},
		CoffeeName: "Rwanda Nyungwe - Red Bourbon",
		RoasterID:  "savanna-roasters",
		ProducerID: "nyungwe-women's-cooperative",
		EmittedAt:  created.Add(time.Second),
	}

	out, err := pipeline.NewTransformer().Transform(context.Background(), ev)
	require.NoError(t, err)

	assert.Equal(t, []byte(ev.Review.ID), out.Key)
	assert.Equal(t, map[string]string{
		pipeline.HeaderType:      "review.submitted",
		pipeline.HeaderCoffeeID:  "rwanda-nyungwe---red-bourbon",
		pipeline.HeaderCreatedAt: "2026-05-02T08:15:00Z",
	}, out.Headers)

	var roundtrip domain.ReviewEvent
	require.NoError(t, json.Unmarshal(out.Value, &roundtrip))
	if diff := cmp.Diff(ev, roundtrip); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeReviewEvent_MissingID(t *testing.T) {
	_, err := pipeline.SerializeReviewEvent(domain.ReviewEvent{})
	assert.Error(t, err)
}
