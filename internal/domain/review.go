package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Review form defaults.
const (
	DefaultReviewRating   = 3
	DefaultCharacteristic = 0.5
	DefaultReviewBody     = BodyMedium
	AnonymousUser         = "Anonymous"
	MaxCommentLength      = 2000
	MaxUserNameLength     = 100
)

// Review is a session-scoped tasting review. Reviews are not persisted.
type Review struct {
	ID              string          `json:"id"`
	CoffeeID        string          `json:"coffee_id"`
	UserName        string          `json:"user_name"`
	Rating          int             `json:"rating"`
	Comment         string          `json:"comment"`
	Notes           []string        `json:"notes"`
	Characteristics Characteristics `json:"characteristics"`
	Body            Body            `json:"body"`
	Mouthfeel       []Mouthfeel     `json:"mouthfeel"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ReviewInput is a review submission. Omitted fields take the form defaults.
type ReviewInput struct {
	UserName        string           `json:"user_name"`
	Rating          *int             `json:"rating"`
	Comment         string           `json:"comment"`
	Notes           []string         `json:"notes"`
	Characteristics *Characteristics `json:"characteristics"`
	Body            Body             `json:"body"`
	Mouthfeel       []Mouthfeel      `json:"mouthfeel"`
}

// NewReview validates in and builds a Review stamped with the package clock.
// Selected notes must exist in tax.
func NewReview(id, coffeeID string, in ReviewInput, tax *Taxonomy) (Review, error) {
	r := Review{
		ID:              id,
		CoffeeID:        coffeeID,
		UserName:        strings.TrimSpace(in.UserName),
		Rating:          DefaultReviewRating,
		Comment:         strings.TrimSpace(in.Comment),
		Notes:           []string{},
		Characteristics: Characteristics{Acidity: DefaultCharacteristic, Sweetness: DefaultCharacteristic, Bitterness: DefaultCharacteristic},
		Body:            DefaultReviewBody,
		Mouthfeel:       []Mouthfeel{},
		CreatedAt:       clock.Now().UTC(),
	}
	if utf8.RuneCountInString(r.UserName) > MaxUserNameLength {
		return Review{}, fmt.Errorf("%w: user name longer than %d characters", ErrInvalidReview, MaxUserNameLength)
	}
	if r.UserName == "" {
		r.UserName = AnonymousUser
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if r.Rating < 1 || r.Rating > 5 {
		return Review{}, fmt.Errorf("%w: rating %d outside 1..5", ErrInvalidReview, r.Rating)
	}
	if utf8.RuneCountInString(r.Comment) > MaxCommentLength {
		return Review{}, fmt.Errorf("%w: comment longer than %d characters", ErrInvalidReview, MaxCommentLength)
	}
	if in.Characteristics != nil {
		r.Characteristics = *in.Characteristics
	}
	for _, ch := range []struct {
		name  string
		value float64
	}{
		{"acidity", r.Characteristics.Acidity},
		{"sweetness", r.Characteristics.Sweetness},
		{"bitterness", r.Characteristics.Bitterness},
	} {
		if !CharacteristicDomain.Contains(ch.value) {
			return Review{}, fmt.Errorf("%w: %s %g outside [0,1]", ErrInvalidReview, ch.name, ch.value)
		}
	}
	if in.Body != "" {
		b, err := ParseBody(string(in.Body))
		if err != nil {
			return Review{}, fmt.Errorf("%w: %w", ErrInvalidReview, err)
		}
		r.Body = b
	}
	for _, m := range in.Mouthfeel {
		if _, err := ParseMouthfeel(string(m)); err != nil {
			return Review{}, fmt.Errorf("%w: %w", ErrInvalidReview, err)
		}
		if !slices.Contains(r.Mouthfeel, m) {
			r.Mouthfeel = append(r.Mouthfeel, m)
		}
	}
	for _, n := range in.Notes {
		if tax != nil {
			if _, ok := tax.Lookup(n); !ok {
				return Review{}, fmt.Errorf("%w: unknown tasting note %q", ErrInvalidReview, n)
			}
		}
		if !slices.Contains(r.Notes, n) {
			r.Notes = append(r.Notes, n)
		}
	}
	return r, nil
}

// Tally is a value with the number of reviews that selected it.
type Tally struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Perception summarizes how reviewers perceived a coffee.
type Perception struct {
	Reviews         int             `json:"reviews"`
	AverageRating   float64         `json:"average_rating"`
	Characteristics Characteristics `json:"characteristics"`
	Body            Body            `json:"body,omitempty"`
	Notes           []Tally         `json:"notes"`
	Mouthfeel       []Tally         `json:"mouthfeel"`
}

// Perceive averages reviews. Notes and mouthfeel are ranked by count with
// ties in first-encounter order; Body is the most selected value.
func Perceive(reviews []Review) Perception {
	p := Perception{Reviews: len(reviews), Notes: []Tally{}, Mouthfeel: []Tally{}}
	if len(reviews) == 0 {
		return p
	}

	var notes, mouthfeel, bodies tallies
	var rating float64
	for _, r := range reviews {
		rating += float64(r.Rating)
		p.Characteristics.Acidity += r.Characteristics.Acidity
		p.Characteristics.Sweetness += r.Characteristics.Sweetness
		p.Characteristics.Bitterness += r.Characteristics.Bitterness
		for _, n := range r.Notes {
			notes.add(n)
		}
		for _, m := range r.Mouthfeel {
			mouthfeel.add(string(m))
		}
		bodies.add(string(r.Body))
	}

	n := float64(len(reviews))
	p.AverageRating = rating / n
	p.Characteristics.Acidity /= n
	p.Characteristics.Sweetness /= n
	p.Characteristics.Bitterness /= n
	p.Notes = append(p.Notes, notes.ranked()...)
	p.Mouthfeel = append(p.Mouthfeel, mouthfeel.ranked()...)
	if b := bodies.ranked(); len(b) > 0 {
		p.Body = Body(b[0].Value)
	}
	return p
}

type tallies struct {
	idx  map[string]int
	rows []Tally
}

func (t *tallies) add(v string) {
	if t.idx == nil {
		t.idx = make(map[string]int)
	}
	i, ok := t.idx[v]
	if !ok {
		i = len(t.rows)
		t.idx[v] = i
		t.rows = append(t.rows, Tally{Value: v})
	}
	t.rows[i].Count++
}

func (t *tallies) ranked() []Tally {
	out := slices.Clone(t.rows)
	slices.SortStableFunc(out, func(a, b Tally) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
