package review

import (
	"slices"
	"sync"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// Store keeps the most recent reviews per coffee in memory. Reviews live for
// the lifetime of the process.
type Store struct {
	mu       sync.Mutex
	limit    int
	byCoffee map[string][]domain.Review
}

// NewStore creates a Store that keeps at most limit reviews per coffee.
// A limit below 1 is treated as 1.
func NewStore(limit int) *Store {
	if limit < 1 {
		limit = 1
	}
	return &Store{limit: limit, byCoffee: make(map[string][]domain.Review)}
}

// Add records r as the newest review of its coffee, evicting the oldest
// review once the limit is reached.
func (s *Store) Add(r domain.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := append([]domain.Review{r}, s.byCoffee[r.CoffeeID]...)
	if len(reviews) > s.limit {
		reviews = reviews[:s.limit]
	}
	s.byCoffee[r.CoffeeID] = reviews
}

// List returns a copy of the reviews for coffeeID, newest first.
func (s *Store) List(coffeeID string) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.byCoffee[coffeeID])
	if out == nil {
		out = []domain.Review{}
	}
	return out
}

// Len returns the number of stored reviews across every coffee.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, reviews := range s.byCoffee {
		n += len(reviews)
	}
	return n
}
