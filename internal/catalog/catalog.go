// Package catalog builds the read-only catalog indexes from a dataset and
// answers list, detail, statistics and flavour-map queries. A Catalog is
// immutable after New and safe for concurrent readers.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/couchcryptid/coffee-catalog/internal/dataset"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// TopCoffeesPerRoaster is the number of highest-rated coffees on a roaster detail.
const TopCoffeesPerRoaster = 3

// Catalog holds the indexed dataset.
type Catalog struct {
	taxonomy    *domain.Taxonomy
	coffees     []domain.Coffee
	roasters    []domain.Roaster
	producers   []domain.Producer
	coffeeIdx   map[string]int
	roasterIdx  map[string]int
	producerIdx map[string]int
	byRoaster   map[string][]domain.Coffee
	byProducer  map[string][]domain.Coffee
	warnings    []string
}

// New validates ds and builds a Catalog. Integrity failures return a
// *ValidationError; taxonomy coverage warnings are logged and kept.
func New(ds *dataset.Dataset, logger *slog.Logger) (*Catalog, error) {
	report, n := normalize(ds)
	if err := report.Err(); err != nil {
		return nil, err
	}

	c := &Catalog{
		taxonomy:    n.taxonomy,
		coffees:     n.coffees,
		roasters:    n.roasters,
		producers:   n.producers,
		coffeeIdx:   make(map[string]int, len(n.coffees)),
		roasterIdx:  make(map[string]int, len(n.roasters)),
		producerIdx: make(map[string]int, len(n.producers)),
		byRoaster:   make(map[string][]domain.Coffee),
		byProducer:  make(map[string][]domain.Coffee),
		warnings:    report.Warnings(),
	}
	for i, r := range c.roasters {
		c.roasterIdx[r.ID] = i
	}
	for i, p := range c.producers {
		c.producerIdx[p.ID] = i
	}
	for i, cf := range c.coffees {
		c.coffeeIdx[cf.ID] = i
		c.byRoaster[cf.RoasterID] = append(c.byRoaster[cf.RoasterID], cf)
		c.byProducer[cf.ProducerID] = append(c.byProducer[cf.ProducerID], cf)
	}

	for _, w := range c.warnings {
		logger.Warn("catalog warning", "detail", w)
	}
	logger.Info("catalog loaded",
		"coffees", len(c.coffees),
		"roasters", len(c.roasters),
		"producers", len(c.producers),
		"notes", c.taxonomy.Len(),
	)
	return c, nil
}

// Load reads the dataset from dir (empty for the embedded one) and builds a Catalog.
func Load(dir string, logger *slog.Logger) (*Catalog, error) {
	ds, err := dataset.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return New(ds, logger)
}

// CheckReadiness reports an error when the catalog is empty.
func (c *Catalog) CheckReadiness(_ context.Context) error {
	if len(c.coffees) == 0 {
		return errors.New("catalog has no coffees")
	}
	return nil
}

// Taxonomy returns the tasting-note table.
func (c *Catalog) Taxonomy() *domain.Taxonomy { return c.taxonomy }

// Warnings returns the load warnings.
func (c *Catalog) Warnings() []string { return slices.Clone(c.warnings) }

// Counts returns the number of loaded entities by kind.
func (c *Catalog) Counts() map[string]int {
	return map[string]int{
		"coffee":   len(c.coffees),
		"roaster":  len(c.roasters),
		"producer": len(c.producers),
		"note":     c.taxonomy.Len(),
	}
}

// Coffees returns the coffees matching crit in catalog order.
func (c *Catalog) Coffees(crit domain.Criteria) []domain.Coffee {
	return domain.CloneCoffees(domain.Filter(c.coffees, crit, c.taxonomy))
}

// Coffee returns the coffee with the given id.
func (c *Catalog) Coffee(id string) (domain.Coffee, error) {
	i, ok := c.coffeeIdx[id]
	if !ok {
		return domain.Coffee{}, fmt.Errorf("coffee %q: %w", id, domain.ErrNotFound)
	}
	return c.coffees[i].Clone(), nil
}

// CoffeeDetail is a coffee with its resolved notes, palette and partners.
type CoffeeDetail struct {
	Coffee   domain.Coffee        `json:"coffee"`
	Notes    []domain.TastingNote `json:"notes"`
	Palette  []domain.Gradient    `json:"palette"`
	Roaster  domain.Roaster       `json:"roaster"`
	Producer domain.Producer      `json:"producer"`
}

// CoffeeDetail returns the detail view of one coffee. Notes missing from the
// taxonomy are skipped.
func (c *Catalog) CoffeeDetail(id string) (CoffeeDetail, error) {
	cf, err := c.Coffee(id)
	if err != nil {
		return CoffeeDetail{}, err
	}
	return CoffeeDetail{
		Coffee:   cf,
		Notes:    c.taxonomy.Resolve(cf.Notes),
		Palette:  c.taxonomy.Palette(cf.Notes),
		Roaster:  c.roasters[c.roasterIdx[cf.RoasterID]].Clone(),
		Producer: c.producers[c.producerIdx[cf.ProducerID]].Clone(),
	}, nil
}

// Summary is the browse-card view of a roaster or producer.
type Summary struct {
	CoffeeCount   int     `json:"coffee_count"`
	AverageRating float64 `json:"average_rating"`
}

// RoasterSummary is a roaster with its browse-card figures.
type RoasterSummary struct {
	domain.Roaster
	Summary
}

// ProducerSummary is a producer with its browse-card figures.
type ProducerSummary struct {
	domain.Producer
	Summary
}

func summarize(coffees []domain.Coffee) Summary {
	s := domain.Aggregate(coffees, nil)
	return Summary{CoffeeCount: s.Count, AverageRating: s.AverageRating}
}

// Roasters returns every roaster in dataset order.
func (c *Catalog) Roasters() []RoasterSummary {
	out := make([]RoasterSummary, len(c.roasters))
	for i, r := range c.roasters {
		out[i] = RoasterSummary{Roaster: r.Clone(), Summary: summarize(c.byRoaster[r.ID])}
	}
	return out
}

// RoasterDetail is a roaster with statistics over its coffees.
type RoasterDetail struct {
	Roaster    domain.Roaster  `json:"roaster"`
	Stats      domain.Stats    `json:"stats"`
	TopCoffees []domain.Coffee `json:"top_coffees"`
	Coffees    []domain.Coffee `json:"coffees"`
}

// Roaster returns the detail view of one roaster.
func (c *Catalog) Roaster(id string) (RoasterDetail, error) {
	i, ok := c.roasterIdx[id]
	if !ok {
		return RoasterDetail{}, fmt.Errorf("roaster %q: %w", id, domain.ErrNotFound)
	}
	coffees := nonNil(c.byRoaster[id])
	return RoasterDetail{
		Roaster:    c.roasters[i].Clone(),
		Stats:      domain.Aggregate(coffees, c.taxonomy),
		TopCoffees: domain.TopRated(coffees, TopCoffeesPerRoaster),
		Coffees:    coffees,
	}, nil
}

// Producers returns every producer in dataset order.
func (c *Catalog) Producers() []ProducerSummary {
	out := make([]ProducerSummary, len(c.producers))
	for i, p := range c.producers {
		out[i] = ProducerSummary{Producer: p.Clone(), Summary: summarize(c.byProducer[p.ID])}
	}
	return out
}

// ProducerDetail is a producer with statistics, its coffees ranked by
// rating, and the roasters that buy from it.
type ProducerDetail struct {
	Producer domain.Producer  `json:"producer"`
	Stats    domain.Stats     `json:"stats"`
	Coffees  []domain.Coffee  `json:"coffees"`
	Roasters []domain.Roaster `json:"roasters"`
}

// Producer returns the detail view of one producer.
func (c *Catalog) Producer(id string) (ProducerDetail, error) {
	i, ok := c.producerIdx[id]
	if !ok {
		return ProducerDetail{}, fmt.Errorf("producer %q: %w", id, domain.ErrNotFound)
	}
	coffees := nonNil(c.byProducer[id])

	partners := []domain.Roaster{}
	seen := make(map[string]bool)
	for _, cf := range coffees {
		if seen[cf.RoasterID] {
			continue
		}
		seen[cf.RoasterID] = true
		partners = append(partners, c.roasters[c.roasterIdx[cf.RoasterID]].Clone())
	}

	return ProducerDetail{
		Producer: c.producers[i].Clone(),
		Stats:    domain.Aggregate(coffees, c.taxonomy),
		Coffees:  domain.RankByRating(coffees),
		Roasters: partners,
	}, nil
}

// ProducerMarkers returns the map markers of every producer.
func (c *Catalog) ProducerMarkers() []domain.Marker {
	out := make([]domain.Marker, len(c.producers))
	for i, p := range c.producers {
		out[i] = domain.MarkerFor(p)
	}
	return out
}

// AllProducers returns the raw producer records.
func (c *Catalog) AllProducers() []domain.Producer {
	out := make([]domain.Producer, len(c.producers))
	for i, p := range c.producers {
		out[i] = p.Clone()
	}
	return out
}

// FlavorMap groups the taxonomy by category with note popularity.
func (c *Catalog) FlavorMap() []domain.NoteGroup {
	return domain.GroupNotes(c.taxonomy, c.coffees)
}

// FlavorFocus returns the coffees and co-occurring notes of one note.
func (c *Catalog) FlavorFocus(note string) (domain.NoteFocus, error) {
	focus, err := domain.FocusNote(note, c.taxonomy, c.coffees)
	if err != nil {
		return domain.NoteFocus{}, err
	}
	focus.Coffees = domain.CloneCoffees(focus.Coffees)
	return focus, nil
}

func nonNil(coffees []domain.Coffee) []domain.Coffee {
	return domain.CloneCoffees(coffees)
}
