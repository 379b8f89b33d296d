package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/coffee-catalog/internal/dataset"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// ErrIntegrity is wrapped by every ValidationError.
var ErrIntegrity = errors.New("catalog integrity")

// ValidationError lists every integrity problem found while loading.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog integrity: %d problem(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrIntegrity }

// Phase tracks pass/fail for one group of integrity checks.
type Phase struct {
	Name     string   `json:"name"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (p *Phase) errorf(format string, args ...any) {
	p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
}

func (p *Phase) warnf(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

// Passed reports whether the phase recorded no errors. Warnings do not fail a phase.
func (p *Phase) Passed() bool { return len(p.Errors) == 0 }

// Report is the outcome of Validate.
type Report struct {
	Phases []*Phase `json:"phases"`
}

// Passed reports whether every phase passed.
func (r Report) Passed() bool {
	for _, p := range r.Phases {
		if !p.Passed() {
			return false
		}
	}
	return true
}

// Warnings returns every phase warning prefixed with its phase name.
func (r Report) Warnings() []string {
	var out []string
	for _, p := range r.Phases {
		for _, w := range p.Warnings {
			out = append(out, p.Name+": "+w)
		}
	}
	return out
}

// Err returns a *ValidationError when any phase failed.
func (r Report) Err() error {
	var problems []string
	for _, p := range r.Phases {
		for _, e := range p.Errors {
			problems = append(problems, p.Name+": "+e)
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// normalized is a dataset with identifiers defaulted and coffee references
// resolved to display names.
type normalized struct {
	taxonomy  *domain.Taxonomy
	roasters  []domain.Roaster
	producers []domain.Producer
	coffees   []domain.Coffee
}

// Validate runs every integrity check against ds without building a catalog.
func Validate(ds *dataset.Dataset) Report {
	report, _ := normalize(ds)
	return report
}

func normalize(ds *dataset.Dataset) (Report, *normalized) {
	n := &normalized{
		roasters:  make([]domain.Roaster, len(ds.Roasters)),
		producers: make([]domain.Producer, len(ds.Producers)),
		coffees:   make([]domain.Coffee, len(ds.Coffees)),
	}
	copy(n.roasters, ds.Roasters)
	copy(n.producers, ds.Producers)
	copy(n.coffees, ds.Coffees)

	taxonomy := &Phase{Name: "Taxonomy"}
	ids := &Phase{Name: "Identifiers"}
	refs := &Phase{Name: "References"}
	values := &Phase{Name: "Value domains"}
	coverage := &Phase{Name: "Taxonomy coverage"}

	tax, err := domain.NewTaxonomy(ds.Notes)
	if err != nil {
		taxonomy.errorf("%v", err)
		tax, _ = domain.NewTaxonomy(nil)
	} else if tax.Len() == 0 {
		taxonomy.errorf("taxonomy has no notes")
	}
	n.taxonomy = tax

	roasterNames := make(map[string]string, len(n.roasters))
	for i := range n.roasters {
		r := &n.roasters[i]
		r.ID = defaultID(r.ID, r.Name)
		checkName(ids, "roaster", i, r.Name)
	}
	roasterIdx := indexIDs(ids, "roaster", len(n.roasters), func(i int) (string, string) {
		return n.roasters[i].ID, n.roasters[i].Name
	})
	for id, i := range roasterIdx {
		roasterNames[id] = n.roasters[i].Name
	}

	producerNames := make(map[string]string, len(n.producers))
	for i := range n.producers {
		p := &n.producers[i]
		p.ID = defaultID(p.ID, p.Name)
		checkName(ids, "producer", i, p.Name)
		checkProducer(values, *p)
	}
	producerIdx := indexIDs(ids, "producer", len(n.producers), func(i int) (string, string) {
		return n.producers[i].ID, n.producers[i].Name
	})
	for id, i := range producerIdx {
		producerNames[id] = n.producers[i].Name
	}

	seenNames := make(map[string]bool, len(n.coffees))
	for i := range n.coffees {
		c := &n.coffees[i]
		c.ID = defaultID(c.ID, c.Name)
		checkName(ids, "coffee", i, c.Name)
		if c.Name != "" {
			if seenNames[c.Name] {
				ids.errorf("duplicate coffee name %q", c.Name)
			}
			seenNames[c.Name] = true
		}

		if name, ok := roasterNames[c.RoasterID]; ok {
			c.Roaster = name
		} else {
			refs.errorf("coffee %q references unknown roaster %q", c.Name, c.RoasterID)
		}
		if name, ok := producerNames[c.ProducerID]; ok {
			c.Producer = name
		} else {
			refs.errorf("coffee %q references unknown producer %q", c.Name, c.ProducerID)
		}

		checkCoffee(values, *c)
		for _, note := range c.Notes {
			if _, ok := tax.Lookup(note); !ok {
				coverage.warnf("coffee %q lists note %q missing from the taxonomy", c.Name, note)
			}
		}
	}
	indexIDs(ids, "coffee", len(n.coffees), func(i int) (string, string) {
		return n.coffees[i].ID, n.coffees[i].Name
	})

	return Report{Phases: []*Phase{taxonomy, ids, refs, values, coverage}}, n
}

func defaultID(id, name string) string {
	if id != "" {
		return id
	}
	return domain.Slug(name)
}

func checkName(p *Phase, kind string, i int, name string) {
	if strings.TrimSpace(name) == "" {
		p.errorf("%s #%d has an empty name", kind, i+1)
	}
}

// indexIDs maps ids to positions, recording duplicate ids and names that
// normalize to the same slug.
func indexIDs(p *Phase, kind string, n int, at func(int) (id, name string)) map[string]int {
	idx := make(map[string]int, n)
	slugs := make(map[string]string, n)
	for i := 0; i < n; i++ {
		id, name := at(i)
		if id == "" {
			continue
		}
		if _, dup := idx[id]; dup {
			p.errorf("duplicate %s id %q", kind, id)
		} else {
			idx[id] = i
		}
		s := domain.Slug(name)
		if other, ok := slugs[s]; ok && other != name {
			p.errorf("%s names %q and %q share slug %q", kind, other, name, s)
		}
		slugs[s] = name
	}
	return idx
}

func checkCoffee(p *Phase, c domain.Coffee) {
	if c.Price <= 0 || math.IsNaN(c.Price) {
		p.errorf("coffee %q price %g must be positive", c.Name, c.Price)
	}
	if !domain.RatingDomain.Contains(c.Rating) {
		p.errorf("coffee %q rating %g outside [0,5]", c.Name, c.Rating)
	}
	chars := []struct {
		name  string
		value float64
	}{
		{"acidity", c.Characteristics.Acidity},
		{"sweetness", c.Characteristics.Sweetness},
		{"bitterness", c.Characteristics.Bitterness},
	}
	for _, ch := range chars {
		if !domain.CharacteristicDomain.Contains(ch.value) {
			p.errorf("coffee %q %s %g outside [0,1]", c.Name, ch.name, ch.value)
		}
	}
	if _, err := domain.ParseBody(string(c.Body)); err != nil {
		p.errorf("coffee %q: %v", c.Name, err)
	}
	if _, err := domain.ParseProcess(string(c.Process)); err != nil {
		p.errorf("coffee %q: %v", c.Name, err)
	}
	for _, m := range c.Mouthfeel {
		if _, err := domain.ParseMouthfeel(string(m)); err != nil {
			p.errorf("coffee %q: %v", c.Name, err)
		}
	}
	if strings.TrimSpace(c.Origin) == "" {
		p.errorf("coffee %q has no origin", c.Name)
	}
}

func checkProducer(p *Phase, pr domain.Producer) {
	lon, lat := pr.Location.Coordinates.Lon(), pr.Location.Coordinates.Lat()
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		p.errorf("producer %q coordinates [%g, %g] are not [longitude, latitude]", pr.Name, lon, lat)
	}
	if pr.Location.Elevation < 0 {
		p.errorf("producer %q elevation %d is negative", pr.Name, pr.Location.Elevation)
	}
}
