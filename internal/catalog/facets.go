package catalog

import "github.com/couchcryptid/coffee-catalog/internal/domain"

// Facets are the options offered by the browse filters.
type Facets struct {
	Processes      []domain.Process   `json:"processes"`
	Categories     []domain.Category  `json:"categories"`
	Origins        []string           `json:"origins"`
	Roasters       []string           `json:"roasters"`
	Producers      []string           `json:"producers"`
	Mouthfeels     []domain.Mouthfeel `json:"mouthfeels"`
	Bodies         []domain.Body      `json:"bodies"`
	Price          domain.Range       `json:"price"`
	Rating         domain.Range       `json:"rating"`
	Characteristic domain.Range       `json:"characteristic"`
}

// Facets lists the distinct values present in the catalog in order of first
// appearance. Categories follow taxonomy order and bodies are the fixed list.
func (c *Catalog) Facets() Facets {
	f := Facets{
		Categories:     c.taxonomy.Categories(),
		Bodies:         append([]domain.Body(nil), domain.Bodies...),
		Price:          domain.PriceDomain,
		Rating:         domain.RatingDomain,
		Characteristic: domain.CharacteristicDomain,
	}
	var (
		processes distinct[domain.Process]
		origins   distinct[string]
		roasters  distinct[string]
		producers distinct[string]
		mouthfeel distinct[domain.Mouthfeel]
	)
	for _, cf := range c.coffees {
		processes.add(cf.Process)
		origins.add(cf.Origin)
		roasters.add(cf.Roaster)
		producers.add(cf.Producer)
		for _, m := range cf.Mouthfeel {
			mouthfeel.add(m)
		}
	}
	f.Processes = processes.values()
	f.Origins = origins.values()
	f.Roasters = roasters.values()
	f.Producers = producers.values()
	f.Mouthfeels = mouthfeel.values()
	return f
}

type distinct[T comparable] struct {
	seen map[T]bool
	list []T
}

func (d *distinct[T]) add(v T) {
	if d.seen == nil {
		d.seen = make(map[T]bool)
	}
	if !d.seen[v] {
		d.seen[v] = true
		d.list = append(d.list, v)
	}
}

func (d *distinct[T]) values() []T {
	if d.list == nil {
		return []T{}
	}
	return d.list
}
