package domain

import "fmt"

// Category is one of the fourteen fixed flavour families.
type Category string

const (
	CategoryBerries        Category = "Berries"
	CategoryCitrus         Category = "Citrus"
	CategoryStoneFruits    Category = "Stone Fruits"
	CategoryTropicalFruits Category = "Tropical Fruits"
	CategoryOtherFruits    Category = "Other Fruits"
	CategoryNuts           Category = "Nuts"
	CategoryChocolate      Category = "Chocolate"
	CategoryFloral         Category = "Floral"
	CategoryHerbal         Category = "Herbal"
	CategoryEarthy         Category = "Earthy"
	CategorySpices         Category = "Spices"
	CategorySweet          Category = "Sweet"
	CategoryRoasted        Category = "Roasted"
	CategoryOther          Category = "Other"
)

// Categories lists the fixed category set.
var Categories = []Category{
	CategoryBerries, CategoryCitrus, CategoryStoneFruits, CategoryTropicalFruits,
	CategoryOtherFruits, CategoryNuts, CategoryChocolate, CategoryFloral,
	CategoryHerbal, CategoryEarthy, CategorySpices, CategorySweet,
	CategoryRoasted, CategoryOther,
}

// ParseCategory returns the Category named s.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("category %q: %w", s, ErrUnknownValue)
}

// Gradient is a two-colour display gradient, as CSS hex strings.
type Gradient [2]string

// TastingNote is one entry of the taxonomy table.
type TastingNote struct {
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Gradient Gradient `json:"gradient" yaml:"gradient"`
}

// Taxonomy is the read-only tasting-note lookup table. Table order is kept
// because it drives category and group ordering.
type Taxonomy struct {
	notes []TastingNote
	index map[string]int
}

// NewTaxonomy builds a Taxonomy. Note names must be unique and categories
// must belong to the fixed set.
func NewTaxonomy(notes []TastingNote) (*Taxonomy, error) {
	t := &Taxonomy{
		notes: make([]TastingNote, 0, len(notes)),
		index: make(map[string]int, len(notes)),
	}
	for _, n := range notes {
		if n.Name == "" {
			return nil, fmt.Errorf("tasting note with empty name in category %q", n.Category)
		}
		if _, err := ParseCategory(string(n.Category)); err != nil {
			return nil, fmt.Errorf("tasting note %q: %w", n.Name, err)
		}
		if _, dup := t.index[n.Name]; dup {
			return nil, fmt.Errorf("duplicate tasting note %q", n.Name)
		}
		t.index[n.Name] = len(t.notes)
		t.notes = append(t.notes, n)
	}
	return t, nil
}

// Lookup returns the note named name.
func (t *Taxonomy) Lookup(name string) (TastingNote, bool) {
	i, ok := t.index[name]
	if !ok {
		return TastingNote{}, false
	}
	return t.notes[i], true
}

// CategoryOf returns the category of the named note.
func (t *Taxonomy) CategoryOf(name string) (Category, bool) {
	n, ok := t.Lookup(name)
	return n.Category, ok
}

// Notes returns a copy of the table in authoring order.
func (t *Taxonomy) Notes() []TastingNote {
	out := make([]TastingNote, len(t.notes))
	copy(out, t.notes)
	return out
}

// Len returns the number of notes.
func (t *Taxonomy) Len() int { return len(t.notes) }

// Categories returns the distinct categories in order of first appearance in the table.
func (t *Taxonomy) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, n := range t.notes {
		if !seen[n.Category] {
			seen[n.Category] = true
			out = append(out, n.Category)
		}
	}
	return out
}

// Resolve returns the known notes of names in order, skipping unknown ones.
func (t *Taxonomy) Resolve(names []string) []TastingNote {
	out := make([]TastingNote, 0, len(names))
	for _, name := range names {
		if n, ok := t.Lookup(name); ok {
			out = append(out, n)
		}
	}
	return out
}

// Palette returns the gradients of the distinct categories of the known
// notes in names, in first-encounter order.
func (t *Taxonomy) Palette(names []string) []Gradient {
	seen := make(map[Category]bool)
	var out []Gradient
	for _, n := range t.Resolve(names) {
		if seen[n.Category] {
			continue
		}
		seen[n.Category] = true
		out = append(out, n.Gradient)
	}
	return out
}
