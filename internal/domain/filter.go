package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Full domains used by the browse view when a range control is reset.
var (
	PriceDomain          = Range{Min: 0, Max: 50}
	RatingDomain         = Range{Min: 0, Max: 5}
	CharacteristicDomain = Range{Min: 0, Max: 1}
)

// Unbounded returns the range (-Inf, +Inf). Callers narrow one end to express
// "at least" or "at most".
func Unbounded() Range {
	return Range{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Criteria selects coffees. An empty set or nil range leaves that axis
// unconstrained. Roasters and Producers match either display names or ids.
type Criteria struct {
	Processes  []Process
	Categories []Category
	Origins    []string
	Roasters   []string
	Producers  []string
	Mouthfeels []Mouthfeel
	Bodies     []Body

	Price      *Range
	Rating     *Range
	Acidity    *Range
	Sweetness  *Range
	Bitterness *Range
}

// Matches reports whether c satisfies every active axis of crit. Notes the
// taxonomy does not know contribute no category.
func Matches(c Coffee, crit Criteria, tax *Taxonomy) bool {
	if len(crit.Processes) > 0 && !slices.Contains(crit.Processes, c.Process) {
		return false
	}
	if len(crit.Origins) > 0 && !slices.Contains(crit.Origins, c.Origin) {
		return false
	}
	if len(crit.Roasters) > 0 && !slices.Contains(crit.Roasters, c.Roaster) && !slices.Contains(crit.Roasters, c.RoasterID) {
		return false
	}
	if len(crit.Producers) > 0 && !slices.Contains(crit.Producers, c.Producer) && !slices.Contains(crit.Producers, c.ProducerID) {
		return false
	}
	if len(crit.Bodies) > 0 && !slices.Contains(crit.Bodies, c.Body) {
		return false
	}
	if len(crit.Mouthfeels) > 0 && !containsAny(crit.Mouthfeels, c.Mouthfeel) {
		return false
	}
	if len(crit.Categories) > 0 && !matchesCategory(c, crit.Categories, tax) {
		return false
	}
	return inRange(crit.Price, c.Price) &&
		inRange(crit.Rating, c.Rating) &&
		inRange(crit.Acidity, c.Characteristics.Acidity) &&
		inRange(crit.Sweetness, c.Characteristics.Sweetness) &&
		inRange(crit.Bitterness, c.Characteristics.Bitterness)
}

// Filter returns the coffees matching crit, preserving input order.
func Filter(coffees []Coffee, crit Criteria, tax *Taxonomy) []Coffee {
	out := make([]Coffee, 0, len(coffees))
	for _, c := range coffees {
		if Matches(c, crit, tax) {
			out = append(out, c)
		}
	}
	return out
}

func matchesCategory(c Coffee, selected []Category, tax *Taxonomy) bool {
	if tax == nil {
		return false
	}
	for _, note := range c.Notes {
		if cat, ok := tax.CategoryOf(note); ok && slices.Contains(selected, cat) {
			return true
		}
	}
	return false
}

func containsAny[T comparable](selected, values []T) bool {
	for _, v := range values {
		if slices.Contains(selected, v) {
			return true
		}
	}
	return false
}

func inRange(r *Range, v float64) bool {
	return r == nil || r.Contains(v)
}

// Key returns a canonical string for crit: selection order and duplicates do
// not change it.
func (crit Criteria) Key() string {
	var b strings.Builder
	writeSet(&b, "process", crit.Processes)
	writeSet(&b, "category", crit.Categories)
	writeSet(&b, "origin", crit.Origins)
	writeSet(&b, "roaster", crit.Roasters)
	writeSet(&b, "producer", crit.Producers)
	writeSet(&b, "mouthfeel", crit.Mouthfeels)
	writeSet(&b, "body", crit.Bodies)
	writeRange(&b, "price", crit.Price)
	writeRange(&b, "rating", crit.Rating)
	writeRange(&b, "acidity", crit.Acidity)
	writeRange(&b, "sweetness", crit.Sweetness)
	writeRange(&b, "bitterness", crit.Bitterness)
	return b.String()
}

func writeSet[T ~string](b *strings.Builder, name string, values []T) {
	if len(values) == 0 {
		return
	}
	sorted := make([]string, len(values))
	for i, v := range values {
		sorted[i] = string(v)
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	fmt.Fprintf(b, "%s=%q;", name, sorted)
}

func writeRange(b *strings.Builder, name string, r *Range) {
	if r == nil {
		return
	}
	fmt.Fprintf(b, "%s=[%g,%g];", name, r.Min, r.Max)
}
